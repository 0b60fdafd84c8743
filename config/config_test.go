package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"KEY": "value", "EMPTY": ""}

	assert.Equal(t, "value", GetString(c, "KEY", "fallback"))
	assert.Equal(t, "", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"PORT": "8080", "BAD": "abc"}

	assert.Equal(t, 8080, GetInt(c, "PORT", 3000))
	assert.Equal(t, 3000, GetInt(c, "BAD", 3000))
	assert.Equal(t, 3000, GetInt(c, "MISSING", 3000))
	assert.Equal(t, 3000, GetInt(nil, "PORT", 3000))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{"ON": "true", "OFF": "false", "BAD": "yep"}

	assert.True(t, GetBool(c, "ON", false))
	assert.False(t, GetBool(c, "OFF", true))
	assert.True(t, GetBool(c, "BAD", true))
	assert.False(t, GetBool(nil, "ON", false))
}

func TestMissingKeys(t *testing.T) {
	c := map[string]string{"A": "set", "B": ""}

	assert.Equal(t, []string{"B", "C"}, MissingKeys(c, "A", "B", "C"))
	assert.Nil(t, MissingKeys(c, "A"))
}
