package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrmdhni/portfolio-backend/errs"
)

func TestObjectNameKeepsExtension(t *testing.T) {
	tests := []struct {
		original string
		ext      string
	}{
		{"screenshot.png", ".png"},
		{"Photo.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"noextension", ""},
	}

	for _, tt := range tests {
		name := ObjectName(tt.original)
		assert.True(t, strings.HasSuffix(name, tt.ext), "expected %q to end with %q", name, tt.ext)
		assert.NotContains(t, name, " ")
	}

	// Names are collision resistant across calls for the same input.
	assert.NotEqual(t, ObjectName("a.png"), ObjectName("a.png"))
}

func TestPublicURL(t *testing.T) {
	client := &Client{publicBaseURL: "https://xyz.supabase.co/storage/v1/s3"}
	url := client.PublicURL("portofolios", "portfolio-images/123-abc.png")
	assert.Equal(t, "https://xyz.supabase.co/storage/v1/s3/portofolios/portfolio-images/123-abc.png", url)
}

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		bucket   string
		expected string
	}{
		{
			name:     "standard public url",
			url:      "https://xyz.supabase.co/storage/v1/s3/portofolios/portfolio-images/123-abc.png",
			bucket:   "portofolios",
			expected: "portfolio-images/123-abc.png",
		},
		{
			name:     "no extra path segments",
			url:      "https://cdn.example.com/portofolios/portfolio-images/x.webp",
			bucket:   "portofolios",
			expected: "portfolio-images/x.webp",
		},
		{
			name:     "bucket not in path",
			url:      "https://cdn.example.com/other-bucket/image.png",
			bucket:   "portofolios",
			expected: "",
		},
		{
			name:     "unparseable url",
			url:      "://broken",
			bucket:   "portofolios",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, objectKeyFromURL(tt.url, tt.bucket))
		})
	}
}

func TestUnconfiguredClient(t *testing.T) {
	client := NewClient(context.Background(), map[string]string{})
	require.NotNil(t, client)
	assert.False(t, client.Configured())

	_, err := client.UploadImage(context.Background(), "a.png", "image/png", strings.NewReader("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorageNotConfigured)

	err = client.DeleteImage(context.Background(), "https://cdn.example.com/portofolios/portfolio-images/a.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorageNotConfigured)
}

func TestBucketDefaultsFromConfig(t *testing.T) {
	client := NewClient(context.Background(), map[string]string{})
	assert.Equal(t, "portofolios", client.projectBucket)
	assert.Equal(t, "profile-photos", client.profileBucket)

	client = NewClient(context.Background(), map[string]string{
		"STORAGE_PROJECT_BUCKET": "my-projects",
		"STORAGE_PROFILE_BUCKET": "my-photos",
	})
	assert.Equal(t, "my-projects", client.projectBucket)
	assert.Equal(t, "my-photos", client.profileBucket)
}
