package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendContactEmail(t *testing.T) {
	var received ResendEmailRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ResendEmailResponse{ID: "email-123"})
	}))
	defer server.Close()

	cfg := map[string]string{
		"RESEND_API_KEY":    "re_test_key",
		"RESEND_FROM_EMAIL": "Portfolio <noreply@example.com>",
		"RESEND_API_URL":    server.URL,
	}

	err := SendContactEmail(cfg, "owner@example.com", ContactMessage{
		Name:    "Budi",
		Email:   "budi@example.com",
		Message: "Halo, saya tertarik dengan proyek Anda.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, "Portfolio <noreply@example.com>", received.From)
	assert.Equal(t, []string{"owner@example.com"}, received.To)
	assert.Equal(t, "Portfolio Contact: Budi", received.Subject)
	assert.Contains(t, received.Text, "Nama: Budi")
	assert.Contains(t, received.Text, "Email: budi@example.com")
	assert.Contains(t, received.Text, "Pesan:\nHalo, saya tertarik dengan proyek Anda.")
}

func TestSendContactEmailAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ResendErrorResponse{Message: "invalid from address"})
	}))
	defer server.Close()

	cfg := map[string]string{
		"RESEND_API_KEY":    "re_test_key",
		"RESEND_FROM_EMAIL": "broken",
		"RESEND_API_URL":    server.URL,
	}

	err := SendContactEmail(cfg, "owner@example.com", ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestSendContactEmailMissingConfig(t *testing.T) {
	err := SendContactEmail(map[string]string{}, "owner@example.com", ContactMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")

	err = SendContactEmail(map[string]string{"RESEND_API_KEY": "k"}, "owner@example.com", ContactMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_FROM_EMAIL")

	err = SendContactEmail(map[string]string{"RESEND_API_KEY": "k", "RESEND_FROM_EMAIL": "f"}, "", ContactMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipient")
}
