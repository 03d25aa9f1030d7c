package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lead_console/platform/apperr"
	"lead_console/platform/config"
	"lead_console/platform/logger"
	"lead_console/platform/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessagingClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{APIBaseURL: srv.URL, HTTPTimeout: 5 * time.Second}
	return NewClient(cfg, validator.New(), logger.New("development"))
}

func TestSendSuccess(t *testing.T) {
	var path, authHeader string
	var payload SendRequest
	client := newTestMessagingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = w.Write([]byte(`{"success": true, "message": "queued"}`))
	}))

	result, err := client.Send(context.Background(), "abc123", ChannelWhatsApp, "hello there", "tok")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "queued", result.Message)
	assert.Equal(t, "/messages/abc123/send-message", path)
	assert.Equal(t, "Bearer tok", authHeader)
	assert.Equal(t, "abc123", payload.LeadID)
	assert.Equal(t, ChannelWhatsApp, payload.MessageType)
}

func TestSendFailsLoudWithServerMessage(t *testing.T) {
	client := newTestMessagingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "lead has no whatsapp opt-in"}`, http.StatusUnprocessableEntity)
	}))

	_, err := client.Send(context.Background(), "abc123", ChannelWhatsApp, "hello", "tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead has no whatsapp opt-in")
}

func TestSendRejectsUnknownChannel(t *testing.T) {
	called := false
	client := newTestMessagingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Send(context.Background(), "abc123", Channel("sms"), "hello", "tok")

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.False(t, called)
}

func TestSendRejectsEmptyBody(t *testing.T) {
	client := newTestMessagingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.Send(context.Background(), "abc123", ChannelEmail, "", "tok")

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
