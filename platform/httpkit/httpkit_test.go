package httpkit

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"lead_console/platform/apperr"
	"lead_console/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWithBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorFromResponsePrefersErrorField(t *testing.T) {
	err := ErrorFromResponse(responseWithBody(http.StatusBadRequest, `{"error": "bad filter", "message": "other"}`))

	assert.Equal(t, apperr.KindServer, err.Kind)
	assert.Equal(t, "bad filter", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestErrorFromResponseFallsBackToMessageField(t *testing.T) {
	err := ErrorFromResponse(responseWithBody(http.StatusBadRequest, `{"message": "try later"}`))
	assert.Equal(t, "try later", err.Message)
}

func TestErrorFromResponseClassifiesUnauthorized(t *testing.T) {
	err := ErrorFromResponse(responseWithBody(http.StatusUnauthorized, `{}`))
	assert.Equal(t, apperr.KindUnauthorized, err.Kind)
}

func TestErrorFromResponseClassifiesNotFound(t *testing.T) {
	err := ErrorFromResponse(responseWithBody(http.StatusNotFound, ``))
	assert.Equal(t, apperr.KindNotFound, err.Kind)
	assert.NotEmpty(t, err.Message)
}

func TestNewJSONRequestSetsHeaders(t *testing.T) {
	req, err := NewJSONRequest(context.Background(), http.MethodPost, "http://api.local/x", map[string]string{"a": "b"}, "tok")

	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.NotEmpty(t, req.Header.Get(HeaderRequestID))
}

func TestNewJSONRequestReusesContextRequestID(t *testing.T) {
	ctx := logger.ContextWithRequestID(context.Background(), "req-42")

	req, err := NewJSONRequest(ctx, http.MethodGet, "http://api.local/x", nil, "")

	require.NoError(t, err)
	assert.Equal(t, "req-42", req.Header.Get(HeaderRequestID))
}

func TestNewJSONRequestStashesGeneratedRequestID(t *testing.T) {
	req, err := NewJSONRequest(context.Background(), http.MethodGet, "http://api.local/x", nil, "")

	require.NoError(t, err)
	requestID := req.Header.Get(HeaderRequestID)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, logger.RequestIDFromContext(req.Context()))
}

func TestNewJSONRequestWithoutToken(t *testing.T) {
	req, err := NewJSONRequest(context.Background(), http.MethodGet, "http://api.local/x", nil, "")

	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Content-Type"))
}
