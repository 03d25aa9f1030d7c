// Package httpkit provides HTTP request infrastructure for outbound API calls.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lead_console/platform/apperr"
	"lead_console/platform/logger"

	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the per-call correlation ID.
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 1 << 20 // cap error body reads at 1 MiB
)

// NewClient creates an HTTP client with the given timeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// NewJSONRequest builds a JSON request with auth and correlation headers.
// An empty token leaves the Authorization header unset. A request ID already
// in ctx is reused; otherwise one is generated and stored on the request
// context for log correlation.
func NewJSONRequest(ctx context.Context, method, url string, body interface{}, token string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	SetBearer(req, token)

	return req, nil
}

// SetBearer sets the Authorization header when a token is present.
func SetBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// DecodeJSON decodes a response body into v.
func DecodeJSON(resp *http.Response, v interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindNormalization, "decode response", err)
	}
	return nil
}

// errorEnvelope is the error body shape used by the remote API.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorFromResponse classifies a non-2xx response, preferring the
// server-provided error text when the body carries one.
func ErrorFromResponse(resp *http.Response) *apperr.Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope errorEnvelope
	message := ""
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			message = envelope.Error
		} else if envelope.Message != "" {
			message = envelope.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(data))
		if len(message) > 200 {
			message = message[:200]
		}
	}

	return apperr.FromStatus(resp.StatusCode, message)
}

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
