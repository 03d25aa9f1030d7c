package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func capturedLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, nil))}, buf
}

func TestWithContextAttachesRequestAndLeadID(t *testing.T) {
	log, buf := capturedLogger()

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithLeadID(ctx, "lead-7")
	log.WithContext(ctx).APIRequest("GET", "/leads/leads", 200, 12)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["lead_id"] != "lead-7" {
		t.Fatalf("lead_id = %v, want lead-7", entry["lead_id"])
	}
}

func TestWithContextOnBareContext(t *testing.T) {
	log, buf := capturedLogger()

	log.WithContext(context.Background()).Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, present := entry["request_id"]; present {
		t.Fatalf("unexpected request_id on untagged context: %v", entry["request_id"])
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("RequestIDFromContext(empty) = %q, want empty", got)
	}
	ctx := ContextWithRequestID(context.Background(), "req-9")
	if got := RequestIDFromContext(ctx); got != "req-9" {
		t.Fatalf("RequestIDFromContext = %q, want req-9", got)
	}
}
