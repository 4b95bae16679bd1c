package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Output: &buf})
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func TestInfoWritesJSONFields(t *testing.T) {
	buf := captureLogs(t, "info")
	Info("recommendation.complete", map[string]any{"size": "M", "confidence": 96})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "recommendation.complete" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["size"] != "M" {
		t.Fatalf("missing field: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing timestamp: %v", entry)
	}
}

func TestLevelFiltersInfo(t *testing.T) {
	buf := captureLogs(t, "error")
	Info("dropped", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %s", buf.String())
	}
	Error("kept", nil)
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected error line, got %s", buf.String())
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	buf := captureLogs(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	Ctx(ctx).Info().Msg("hello")
	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Fatalf("missing request id: %s", buf.String())
	}
}
