package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInitLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := InitLoggerWithWriter(&buf, "info", "json")
	require.NotNil(t, l)

	buf.Reset()
	l.Info("hello", "card_type", "headline")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "headline", entry["card_type"])
}

func TestInitLoggerWithWriter_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := InitLoggerWithWriter(&buf, "warn", "text")

	buf.Reset()
	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.True(t, strings.Contains(buf.String(), "msg=kept"))
}

func TestContextLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cl := NewContextLogger(base)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithCardPosition(ctx, 7)
	ctx = WithOperation(ctx, "build")

	cl.LogError(ctx, "build", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(7), entry["card_position"])
	assert.Equal(t, "build", entry["operation"])
	assert.Equal(t, "boom", entry["error"])
}

func TestContextLogger_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cl.WithContext(context.Background()).Info("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasRequest := entry["request_id"]
	assert.False(t, hasRequest)
}
