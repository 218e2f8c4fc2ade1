package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewWithWriter_JSONOutput verifies the default format emits JSON with
// the service attributes attached.
func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:   "info",
		Format:  "json",
		Service: "stackable",
		Version: "1.2.3",
	}, &buf)

	logger.Info("hello", slog.String("k", "v"))

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "stackable", entry["service_name"])
	assert.Equal(t, "1.2.3", entry["service_version"])
}

// TestNewWithWriter_LevelFiltering verifies messages below the configured
// level are dropped.
func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	logger.Info("too quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud enough")
	assert.Contains(t, buf.String(), "loud enough")
}

// TestNewWithWriter_RedactsSecrets verifies credential-bearing attributes
// never reach the sink in the clear, whether caught by field name or by
// value shape.
func TestNewWithWriter_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("proxied request",
		slog.String("authorization", "Bearer s3cr3t-token"),
		slog.String("upstream", "Basic dXNlcjpwYXNz"),
		slog.String("path", "/api/v1/notes"),
	)

	out := buf.String()
	assert.NotContains(t, out, "s3cr3t-token")
	assert.NotContains(t, out, "dXNlcjpwYXNz")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "/api/v1/notes", "non-secret attributes must pass through")
}

// TestNewWithWriter_FileSinkReceivesCopies verifies the rolling file gets
// the same records as the terminal when the file sink is enabled.
func TestNewWithWriter_FileSinkReceivesCopies(t *testing.T) {
	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "app.log")

	logger := NewWithWriter(Config{
		Level:  "info",
		Format: "text",
		File:   &FileConfig{Path: path, MaxSizeMB: 1},
	}, &buf)

	logger.Info("written twice", slog.String("k", "v"))

	assert.Contains(t, buf.String(), "written twice")

	fileOut, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(fileOut), "written twice")
	assert.Contains(t, string(fileOut), `"k":"v"`, "the file sink always writes JSON")
}

// TestParseLevel covers the level strings and the fallback.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "ERROR", want: slog.LevelError},
		{in: "nonsense", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

// TestContext_RoundTrip verifies logger storage and retrieval through a
// context.
func TestContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	stored, ok := Lookup(ctx)
	require.True(t, ok)
	assert.Same(t, logger, stored)

	_, ok = Lookup(context.Background())
	assert.False(t, ok)
}

// TestWithRequestID verifies the enriched logger carries the request ID on
// every line.
func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithContext(context.Background(), logger)

	ctx = WithRequestID(ctx, "req-123")
	FromContext(ctx).Info("handling")

	assert.Contains(t, buf.String(), "request_id=req-123")
}
