package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/supportdesk/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		withSource []slog.Level
		wantSource bool
	}{
		{"info skipped", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn annotated", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error annotated", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"debug mode annotates info", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			l := slog.New(NewConditionalSourceHandler(base, tt.withSource...))

			l.Log(context.Background(), tt.level, "ticket created", "ticket_id", 7)

			out := buf.String()
			assert.Equal(t, tt.wantSource, strings.Contains(out, "source="), out)
			assert.Contains(t, out, "ticket_id=7")
		})
	}
}

func TestConditionalSourceHandler_PointsAtCaller(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	l := slog.New(NewConditionalSourceHandler(base, slog.LevelError))

	l.Error("boom")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	src, ok := rec["source"].(map[string]interface{})
	require.True(t, ok, "source attribute missing: %s", buf.String())
	assert.True(t, strings.HasSuffix(src["file"].(string), "logger_test.go"))
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	l := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).
		With("component", "edge").
		WithGroup("request")

	l.Info("forwarded", "path", "/tickets")

	out := buf.String()
	assert.Contains(t, out, "component=edge")
	assert.Contains(t, out, "request.path=/tickets")
	assert.NotContains(t, out, "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	err := Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, "release")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Sync()
		mu.Lock()
		root = nil
		mu.Unlock()
	})

	NewLogger().Infow("ticket deleted", "ticket_id", 3)
	NewLogger().Debugw("hidden below info")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "ticket deleted", rec["msg"])
	assert.EqualValues(t, 3, rec["ticket_id"])
	_, hasSource := rec["source"]
	assert.False(t, hasSource)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().With("k", "v").Named("test")
	assert.NotPanics(t, func() {
		l.Errorw("ignored", "error", assert.AnError)
	})
}
