package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/jroosing/semcache/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{" DeBuG ", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INVALID", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "WARN", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "peer", "10.0.0.9")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "peer=10.0.0.9")
}

func TestNew_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "JSON",
		IncludePID:       true,
		ExtraFields:      map[string]string{"service": "semcache"},
		Output:           &buf,
	})

	logger.Info("service registered", "port", 8888)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "service registered", entry["msg"])
	assert.Equal(t, "semcache", entry["service"])
	assert.EqualValues(t, 8888, entry["port"])
	assert.Contains(t, entry, "pid")
}

func TestNew_StructuredKeyValueFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Structured: true, StructuredFormat: "keyvalue", Output: &buf})
	logger.Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "time="))
}

func TestConfigure_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{Output: &buf})
	require.NotNil(t, logger)

	slog.Info("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Component(logging.New(logging.Config{Output: &buf}), "mdns")
	logger.Info("started")
	assert.Contains(t, buf.String(), "component=mdns")

	assert.NotNil(t, logging.Component(nil, "api"))
}
