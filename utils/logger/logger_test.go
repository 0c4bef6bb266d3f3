package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogrus("warn", "text", &buf)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogrus("info", "json", &buf)

	l.Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogrus("nonsense", "text", &buf)

	l.Debug("debug line")
	l.Info("info line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.Contains(t, out, "info line")
}

func TestNewNopDiscardsOutput(t *testing.T) {
	l := NewNop()
	// Must not panic and must satisfy the interface
	l.Info("ignored")
	l.Errorf("ignored %d", 1)
}
