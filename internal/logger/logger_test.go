package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerWarnWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf, Component: "merge"})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"keyword": "weight", "value": "heavyish"})
	log.Warn("invalid face attribute")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "invalid face attribute", entry["message"])
	require.Equal(t, "weight", entry["keyword"])
	require.Equal(t, "heavyish", entry["value"])
	require.Equal(t, "merge", entry["component"])
	require.Equal(t, "warn", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("face cache cleared")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"surface": "tty0"})
	log.Error(errors.New("boom"), "realize failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "realize failed", entry["message"])
	require.Equal(t, "tty0", entry["surface"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.Nil(t, log.WithFields(map[string]any{"a": 1}))
	log.Info("ignored")
	log.Error(errors.New("x"), "ignored")

	Nop().WithFields(map[string]any{"a": 1}).Warn("ignored")
}
