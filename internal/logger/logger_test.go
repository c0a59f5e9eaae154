package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"snippetapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: "syslog"})
	assert.Error(t, err)
}

func TestTextLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTextLogger(&buf, config.LogLevelWarning)

	l.Info("hidden")
	l.With("request_id", "abc").Warn("shown", "status", 500)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "request_id=abc")
	assert.Contains(t, out, "status=500")
}

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	l := NewFileLogger(config.LogLevelInfo, logPath, 10, 3, 28)
	require.NotNil(t, l)

	l.Info("info message", "k", "v")
	l.Warn("warn message")
	l.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERROR")
}
