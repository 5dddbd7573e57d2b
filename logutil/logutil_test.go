package logutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupTextHandler(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, false, false)

	slog.Info("hello", "key", "value")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "key=value")
}

func TestSetupDebugLevel(t *testing.T) {
	var buf bytes.Buffer

	SetupWriter(&buf, false, false)
	slog.Debug("hidden")
	assert.Empty(t, buf.String())

	SetupWriter(&buf, true, false)
	slog.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetupJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, false, true)

	slog.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, false, false)

	NewLogger("registry").Info("scan complete")
	assert.Contains(t, buf.String(), "component=registry")
}
