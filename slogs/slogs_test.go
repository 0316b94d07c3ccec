package slogs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	prev := Level()
	defer SetLevel(prev)

	SetLevel(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, Level())
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Warn("plugin has no name", "class", "mock")
	assert.Contains(t, buf.String(), "plugin has no name")
	assert.Contains(t, buf.String(), "class=mock")

	// nil is ignored
	SetLogger(nil)
	Info("still works")
	assert.Contains(t, buf.String(), "still works")
}
