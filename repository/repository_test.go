package repository

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	repo := New("test", WithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	l := repo.Logger("pipeline")
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	repo.SetLoggerLevel("pipeline", slog.LevelDebug)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestThresholdOverridesLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	repo := New("test", WithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	repo.SetLoggerLevel("pipeline", slog.LevelDebug)
	repo.SetThreshold(slog.LevelError)
	assert.Equal(t, slog.LevelError, repo.Threshold())

	repo.Logger("pipeline").Info("suppressed")
	assert.Empty(t, buf.String())

	repo.Logger("pipeline").Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLoggerIsCached(t *testing.T) {
	repo := New("test")

	assert.Same(t, repo.Logger("a"), repo.Logger("a"))
	assert.NotSame(t, repo.Logger("a"), repo.Logger("b"))
}

func TestHostCapability(t *testing.T) {
	var full Repository = New("full")
	var plain Repository = NewBasic("plain")

	_, ok := full.(Host)
	assert.True(t, ok)

	_, ok = plain.(Host)
	assert.False(t, ok)

	require.NotNil(t, New("x").Plugins())
}

func TestDefaultRepository(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	require.NotNil(t, orig)
	assert.Equal(t, "default", orig.Name())

	repl := NewBasic("replacement")
	SetDefault(repl)
	assert.Equal(t, "replacement", Default().Name())

	// nil is ignored
	SetDefault(nil)
	assert.Equal(t, "replacement", Default().Name())
}
