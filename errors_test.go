package plugconf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorFormatting(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParseError("conf.xml", "failed to parse configuration file", cause)

	msg := err.Error()
	assert.Contains(t, msg, "[ParseFailure]")
	assert.Contains(t, msg, "source=conf.xml")
	assert.Contains(t, msg, "unexpected EOF")
}

func TestConfigErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewFetchError("http://x", "fetch failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestConfigErrorIsMatchesKind(t *testing.T) {
	err := NewWatchError("conf.xml", "watch failed", nil)

	assert.ErrorIs(t, err, &ConfigError{Kind: KindWatchFailure})
	assert.NotErrorIs(t, err, &ConfigError{Kind: KindParseFailure})
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "ParseFailure", KindParseFailure.String())
	assert.Equal(t, "FetchFailure", KindFetchFailure.String())
	assert.Equal(t, "PluginFailure", KindPluginFailure.String())
	assert.Equal(t, "WatchFailure", KindWatchFailure.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}
