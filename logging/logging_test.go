package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("trace")
	assert.ErrorIs(t, err, logging.ErrLevel)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("warn", "json", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("dead end removal pass", "pass", 2, "metabolites", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "exactly one record")
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "dead end removal pass", rec["msg"])
	assert.EqualValues(t, 2, rec["pass"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("debug", "text", &buf)
	require.NoError(t, err)

	log.Debug("growth", "value", 20.0)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "value=20")
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := logging.New("info", "xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, logging.ErrFormat)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { logging.Discard().Error("nothing") })
}
