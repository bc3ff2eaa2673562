package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-school-insights/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "PROD", "debug")

	l.Debug().Str("table", "students").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "students", entry["table"])
	require.Equal(t, "loaded", entry["message"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "PROD", "warn")

	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	l := logging.New(&bytes.Buffer{}, "PROD", "chatty")
	require.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNew_DevConsole(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "dev", "info")

	l.Info().Msg("listening")
	require.Contains(t, buf.String(), "listening")
	require.False(t, json.Valid(buf.Bytes()))
}
