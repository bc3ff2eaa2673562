// Package logging builds the process-wide zerolog logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to w. DEV gets a human readable console writer,
// every other environment gets JSON lines. Unknown levels fall back to info.
func New(w io.Writer, env, level string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(env, "DEV") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// SetGlobal makes l the logger behind the zerolog/log package helpers.
func SetGlobal(l zerolog.Logger) {
	log.Logger = l
}
