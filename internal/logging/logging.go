// Package logging sets up the process-wide structured logger every
// other package logs through. There is no per-object logger: a single
// process-wide logger is the one piece of global state the core needs.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.Mutex
	log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)
)

// Logger returns the shared logger. The Gerber and Excellon parsers log
// InputMalformed, UnknownAperture/UnknownTool and UnsupportedFeature
// conditions at Warn and continue, per the error-handling policy; only
// IOFailure propagates as a Go error.
func Logger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return &log
}

// SetOutput redirects the logger, e.g. to a file or to io.Discard in
// tests that expect warnings on malformed input.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)
}

// SetLevel adjusts the minimum level logged.
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(lvl)
}
