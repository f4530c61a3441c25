package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger carries progress and debug chatter to stderr so the report stream
// on stdout stays clean. Diagnostics that are part of the CLI contract
// (unknown flags, per-file failures, usage) are plain stderr prints instead.
var logger = zerolog.Nop()

// initLogging configures the console logger; --verbose lowers the level to
// debug so input expansion and destination handling become visible.
func initLogging() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.Kitchen
	})
	logger = zerolog.New(console).Level(level).With().Timestamp().Logger()
}
