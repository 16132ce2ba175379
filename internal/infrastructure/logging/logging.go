// Package logging configures the charmbracelet/log loggers used across the game.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// New creates a logger writing to w at the given level name.
// Unknown level names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "maskrun",
	})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps a level name to a log.Level
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Default returns the process-wide logger writing to stderr
func Default() *log.Logger {
	once.Do(func() {
		singleton = New(os.Stderr, "info")
	})
	return singleton
}

// Discard returns a logger that drops everything (for tests)
func Discard() *log.Logger {
	return log.New(io.Discard)
}
