// Package logging builds the loggers used by the command line tools.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w with the given prefix.
// When quiet is set only warnings and errors are emitted.
func New(w io.Writer, prefix string, quiet bool) *log.Logger {
	level := log.InfoLevel
	if quiet {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
