// Package monitoring holds the diagnostic logger shared by the puzzler CLI.
package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. The CLI mutes it unless --verbose is given.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}

// Writer returns a logger writing to w with the given prefix, suitable for
// SetLogger.
func Writer(w io.Writer, prefix string) func(format string, v ...any) {
	return log.New(w, prefix, log.LstdFlags).Printf
}
