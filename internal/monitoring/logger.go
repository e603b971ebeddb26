// Package monitoring holds the diagnostic logger shared by the viewer
// packages. Recoverable problems (unreadable directories, truncated
// fields, failed exports) are reported here rather than returned.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger; the terminal viewer mutes it while drawing.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
