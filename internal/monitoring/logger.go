package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or batch drivers can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Progress reports batch progress through Logf every interval events. It keeps
// no state beyond the caller-supplied counter, so it is safe to call from a
// single-threaded event loop without synchronisation.
func Progress(processed int64, interval int64, format string, v ...interface{}) {
	if interval <= 0 || processed == 0 || processed%interval != 0 {
		return
	}
	Logf(format, v...)
}
