package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes f and turns a panic into an error log instead of crashing the
// process. Intended for background goroutines: go safe.Run(func() { ... }).
func Run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
		}
	}()
	f()
}
