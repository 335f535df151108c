package notify

import (
	"fmt"
	"log/slog"
)

// Fallback messages for errors nobody else handled.
const (
	UnexpectedErrorMessage = "An unexpected error occurred. Please try again."
	AsyncErrorMessage      = "Processing error. Check your connection."
)

// Guard runs fn and converts a panic into a generic error notification.
// It reports whether a panic was recovered.
func Guard(n Notifier, logger *slog.Logger, fn func()) (recovered bool) {
	defer func() {
		if r := recover(); r != nil {
			recovered = true
			logger.Error("unhandled panic", "panic", fmt.Sprint(r))
			n.Notify(LevelError, UnexpectedErrorMessage)
		}
	}()
	fn()
	return false
}

// Go runs fn in its own goroutine. An error or panic from fn is logged
// and surfaced with the asynchronous fallback message. The returned
// channel yields fn's error once it finishes.
func Go(n Notifier, logger *slog.Logger, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
			if err != nil {
				logger.Error("unhandled async error", "error", err)
				n.Notify(LevelError, AsyncErrorMessage)
			}
			done <- err
			close(done)
		}()
		err = fn()
	}()
	return done
}
