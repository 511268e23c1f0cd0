// Package win32 talks to the Windows desktop: the foreground window and its
// keyboard layout, and the message-loop threads the on-screen sinks live on.
package win32

import (
	"errors"
	"fmt"
)

var (
	ErrCallFailed   = errors.New("win32 call failed")
	ErrWindowClosed = errors.New("window closed")
)

func callError(name string, lastErr error) error {
	if lastErr == nil {
		return fmt.Errorf("%s: %w", name, ErrCallFailed)
	}
	return fmt.Errorf("%s: %w: %w", name, ErrCallFailed, lastErr)
}
