//go:build windows

// Package stderr is a no-op on Windows, whose audio backends do not write
// to the console.
package stderr

import "go.uber.org/zap"

// Capture is an active redirection of stderr.
type Capture struct{}

// Redirect does nothing on Windows.
func Redirect(*zap.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// Restore does nothing on Windows.
func (*Capture) Restore() {}
