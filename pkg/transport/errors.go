package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrBadBaudRate indicates an unsupported baud rate.
	ErrBadBaudRate = errors.New("unsupported baud rate")
	// ErrPortClosed indicates use of a closed port.
	ErrPortClosed = errors.New("port closed")
)

// OpenError wraps a failure to open a transport endpoint.
type OpenError struct {
	Port string
	Err  error
}

// Error implements error.
func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Port, e.Err)
}

// Unwrap exposes the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}
