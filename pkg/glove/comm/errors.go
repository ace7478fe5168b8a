package comm

import "errors"

var (
	// ErrConnectionClosed indicates the connection closed with the
	// read still outstanding.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrNotRead indicates a non-read kind reached the pending queue.
	ErrNotRead = errors.New("not a read command")
)
