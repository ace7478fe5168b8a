package transport

import (
	"io"

	"golang.org/x/net/websocket"
)

// DialWebsocket connects to a glove bridged over a websocket. The
// conn carries the same byte protocol as the serial link; websocket
// frames are just chunk boundaries, which the correlator ignores.
func DialWebsocket(url, origin string) (io.ReadWriteCloser, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, &OpenError{Port: url, Err: err}
	}
	return conn, nil
}
