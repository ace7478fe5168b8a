package transport

import (
	"context"
	"io"
	"net"

	"github.com/golang/glog"

	fx "github.com/robotalks/glove.go/pkg/framework"
)

// Dial connects to a glove exposed over a TCP stream, e.g. a serial
// device server or the simulator served by Serve. The byte protocol
// on the stream is identical to the serial one.
func Dial(addr string) (io.ReadWriteCloser, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &OpenError{Port: addr, Err: err}
	}
	return conn, nil
}

// Server exposes a device endpoint (usually the simulator) over TCP.
// One connection is served at a time; the device owns ordering state,
// so concurrent clients would corrupt correlation.
type Server struct {
	Addr   string
	Device io.ReadWriter
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return &OpenError{Port: s.Addr, Err: err}
	}
	glog.Infof("serving device on %s", ln.Addr())
	return fx.RunWithContextCloser(ctx, ln, func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			s.serve(conn)
		}
	})
}

func (s *Server) serve(conn net.Conn) {
	glog.V(4).Infof("client %s connected", conn.RemoteAddr())
	// The device->conn pump may stay blocked in Device.Read after the
	// client goes away; it exits on its next write to the closed conn.
	go io.Copy(conn, s.Device)
	io.Copy(s.Device, conn)
	conn.Close()
	glog.V(4).Infof("client %s gone", conn.RemoteAddr())
}
