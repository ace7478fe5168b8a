package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/viper"

	"github.com/robotalks/glove.go/pkg/glove"
	"github.com/robotalks/glove.go/pkg/glove/sim"
	"github.com/robotalks/glove.go/pkg/transport"
)

// session is an open device connection with a running read loop.
type session struct {
	Device *glove.Device
	Sim    *sim.Glove

	cancel context.CancelFunc
	doneCh chan error
}

var errNoEndpoint = errors.New("no device endpoint: use --port, --addr, --ws or --sim")

// openSession connects per the persistent flags and starts the
// device read loop.
func openSession() (*session, error) {
	var (
		conn io.ReadWriteCloser
		simG *sim.Glove
		err  error
	)
	switch {
	case viper.GetBool("sim"):
		simG = sim.New()
		conn = simG
	case viper.GetString("addr") != "":
		conn, err = transport.Dial(viper.GetString("addr"))
	case viper.GetString("ws") != "":
		conn, err = transport.DialWebsocket(viper.GetString("ws"), "http://localhost/")
	case viper.GetString("port") != "":
		conn, err = transport.OpenSerial(viper.GetString("port"), viper.GetInt("baud"))
	default:
		err = errNoEndpoint
	}
	if err != nil {
		return nil, err
	}
	dev := glove.New(conn)
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		Device: dev,
		Sim:    simG,
		cancel: cancel,
		doneCh: make(chan error, 1),
	}
	go func() {
		s.doneCh <- dev.Run(ctx)
	}()
	return s, nil
}

// Close stops the read loop and closes the connection.
func (s *session) Close() {
	s.cancel()
	<-s.doneCh
}
