package glove

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/glove.go/pkg/framework"
	"github.com/robotalks/glove.go/pkg/glove/comm"
	"github.com/robotalks/glove.go/pkg/glove/wire"
)

// Device is the host-side facade over one open glove connection.
//
// Write-only operations complete when the transport accepts the
// message. Read operations return a handle resolving when the
// correlator matches a device response. One Device owns one
// connection and one correlator; do not share the connection.
type Device struct {
	conn       io.ReadWriteCloser
	correlator *comm.Correlator
	writeLock  sync.Mutex
}

// New creates a Device over an open connection.
func New(conn io.ReadWriteCloser) *Device {
	return &Device{
		conn:       conn,
		correlator: comm.NewCorrelator(),
	}
}

// Run drives the inbound side of the connection and implements
// framework.Runnable. It returns when the connection fails or the
// context is canceled; either way all pending reads are failed.
func (d *Device) Run(ctx context.Context) error {
	reader := &comm.Reader{Source: d.conn, Correlator: d.correlator}
	return fx.RunWithContextCloser(ctx, d.conn, func() error {
		return reader.Run(ctx)
	})
}

// Close closes the connection. Pending reads fail once the read loop
// observes the closure.
func (d *Device) Close() error {
	return d.conn.Close()
}

// Pending reports the number of reads awaiting a response.
func (d *Device) Pending() int {
	return d.correlator.Len()
}

// InitializeMotor declares the motor pins to the firmware.
func (d *Device) InitializeMotor(pins []int) error {
	return d.send(wire.Command{Kind: wire.KindInitMotor, Pins: pins})
}

// ActivateMotor drives the motor pins with the given levels or
// strengths (LOW/HIGH or 0-255).
func (d *Device) ActivateMotor(pins, values []int) error {
	return d.send(wire.Command{Kind: wire.KindActivateMotor, Pins: pins, Values: values})
}

// PinMode configures pins as INPUT or OUTPUT.
func (d *Device) PinMode(pins, modes []int) error {
	return d.send(wire.Command{Kind: wire.KindPinMode, Pins: pins, Values: modes})
}

// DigitalWrite sets pins to LOW or HIGH.
func (d *Device) DigitalWrite(pins, values []int) error {
	return d.send(wire.Command{Kind: wire.KindDigitalWrite, Pins: pins, Values: values})
}

// AnalogWrite sets pins to analog values 0-255.
func (d *Device) AnalogWrite(pins, values []int) error {
	return d.send(wire.Command{Kind: wire.KindAnalogWrite, Pins: pins, Values: values})
}

// AnalogRead requests the analog value of a pin. The returned handle
// resolves with the value, or with an error if the write failed or
// the connection closed first.
func (d *Device) AnalogRead(pin int) *comm.Request {
	return d.read(pin, wire.KindAnalogRead)
}

// DigitalRead requests the digital level of a pin.
func (d *Device) DigitalRead(pin int) *comm.Request {
	return d.read(pin, wire.KindDigitalRead)
}

// AnalogReadValue is the blocking form of AnalogRead.
func (d *Device) AnalogReadValue(ctx context.Context, pin int) (int, error) {
	res, err := d.AnalogRead(pin).Wait(ctx)
	return res.Value, err
}

// DigitalReadValue is the blocking form of DigitalRead.
func (d *Device) DigitalReadValue(ctx context.Context, pin int) (bool, error) {
	res, err := d.DigitalRead(pin).Wait(ctx)
	return res.Value == wire.High, err
}

func (d *Device) send(cmd wire.Command) error {
	msg, err := wire.Encode(cmd)
	if err != nil {
		return err
	}
	return d.write(msg)
}

// read enqueues the pending entry before dispatching the message, so
// a response can never arrive without an entry to match. A failed
// write retracts the entry again.
func (d *Device) read(pin int, kind wire.Kind) *comm.Request {
	req := d.correlator.IssueRead(pin, kind)
	msg, err := wire.Encode(wire.Command{Kind: kind, Pins: []int{pin}})
	if err == nil {
		err = d.write(msg)
	}
	if err != nil {
		d.correlator.WriteFailed(req, err)
	}
	return req
}

func (d *Device) write(msg []byte) error {
	d.writeLock.Lock()
	defer d.writeLock.Unlock()
	if _, err := d.conn.Write(msg); err != nil {
		glog.V(4).Infof("write failed: %v", err)
		return err
	}
	return nil
}
