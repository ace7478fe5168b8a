// Package sim provides an in-memory glove firmware for tests and demos.
package sim

import (
	"errors"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

// Glove simulates the device end of the link as an io.ReadWriteCloser.
// It decodes command messages, tracks pin state and answers reads in
// the order they arrive, which is the ordering contract the host-side
// correlator depends on.
type Glove struct {
	lock     sync.Mutex
	inbuf    []byte
	leftover []byte
	outCh    chan []byte
	closeCh  chan struct{}
	closed   bool

	modes     map[int]int
	levels    map[int]int
	analogOut map[int]int
	motor     map[int]int
	motorPins []int

	analogIn  map[int]int
	digitalIn map[int]int
}

// ErrClosed indicates the simulated device was closed.
var ErrClosed = errors.New("sim: closed")

// New creates a simulated glove with all input pins reading LOW/0.
func New() *Glove {
	return &Glove{
		outCh:     make(chan []byte, 64),
		closeCh:   make(chan struct{}),
		modes:     make(map[int]int),
		levels:    make(map[int]int),
		analogOut: make(map[int]int),
		motor:     make(map[int]int),
		analogIn:  make(map[int]int),
		digitalIn: make(map[int]int),
	}
}

// SetAnalog sets the value an analog read of pin will report.
func (g *Glove) SetAnalog(pin, value int) {
	g.lock.Lock()
	g.analogIn[pin] = value
	g.lock.Unlock()
}

// SetDigital sets the level a digital read of pin will report.
func (g *Glove) SetDigital(pin, level int) {
	g.lock.Lock()
	g.digitalIn[pin] = level
	g.lock.Unlock()
}

// Mode reports the configured mode of a pin.
func (g *Glove) Mode(pin int) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.modes[pin]
}

// Level reports the last digitally written level of a pin.
func (g *Glove) Level(pin int) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.levels[pin]
}

// AnalogOut reports the last analog value written to a pin.
func (g *Glove) AnalogOut(pin int) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.analogOut[pin]
}

// MotorPins reports the pins declared by init-motor.
func (g *Glove) MotorPins() []int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return append([]int(nil), g.motorPins...)
}

// MotorLevel reports the last activation value of a motor pin.
func (g *Glove) MotorLevel(pin int) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.motor[pin]
}

// Write consumes host bytes, possibly a partial or multiple messages.
func (g *Glove) Write(p []byte) (int, error) {
	g.lock.Lock()
	if g.closed {
		g.lock.Unlock()
		return 0, ErrClosed
	}
	g.inbuf = append(g.inbuf, p...)
	var resp []byte
	for {
		var cmd wire.Command
		n, err := wire.DecodeNext(g.inbuf, &cmd)
		if err != nil {
			// firmware skips garbage silently
			glog.Warningf("sim: dropping %d undecodable bytes: %v", len(g.inbuf), err)
			g.inbuf = nil
			break
		}
		if n == 0 {
			break
		}
		g.inbuf = g.inbuf[n:]
		resp = g.apply(cmd, resp)
	}
	// sent while holding the lock so responses keep command order
	if len(resp) > 0 {
		select {
		case g.outCh <- resp:
		case <-g.closeCh:
			g.lock.Unlock()
			return 0, ErrClosed
		}
	}
	g.lock.Unlock()
	return len(p), nil
}

// Read delivers response bytes, blocking until some are available.
func (g *Glove) Read(p []byte) (int, error) {
	if len(g.leftover) == 0 {
		select {
		case chunk := <-g.outCh:
			g.leftover = chunk
		case <-g.closeCh:
			return 0, io.EOF
		}
	}
	n := copy(p, g.leftover)
	g.leftover = g.leftover[n:]
	return n, nil
}

// Close stops the device. Blocked reads return io.EOF.
func (g *Glove) Close() error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	close(g.closeCh)
	return nil
}

func (g *Glove) apply(cmd wire.Command, resp []byte) []byte {
	switch cmd.Kind {
	case wire.KindInitMotor:
		g.motorPins = append([]int(nil), cmd.Pins...)
	case wire.KindActivateMotor:
		for i, pin := range cmd.Pins {
			g.motor[pin] = cmd.Values[i]
		}
	case wire.KindPinMode:
		for i, pin := range cmd.Pins {
			g.modes[pin] = cmd.Values[i]
		}
	case wire.KindDigitalWrite:
		for i, pin := range cmd.Pins {
			g.levels[pin] = cmd.Values[i]
		}
	case wire.KindAnalogWrite:
		for i, pin := range cmd.Pins {
			g.analogOut[pin] = cmd.Values[i]
		}
	case wire.KindDigitalRead:
		resp = wire.AppendDigital(resp, g.digitalIn[cmd.Pins[0]])
	case wire.KindAnalogRead:
		resp = wire.AppendAnalog(resp, g.analogIn[cmd.Pins[0]])
	}
	return resp
}
