package transport

import (
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// SerialPort is a raw 8N1 serial connection to the glove.
type SerialPort struct {
	path string

	lock   sync.Mutex
	fd     int
	closed bool
}

// baudFlags maps supported baud rates to termios constants.
var baudFlags = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

// DefaultBaudRate is the rate the glove firmware ships with.
const DefaultBaudRate = 57600

// OpenSerial opens a serial device in raw mode at the given baud rate.
func OpenSerial(path string, baudRate int) (*SerialPort, error) {
	baud, ok := baudFlags[baudRate]
	if !ok {
		return nil, &OpenError{Port: path, Err: ErrBadBaudRate}
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, &OpenError{Port: path, Err: err}
	}
	if err = configureRaw(fd, baud); err != nil {
		unix.Close(fd)
		return nil, &OpenError{Port: path, Err: err}
	}
	glog.V(4).Infof("opened %s at %d baud", path, baudRate)
	return &SerialPort{path: path, fd: fd}, nil
}

// configureRaw sets raw mode, 8N1, blocking reads of at least one byte.
func configureRaw(fd int, baud uint32) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baud
	termios.Ispeed = baud
	termios.Ospeed = baud
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, termios)
}

// Read implements io.Reader.
func (p *SerialPort) Read(buf []byte) (int, error) {
	fd, err := p.handle()
	if err != nil {
		return 0, err
	}
	n, err := unix.Read(fd, buf)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write implements io.Writer.
func (p *SerialPort) Write(data []byte) (int, error) {
	fd, err := p.handle()
	if err != nil {
		return 0, err
	}
	written := 0
	for written < len(data) {
		n, err := unix.Write(fd, data[written:])
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// Close implements io.Closer. Safe to call more than once.
func (p *SerialPort) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	glog.V(4).Infof("closing %s", p.path)
	return unix.Close(p.fd)
}

// Name returns the device path.
func (p *SerialPort) Name() string {
	return p.path
}

func (p *SerialPort) handle() (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return 0, ErrPortClosed
	}
	return p.fd, nil
}
