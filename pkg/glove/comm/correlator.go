package comm

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

// Result is the outcome of a read request.
type Result struct {
	Err   error
	Raw   []byte
	Value int
}

// Request represents a pending read waiting for a device response.
type Request struct {
	pin      int
	kind     wire.Kind
	issuedAt time.Time
	resultCh chan Result
	done     bool
	next     *Request
}

// Pin returns the pin the read was issued for.
func (r *Request) Pin() int {
	return r.pin
}

// Kind returns the read kind.
func (r *Request) Kind() wire.Kind {
	return r.kind
}

// IssuedAt returns the time the read was enqueued.
func (r *Request) IssuedAt() time.Time {
	return r.issuedAt
}

// ResultChan returns the chan delivering the single result.
func (r *Request) ResultChan() <-chan Result {
	return r.resultCh
}

// Correlator matches inbound device data to the oldest pending read.
//
// The device replies to reads strictly in the order it received them
// and attaches no correlation token, so the pending queue order is the
// only pairing mechanism. The queue is owned exclusively by the
// Correlator and one Correlator is bound to one open connection.
type Correlator struct {
	lock   sync.Mutex
	head   *Request
	tail   *Request
	length int
	buf    []byte
	closed bool
}

// NewCorrelator creates a Correlator for one connection.
func NewCorrelator() *Correlator {
	return &Correlator{}
}

// IssueRead enqueues a pending read and returns its handle.
// The caller must enqueue before dispatching the encoded message to
// the transport, otherwise a response could arrive with no entry to
// match.
func (c *Correlator) IssueRead(pin int, kind wire.Kind) *Request {
	req := &Request{
		pin:      pin,
		kind:     kind,
		issuedAt: time.Now(),
		resultCh: make(chan Result, 1),
	}
	c.lock.Lock()
	if c.closed {
		c.resolve(req, Result{Err: ErrConnectionClosed})
		c.lock.Unlock()
		return req
	}
	if c.head == nil {
		c.head = req
	} else {
		c.tail.next = req
	}
	c.tail = req
	c.length++
	c.lock.Unlock()
	glog.V(4).Infof("pending %s pin=%d depth=%d", kind, pin, c.Len())
	return req
}

// WriteFailed retracts a read whose message could not be written and
// fails it with the transport error. The FIFO order of the remaining
// entries is preserved.
func (c *Correlator) WriteFailed(req *Request, err error) {
	c.lock.Lock()
	var prev *Request
	for curr := c.head; curr != nil; prev, curr = curr, curr.next {
		if curr != req {
			continue
		}
		if prev == nil {
			c.head = curr.next
		} else {
			prev.next = curr.next
		}
		if c.tail == curr {
			c.tail = prev
		}
		curr.next = nil
		c.length--
		c.resolve(req, Result{Err: err})
		break
	}
	c.lock.Unlock()
}

// OnData consumes one inbound chunk. Chunk boundaries carry no
// meaning: bytes are buffered until the oldest pending read has a
// complete response, then it is popped and resolved. Data arriving
// with no pending read is unattributable and dropped with a warning.
func (c *Correlator) OnData(chunk []byte) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return
	}
	c.buf = append(c.buf, chunk...)
	for c.head != nil {
		need := wire.ResponseLen(c.head.kind)
		if len(c.buf) < need {
			return
		}
		req := c.head
		if c.head = req.next; c.head == nil {
			c.tail = nil
		}
		req.next = nil
		c.length--
		raw := make([]byte, need)
		copy(raw, c.buf[:need])
		c.buf = c.buf[need:]
		c.resolve(req, parse(req.kind, raw))
	}
	if len(c.buf) > 0 {
		glog.Warningf("dropping %d unattributed bytes", len(c.buf))
		c.buf = nil
	}
}

// OnClose fails every pending read with ErrConnectionClosed and
// clears the queue. Safe to call more than once.
func (c *Correlator) OnClose() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.closed = true
	for req := c.head; req != nil; {
		next := req.next
		req.next = nil
		c.resolve(req, Result{Err: ErrConnectionClosed})
		req = next
	}
	c.head, c.tail, c.length = nil, nil, 0
	c.buf = nil
}

// Len returns the pending queue depth.
func (c *Correlator) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.length
}

// resolve completes a request exactly once. Callers hold c.lock.
func (c *Correlator) resolve(req *Request, res Result) {
	if req.done {
		return
	}
	req.done = true
	req.resultCh <- res
}

func parse(kind wire.Kind, raw []byte) Result {
	var (
		value int
		err   error
	)
	switch kind {
	case wire.KindDigitalRead:
		value, err = wire.ParseDigital(raw)
	case wire.KindAnalogRead:
		value, err = wire.ParseAnalog(raw)
	default:
		err = ErrNotRead
	}
	return Result{Err: err, Raw: raw, Value: value}
}
