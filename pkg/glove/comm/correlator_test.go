package comm

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

func result(t *testing.T, req *Request) Result {
	t.Helper()
	select {
	case res := <-req.ResultChan():
		return res
	case <-time.After(500 * time.Millisecond):
		t.Fatal("result timeout")
		return Result{}
	}
}

func requireUnresolved(t *testing.T, req *Request) {
	t.Helper()
	select {
	case res := <-req.ResultChan():
		t.Fatalf("request resolved early: %+v", res)
	default:
	}
}

func TestFIFOOrder(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			c := NewCorrelator()
			reqs := make([]*Request, n)
			for i := range reqs {
				reqs[i] = c.IssueRead(i, wire.KindAnalogRead)
			}
			require.Equal(t, n, c.Len())
			for i := range reqs {
				c.OnData(wire.AppendAnalog(nil, 100+i))
			}
			for i, req := range reqs {
				res := result(t, req)
				require.NoError(t, res.Err)
				require.Equal(t, 100+i, res.Value)
			}
			require.Zero(t, c.Len())
		})
	}
}

func TestDigitalReadPairing(t *testing.T) {
	c := NewCorrelator()
	first := c.IssueRead(7, wire.KindDigitalRead)
	second := c.IssueRead(8, wire.KindDigitalRead)

	c.OnData([]byte{wire.Low})
	c.OnData([]byte{wire.High})

	res := result(t, first)
	require.NoError(t, res.Err)
	require.Equal(t, wire.Low, res.Value)

	res = result(t, second)
	require.NoError(t, res.Err)
	require.Equal(t, wire.High, res.Value)
}

func TestChunkReassembly(t *testing.T) {
	c := NewCorrelator()
	first := c.IssueRead(2, wire.KindAnalogRead)
	second := c.IssueRead(3, wire.KindAnalogRead)

	// one response split across chunks, the next glued to its tail
	resp := wire.AppendAnalog(nil, 513)
	resp = wire.AppendAnalog(resp, 64)
	c.OnData(resp[:1])
	requireUnresolved(t, first)
	c.OnData(resp[1:])

	res := result(t, first)
	require.NoError(t, res.Err)
	require.Equal(t, 513, res.Value)
	res = result(t, second)
	require.NoError(t, res.Err)
	require.Equal(t, 64, res.Value)
}

func TestCloseDrainsQueue(t *testing.T) {
	c := NewCorrelator()
	reqs := []*Request{
		c.IssueRead(2, wire.KindAnalogRead),
		c.IssueRead(7, wire.KindDigitalRead),
	}
	c.OnClose()
	require.Zero(t, c.Len())
	for _, req := range reqs {
		res := result(t, req)
		require.Equal(t, ErrConnectionClosed, res.Err)
	}
	// close is idempotent and later reads fail immediately
	c.OnClose()
	late := c.IssueRead(9, wire.KindDigitalRead)
	require.Equal(t, ErrConnectionClosed, result(t, late).Err)
}

func TestWriteFailedRetraction(t *testing.T) {
	c := NewCorrelator()
	first := c.IssueRead(1, wire.KindDigitalRead)
	failed := c.IssueRead(2, wire.KindDigitalRead)
	third := c.IssueRead(3, wire.KindDigitalRead)

	writeErr := errors.New("write: device gone")
	c.WriteFailed(failed, writeErr)
	require.Equal(t, 2, c.Len())
	require.Equal(t, writeErr, result(t, failed).Err)

	c.OnData([]byte{wire.High, wire.Low})
	res := result(t, first)
	require.NoError(t, res.Err)
	require.Equal(t, wire.High, res.Value)
	res = result(t, third)
	require.NoError(t, res.Err)
	require.Equal(t, wire.Low, res.Value)
}

func TestWriteFailedTail(t *testing.T) {
	c := NewCorrelator()
	first := c.IssueRead(1, wire.KindAnalogRead)
	tail := c.IssueRead(2, wire.KindAnalogRead)

	c.WriteFailed(tail, errors.New("boom"))
	require.Equal(t, 1, c.Len())

	// tail pointer must still be usable for new entries
	next := c.IssueRead(3, wire.KindAnalogRead)
	c.OnData(wire.AppendAnalog(wire.AppendAnalog(nil, 1), 2))
	require.Equal(t, 1, result(t, first).Value)
	require.Equal(t, 2, result(t, next).Value)
}

func TestUnattributedData(t *testing.T) {
	c := NewCorrelator()
	c.OnData([]byte{0xde, 0xad})
	require.Zero(t, c.Len())

	// correlation keeps working afterwards
	req := c.IssueRead(7, wire.KindDigitalRead)
	c.OnData([]byte{wire.High})
	res := result(t, req)
	require.NoError(t, res.Err)
	require.Equal(t, wire.High, res.Value)
}

func TestResolveOnce(t *testing.T) {
	c := NewCorrelator()
	req := c.IssueRead(7, wire.KindDigitalRead)
	c.OnData([]byte{wire.High})
	c.WriteFailed(req, errors.New("late failure"))
	c.OnClose()

	res := result(t, req)
	require.NoError(t, res.Err)
	require.Equal(t, wire.High, res.Value)
	requireUnresolved(t, req)
}
