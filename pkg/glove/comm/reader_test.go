package comm

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

func TestReaderFeedsCorrelator(t *testing.T) {
	pr, pw := io.Pipe()
	c := NewCorrelator()
	reader := &Reader{Source: pr, Correlator: c}

	errCh := make(chan error, 1)
	go func() {
		errCh <- reader.Run(context.Background())
	}()

	req := c.IssueRead(2, wire.KindAnalogRead)
	_, err := pw.Write(wire.AppendAnalog(nil, 300))
	require.NoError(t, err)
	res := result(t, req)
	require.NoError(t, res.Err)
	require.Equal(t, 300, res.Value)

	pending := c.IssueRead(3, wire.KindAnalogRead)
	require.NoError(t, pw.Close())
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("reader did not stop")
	}
	require.Equal(t, ErrConnectionClosed, result(t, pending).Err)
	require.Zero(t, c.Len())
}
