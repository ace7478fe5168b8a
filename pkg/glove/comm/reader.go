package comm

import (
	"context"
	"io"

	"github.com/golang/glog"
)

// Reader pumps inbound chunks from a connection into a Correlator.
type Reader struct {
	Source     io.Reader
	Correlator *Correlator
}

// Run reads until the source fails or the context is canceled, then
// drains the pending queue. The source must be closed by the caller to
// unblock a pending Read on cancellation; see framework.RunWithContextCloser.
func (r *Reader) Run(ctx context.Context) error {
	defer r.Correlator.OnClose()
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.Source.Read(buf)
		if n > 0 {
			r.Correlator.OnData(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				glog.V(4).Info("connection ended")
				return nil
			}
			return err
		}
	}
}
