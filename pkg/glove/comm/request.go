package comm

import "context"

// Wait blocks until the request resolves or the context expires.
func (r *Request) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-r.resultCh:
		if res.Err != nil {
			return res, res.Err
		}
		return res, nil
	case <-ctx.Done():
		return Result{Err: ctx.Err()}, ctx.Err()
	}
}
