package service

import (
	"context"

	"ktm-hours/pkg/workerpool"
)

// AsyncService runs store calls on a worker pool. With a single worker the
// calls are serialized, which keeps concurrent bot updates from interleaving
// their read-modify-write cycles.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

// SubmitAsync queues fn and waits for its result or for ctx to end.
func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Await is SubmitAsync with a typed result.
func Await[T any](ctx context.Context, a *AsyncService, fn func() (T, error)) (T, error) {
	v, err := a.SubmitAsync(ctx, func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}
