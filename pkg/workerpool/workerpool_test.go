package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsTasks(t *testing.T) {
	wp := NewWorkerPool(3, 8)
	defer wp.Close()

	var count int64
	results := make(chan Result, 10)
	for i := 0; i < 10; i++ {
		i := i
		err := wp.Submit(context.Background(), Task{
			Fn: func() (any, error) {
				atomic.AddInt64(&count, 1)
				return i, nil
			},
			ResultC: results,
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	sum := 0
	for i := 0; i < 10; i++ {
		res := <-results
		if res.Err != nil {
			t.Fatalf("task error: %v", res.Err)
		}
		sum += res.Value.(int)
	}
	if sum != 45 {
		t.Errorf("want sum 45, got %d", sum)
	}
	if atomic.LoadInt64(&count) != 10 {
		t.Errorf("want 10 runs, got %d", count)
	}
}

func TestWorkerPool_CloseDrainsQueue(t *testing.T) {
	wp := NewWorkerPool(1, 4)
	var count int64
	for i := 0; i < 4; i++ {
		if err := wp.Submit(context.Background(), Task{Fn: func() (any, error) {
			atomic.AddInt64(&count, 1)
			return nil, nil
		}}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	wp.Close()
	if got := atomic.LoadInt64(&count); got != 4 {
		t.Errorf("want 4 tasks run before Close returns, got %d", got)
	}
	if err := wp.Submit(context.Background(), Task{Fn: func() (any, error) { return nil, nil }}); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit after Close: want ErrClosed, got %v", err)
	}
	wp.Close()
}

func TestWorkerPool_SubmitHonorsContext(t *testing.T) {
	wp := NewWorkerPool(1, 0)
	defer wp.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	if err := wp.Submit(context.Background(), Task{Fn: func() (any, error) {
		close(started)
		<-release
		return nil, nil
	}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := wp.Submit(ctx, Task{Fn: func() (any, error) { return nil, nil }})
	close(release)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want DeadlineExceeded, got %v", err)
	}
}
