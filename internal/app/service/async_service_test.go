package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ktm-hours/internal/domain"
	"ktm-hours/pkg/workerpool"
)

func TestAwait_ReturnsTypedResult(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 4)
	defer pool.Close()
	async := NewAsyncService(pool)

	got, err := Await(context.Background(), async, func() (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if got != 42 {
		t.Errorf("want 42, got %d", got)
	}

	wantErr := errors.New("boom")
	if _, err := Await(context.Background(), async, func() (int, error) { return 0, wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("want boom, got %v", err)
	}
}

func TestAwait_CancelledContext(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 0)
	defer pool.Close()
	async := NewAsyncService(pool)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _ = Await(context.Background(), async, func() (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Await(ctx, async, func() (int, error) { return 1, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// A single worker serializes concurrent saves so none are lost.
func TestAsyncService_SerializesSaves(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 8)
	defer pool.Close()
	async := NewAsyncService(pool)
	svc, repo := setupTestTimesheetService()

	var wg sync.WaitGroup
	for _, d := range domain.Week {
		d := d
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Await(context.Background(), async, func() (struct{}, error) {
				return struct{}{}, svc.SaveShift(nineToFive("Kabiraj", d, 0))
			})
			if err != nil {
				t.Errorf("save %s: %v", d, err)
			}
		}()
	}
	wg.Wait()

	if len(repo.shifts) != 7 {
		t.Errorf("want 7 rows, got %d", len(repo.shifts))
	}
}
