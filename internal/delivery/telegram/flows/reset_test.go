package flows

import (
	"testing"
	"time"
)

func TestResetGuard(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	g := NewResetGuard(2 * time.Minute)
	g.now = func() time.Time { return now }

	if g.Confirm(1) {
		t.Fatal("confirm without a request must fail")
	}

	g.Request(1)
	if g.Confirm(2) {
		t.Error("another chat must not confirm chat 1's request")
	}
	if !g.Confirm(1) {
		t.Fatal("confirm right after request should succeed")
	}
	if g.Confirm(1) {
		t.Error("a request can only be confirmed once")
	}

	g.Request(1)
	now = now.Add(3 * time.Minute)
	if g.Confirm(1) {
		t.Error("expired request must not confirm")
	}

	g.Request(1)
	g.Cancel(1)
	if g.Confirm(1) {
		t.Error("cancelled request must not confirm")
	}
}

func TestResetGuard_DropsExpiredRequests(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	g := NewResetGuard(2 * time.Minute)
	g.now = func() time.Time { return now }

	for id := int64(1); id <= 5; id++ {
		g.Request(id)
	}
	if n := g.pendingCount(); n != 5 {
		t.Fatalf("want 5 pending, got %d", n)
	}

	now = now.Add(3 * time.Minute)
	g.Request(6)
	if n := g.pendingCount(); n != 1 {
		t.Errorf("expired requests should be dropped, %d still pending", n)
	}
	if !g.Confirm(6) {
		t.Error("fresh request should confirm")
	}
}

func (g *ResetGuard) pendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
