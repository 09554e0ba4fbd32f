package flows

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/delivery/telegram/keyboards"
	"ktm-hours/internal/delivery/telegram/middleware"
	"ktm-hours/internal/delivery/telegram/router"
)

// ResetGuard holds the first step of the two-step reset per chat. A request
// can be confirmed once and only before it expires.
type ResetGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[int64]time.Time
	now     func() time.Time
}

func NewResetGuard(ttl time.Duration) *ResetGuard {
	return &ResetGuard{ttl: ttl, pending: make(map[int64]time.Time), now: time.Now}
}

// Request starts a reset for chatID and drops requests that have expired.
func (g *ResetGuard) Request(chatID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for id, deadline := range g.pending {
		if now.After(deadline) {
			delete(g.pending, id)
		}
	}
	g.pending[chatID] = now.Add(g.ttl)
}

// Confirm consumes the pending request and reports whether it was still valid.
func (g *ResetGuard) Confirm(chatID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	deadline, ok := g.pending[chatID]
	delete(g.pending, chatID)
	return ok && !g.now().After(deadline)
}

func (g *ResetGuard) Cancel(chatID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, chatID)
}

func RegisterReset(r *router.CallbackRouter, d *Deps) {
	r.Register(keyboards.ResetConfirm, func(c telebot.Context, _ string) error {
		chatID := c.Chat().ID
		if !d.Resets.Confirm(chatID) {
			return middleware.EditOrSend(c, "That reset request has expired. Send /reset again.")
		}
		_, err := service.Await(context.Background(), d.Async, func() (struct{}, error) {
			return struct{}{}, d.Timesheet.Reset()
		})
		if err != nil {
			d.Logger.Error("reset failed", zap.Int64("chat", chatID), zap.Error(err))
			return middleware.EditOrSend(c, "Reset failed: "+err.Error())
		}
		d.Logger.Info("timesheet reset", zap.Int64("chat", chatID), zap.Int64("user", c.Sender().ID))
		return middleware.EditOrSend(c, "All saved shifts have been deleted.")
	})

	r.Register(keyboards.ResetCancel, func(c telebot.Context, _ string) error {
		d.Resets.Cancel(c.Chat().ID)
		return middleware.EditOrSend(c, "Reset cancelled. Nothing was deleted.")
	})
}
