package flows

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/delivery/telegram/keyboards"
	"ktm-hours/internal/delivery/telegram/router"
	"ktm-hours/internal/domain"
	"ktm-hours/pkg/workerpool"
)

// ── helpers ──

// callbackContext implements the parts of telebot.Context a callback flow
// touches; anything else panics through the nil embedded interface.
type callbackContext struct {
	telebot.Context
	data   string
	edited []string
	sent   []string
}

func (c *callbackContext) Callback() *telebot.Callback { return &telebot.Callback{Data: c.data} }
func (c *callbackContext) Data() string                { return c.data }

func (c *callbackContext) Respond(...*telebot.CallbackResponse) error { return nil }

func (c *callbackContext) Edit(what interface{}, _ ...interface{}) error {
	c.edited = append(c.edited, fmt.Sprint(what))
	return nil
}

func (c *callbackContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

type brokenRepo struct{}

func (brokenRepo) LoadShifts() ([]domain.ShiftRecord, error) {
	return nil, &domain.StoreError{Op: "load", Path: "work_hours.csv", Err: errors.New("disk gone")}
}
func (brokenRepo) UpsertShift(domain.ShiftRecord) error { return errors.New("disk gone") }
func (brokenRepo) ClearShifts() error                   { return errors.New("disk gone") }
func (brokenRepo) GetShift(string, domain.Day) (domain.ShiftRecord, bool, error) {
	return domain.ShiftRecord{}, false, errors.New("disk gone")
}

// ── summary picker ──

func TestRegisterSummary_StoreErrorReplacesPicker(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 4)
	defer pool.Close()

	r := router.New(zap.NewNop())
	RegisterSummary(r, &Deps{
		Timesheet: service.NewTimesheetService(brokenRepo{}, zap.NewNop()),
		Async:     service.NewAsyncService(pool),
		Roster:    []string{"Kabiraj Lamichhane"},
		Logger:    zap.NewNop(),
	})

	c := &callbackContext{data: "\f" + keyboards.WeekPick + "|" + keyboards.WeekPickAll}
	handled, err := r.Dispatch(c)
	if err != nil || !handled {
		t.Fatalf("Dispatch: handled=%v err=%v", handled, err)
	}
	if len(c.sent) != 0 {
		t.Errorf("error should edit the picker, not send a new message: %v", c.sent)
	}
	if len(c.edited) != 1 || !strings.Contains(c.edited[0], "Could not load the timesheet") {
		t.Errorf("unexpected edits %v", c.edited)
	}
}
