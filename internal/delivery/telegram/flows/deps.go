package flows

import (
	"context"

	"go.uber.org/zap"

	"ktm-hours/internal/app/service"
)

// Deps is what the callback flows need from the bot.
type Deps struct {
	Timesheet *service.TimesheetService
	Async     *service.AsyncService
	Roster    []string
	Resets    *ResetGuard
	Logger    *zap.Logger
}

// Summaries loads summaries for names through the async executor.
func (d *Deps) Summaries(names []string) ([]service.WeeklySummary, error) {
	return service.Await(context.Background(), d.Async, func() ([]service.WeeklySummary, error) {
		return d.Timesheet.Summaries(names)
	})
}
