package service

import (
	"go.uber.org/zap"

	"ktm-hours/internal/domain"
)

// WeeklySummary holds one employee's worked hours for Monday through Sunday.
// Days without a saved shift count as zero.
type WeeklySummary struct {
	Employee string
	Hours    [7]float64
	Total    float64
}

func (w WeeklySummary) DayHours(d domain.Day) float64 {
	if !d.Valid() {
		return 0
	}
	return w.Hours[d]
}

type TimesheetService struct {
	Repo   domain.ShiftRepo
	Logger *zap.Logger
}

func NewTimesheetService(repo domain.ShiftRepo, logger *zap.Logger) *TimesheetService {
	return &TimesheetService{Repo: repo, Logger: logger}
}

// SaveShift writes the complete record for its (employee, day), replacing any earlier one.
func (s *TimesheetService) SaveShift(rec domain.ShiftRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := s.Repo.UpsertShift(rec); err != nil {
		s.Logger.Error("save shift failed",
			zap.String("employee", rec.Employee),
			zap.Stringer("day", rec.Day),
			zap.Error(err),
		)
		return err
	}
	s.Logger.Info("shift saved",
		zap.String("employee", rec.Employee),
		zap.Stringer("day", rec.Day),
		zap.Stringer("start", rec.Start),
		zap.Stringer("end", rec.End),
		zap.Float64("break", rec.Break),
		zap.Float64("hours", rec.WorkedHours()),
	)
	return nil
}

func (s *TimesheetService) GetShift(employee string, day domain.Day) (domain.ShiftRecord, bool, error) {
	return s.Repo.GetShift(employee, day)
}

func (s *TimesheetService) ListShifts() ([]domain.ShiftRecord, error) {
	return s.Repo.LoadShifts()
}

// Reset clears every saved shift. Callers must have collected an explicit
// confirmation before calling it.
func (s *TimesheetService) Reset() error {
	if err := s.Repo.ClearShifts(); err != nil {
		s.Logger.Error("reset failed", zap.Error(err))
		return err
	}
	s.Logger.Warn("all shifts cleared")
	return nil
}

func (s *TimesheetService) WeeklySummary(employee string) (WeeklySummary, error) {
	shifts, err := s.Repo.LoadShifts()
	if err != nil {
		return WeeklySummary{}, err
	}
	return summarize(employee, shifts), nil
}

// Summaries returns one summary per roster name, in roster order, then one for
// each employee found in the store but missing from the roster.
func (s *TimesheetService) Summaries(roster []string) ([]WeeklySummary, error) {
	shifts, err := s.Repo.LoadShifts()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roster))
	seen := make(map[string]bool, len(roster))
	for _, n := range roster {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, sh := range shifts {
		if !seen[sh.Employee] {
			seen[sh.Employee] = true
			names = append(names, sh.Employee)
		}
	}

	summaries := make([]WeeklySummary, 0, len(names))
	for _, n := range names {
		summaries = append(summaries, summarize(n, shifts))
	}
	return summaries, nil
}

func summarize(employee string, shifts []domain.ShiftRecord) WeeklySummary {
	ws := WeeklySummary{Employee: employee}
	for _, sh := range shifts {
		if sh.Employee != employee || !sh.Day.Valid() {
			continue
		}
		ws.Hours[sh.Day] = sh.WorkedHours()
	}
	for _, h := range ws.Hours {
		ws.Total += h
	}
	return ws
}
