package service

import (
	"bytes"
	"errors"
	"math"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ktm-hours/internal/domain"
)

var (
	ErrExportNoShifts     = errors.New("no shifts have been entered yet")
	ErrExportGenerateFail = errors.New("failed to build the spreadsheet")
)

const (
	SummarySheet = "Weekly Summary"
	ShiftsSheet  = "Shifts"
	ExportName   = "weekly_summary.xlsx"
)

// ExportService renders the weekly summary as an xlsx workbook with two
// sheets: the per-day table and the raw saved shifts.
type ExportService struct {
	Timesheet *TimesheetService
	Logger    *zap.Logger
}

func NewExportService(ts *TimesheetService, logger *zap.Logger) *ExportService {
	return &ExportService{Timesheet: ts, Logger: logger}
}

// ExportWeekly returns the workbook and a suggested file name.
func (s *ExportService) ExportWeekly(roster []string) (*bytes.Buffer, string, error) {
	shifts, err := s.Timesheet.ListShifts()
	if err != nil {
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}
	summaries, err := s.Timesheet.Summaries(roster)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, "", s.generateFail(err)
	}
	if _, err := f.NewSheet(ShiftsSheet); err != nil {
		return nil, "", s.generateFail(err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", s.generateFail(err)
	}

	summaryHeader := []any{"Employee"}
	for _, d := range domain.Week {
		summaryHeader = append(summaryHeader, d.String())
	}
	summaryHeader = append(summaryHeader, "Weekly Total")
	if err := writeRow(f, SummarySheet, 1, summaryHeader, bold); err != nil {
		return nil, "", s.generateFail(err)
	}
	for i, ws := range summaries {
		row := []any{ws.Employee}
		for _, h := range ws.Hours {
			row = append(row, round2(h))
		}
		row = append(row, round2(ws.Total))
		if err := writeRow(f, SummarySheet, i+2, row, 0); err != nil {
			return nil, "", s.generateFail(err)
		}
	}

	shiftHeader := []any{"Employee", "Day", "Start", "End", "Break", "Hours"}
	if err := writeRow(f, ShiftsSheet, 1, shiftHeader, bold); err != nil {
		return nil, "", s.generateFail(err)
	}
	for i, sh := range shifts {
		row := []any{sh.Employee, sh.Day.String(), sh.Start.String(), sh.End.String(), sh.Break, round2(sh.WorkedHours())}
		if err := writeRow(f, ShiftsSheet, i+2, row, 0); err != nil {
			return nil, "", s.generateFail(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", s.generateFail(err)
	}
	s.Logger.Info("weekly summary exported",
		zap.Int("employees", len(summaries)),
		zap.Int("shifts", len(shifts)),
	)
	return buf, ExportName, nil
}

func (s *ExportService) generateFail(err error) error {
	s.Logger.Error("xlsx export failed", zap.Error(err))
	return errors.Join(ErrExportGenerateFail, err)
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
