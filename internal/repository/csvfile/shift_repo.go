// Package csvfile stores shift records in a single flat CSV table.
//
// Every write rewrites the whole file through a temporary file and a rename,
// so a reader sees either the old or the new table. The read-modify-write is
// not safe when several processes write the same path.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"ktm-hours/internal/domain"
)

var header = []string{
	"Employee", "Day",
	"Start_hr", "Start_min", "Start_ampm",
	"Break",
	"End_hr", "End_min", "End_ampm",
}

type CSVShiftRepo struct {
	path string
}

func NewCSVShiftRepo(path string) *CSVShiftRepo {
	return &CSVShiftRepo{path: path}
}

func (r *CSVShiftRepo) Path() string {
	return r.path
}

func (r *CSVShiftRepo) LoadShifts() ([]domain.ShiftRecord, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.ShiftRecord{}, nil
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "load", Path: r.path, Err: err}
	}
	defer f.Close()

	records, err := readTable(f)
	if err != nil {
		return nil, &domain.StoreError{Op: "load", Path: r.path, Err: err}
	}
	return records, nil
}

func (r *CSVShiftRepo) GetShift(employee string, day domain.Day) (domain.ShiftRecord, bool, error) {
	records, err := r.LoadShifts()
	if err != nil {
		return domain.ShiftRecord{}, false, err
	}
	key := domain.ShiftKey{Employee: employee, Day: day}
	for _, rec := range records {
		if rec.Key() == key {
			return rec, true, nil
		}
	}
	return domain.ShiftRecord{}, false, nil
}

// UpsertShift drops any row with the same (employee, day) and appends rec.
func (r *CSVShiftRepo) UpsertShift(rec domain.ShiftRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	records, err := r.LoadShifts()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, old := range records {
		if old.Key() != rec.Key() {
			kept = append(kept, old)
		}
	}
	kept = append(kept, rec)

	if err := r.writeTable(kept); err != nil {
		return &domain.StoreError{Op: "upsert", Path: r.path, Err: err}
	}
	return nil
}

// ClearShifts removes the file; a missing file already reads as an empty table.
func (r *CSVShiftRepo) ClearShifts() error {
	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StoreError{Op: "clear", Path: r.path, Err: err}
	}
	return nil
}

func (r *CSVShiftRepo) writeTable(records []domain.ShiftRecord) (err error) {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err = w.Write(encodeRow(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(r.path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func readTable(rd io.Reader) ([]domain.ShiftRecord, error) {
	cr := csv.NewReader(rd)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ShiftRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, col := range header {
		if head[i] != col {
			return nil, fmt.Errorf("unexpected header column %d: %q, want %q", i+1, head[i], col)
		}
	}

	records := []domain.ShiftRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		rec, err := decodeRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func encodeRow(rec domain.ShiftRecord) []string {
	return []string{
		rec.Employee,
		rec.Day.String(),
		strconv.Itoa(rec.Start.Hour),
		strconv.Itoa(rec.Start.Minute),
		string(rec.Start.Meridiem),
		strconv.FormatFloat(rec.Break, 'f', -1, 64),
		strconv.Itoa(rec.End.Hour),
		strconv.Itoa(rec.End.Minute),
		string(rec.End.Meridiem),
	}
}

func decodeRow(row []string) (domain.ShiftRecord, error) {
	var rec domain.ShiftRecord
	rec.Employee = row[0]

	day, err := domain.ParseDay(row[1])
	if err != nil {
		return rec, err
	}
	rec.Day = day

	if rec.Start, err = decodeTime(row[2], row[3], row[4]); err != nil {
		return rec, fmt.Errorf("start: %w", err)
	}
	if rec.Break, err = strconv.ParseFloat(row[5], 64); err != nil {
		return rec, fmt.Errorf("break: %w", err)
	}
	if rec.End, err = decodeTime(row[6], row[7], row[8]); err != nil {
		return rec, fmt.Errorf("end: %w", err)
	}
	return rec, rec.Validate()
}

func decodeTime(hour, minute, meridiem string) (domain.TimeOfDay, error) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return domain.TimeOfDay{}, err
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return domain.TimeOfDay{}, err
	}
	mer, err := domain.ParseMeridiem(meridiem)
	if err != nil {
		return domain.TimeOfDay{}, err
	}
	return domain.NewTimeOfDay(h, m, mer)
}
