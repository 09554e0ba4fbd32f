package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"ktm-hours/internal/domain"
)

func newTestRepo(t *testing.T) *SqliteShiftRepo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timesheet.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSqliteShiftRepo(db, path)
}

func record(employee string, day domain.Day, start, end domain.TimeOfDay, brk float64) domain.ShiftRecord {
	return domain.ShiftRecord{Employee: employee, Day: day, Start: start, End: end, Break: brk}
}

var (
	nineAM = domain.TimeOfDay{Hour: 9, Minute: 0, Meridiem: domain.AM}
	tenAM  = domain.TimeOfDay{Hour: 10, Minute: 0, Meridiem: domain.AM}
	fivePM = domain.TimeOfDay{Hour: 5, Minute: 0, Meridiem: domain.PM}
	sixPM  = domain.TimeOfDay{Hour: 6, Minute: 0, Meridiem: domain.PM}
	tenPM  = domain.TimeOfDay{Hour: 10, Minute: 0, Meridiem: domain.PM}
	twoAM  = domain.TimeOfDay{Hour: 2, Minute: 0, Meridiem: domain.AM}
)

func TestSqliteShiftRepo_Empty(t *testing.T) {
	repo := newTestRepo(t)

	shifts, err := repo.LoadShifts()
	if err != nil {
		t.Fatalf("LoadShifts: %v", err)
	}
	if len(shifts) != 0 {
		t.Errorf("want empty, got %d", len(shifts))
	}
	_, found, err := repo.GetShift("Kabiraj", domain.Monday)
	if err != nil {
		t.Fatalf("GetShift: %v", err)
	}
	if found {
		t.Error("want not found on empty store")
	}
}

func TestSqliteShiftRepo_UpsertOverwrite(t *testing.T) {
	repo := newTestRepo(t)
	first := record("Kabiraj", domain.Monday, nineAM, fivePM, 0.5)
	second := record("Kabiraj", domain.Monday, tenAM, sixPM, 1.0)

	for _, rec := range []domain.ShiftRecord{first, first, second} {
		if err := repo.UpsertShift(rec); err != nil {
			t.Fatalf("UpsertShift: %v", err)
		}
	}

	got, found, err := repo.GetShift("Kabiraj", domain.Monday)
	if err != nil || !found {
		t.Fatalf("GetShift: found=%v err=%v", found, err)
	}
	if got != second {
		t.Errorf("want %+v, got %+v", second, got)
	}
	shifts, _ := repo.LoadShifts()
	if len(shifts) != 1 {
		t.Errorf("want 1 row, got %d", len(shifts))
	}
}

func TestSqliteShiftRepo_OrderAndClear(t *testing.T) {
	repo := newTestRepo(t)
	a := record("Jenish Kandel", domain.Friday, tenPM, twoAM, 0)
	b := record("Goma Adhikari", domain.Friday, nineAM, fivePM, 0.5)
	a2 := record("Jenish Kandel", domain.Friday, tenPM, twoAM, 0.25)

	for _, rec := range []domain.ShiftRecord{a, b, a2} {
		if err := repo.UpsertShift(rec); err != nil {
			t.Fatalf("UpsertShift: %v", err)
		}
	}
	shifts, err := repo.LoadShifts()
	if err != nil {
		t.Fatalf("LoadShifts: %v", err)
	}
	if len(shifts) != 2 || shifts[0] != b || shifts[1] != a2 {
		t.Fatalf("want [b a2], got %+v", shifts)
	}

	if err := repo.ClearShifts(); err != nil {
		t.Fatalf("ClearShifts: %v", err)
	}
	shifts, err = repo.LoadShifts()
	if err != nil {
		t.Fatalf("LoadShifts after clear: %v", err)
	}
	if len(shifts) != 0 {
		t.Errorf("want empty after clear, got %d", len(shifts))
	}
}

func TestSqliteShiftRepo_ClosedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheet.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	repo := NewSqliteShiftRepo(db, path)
	db.Close()

	err = repo.UpsertShift(record("Kabiraj", domain.Monday, nineAM, fivePM, 0))
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("want *domain.StoreError, got %v", err)
	}
}
