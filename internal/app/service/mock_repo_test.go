package service

import (
	"ktm-hours/internal/domain"
)

// mockShiftRepo is an in-memory ShiftRepo; failWith, when set, is returned by every call.
type mockShiftRepo struct {
	shifts   []domain.ShiftRecord
	failWith error
	clears   int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{}
}

func (m *mockShiftRepo) LoadShifts() ([]domain.ShiftRecord, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]domain.ShiftRecord, len(m.shifts))
	copy(out, m.shifts)
	return out, nil
}

func (m *mockShiftRepo) UpsertShift(rec domain.ShiftRecord) error {
	if m.failWith != nil {
		return m.failWith
	}
	kept := m.shifts[:0]
	for _, s := range m.shifts {
		if s.Key() != rec.Key() {
			kept = append(kept, s)
		}
	}
	m.shifts = append(kept, rec)
	return nil
}

func (m *mockShiftRepo) ClearShifts() error {
	if m.failWith != nil {
		return m.failWith
	}
	m.clears++
	m.shifts = nil
	return nil
}

func (m *mockShiftRepo) GetShift(employee string, day domain.Day) (domain.ShiftRecord, bool, error) {
	if m.failWith != nil {
		return domain.ShiftRecord{}, false, m.failWith
	}
	for _, s := range m.shifts {
		if s.Employee == employee && s.Day == day {
			return s, true, nil
		}
	}
	return domain.ShiftRecord{}, false, nil
}
