package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Week lists the days in summary order.
var Week = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts a full English day name or its three-letter abbreviation, in any case.
func ParseDay(s string) (Day, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		lower := strings.ToLower(name)
		if in == lower || in == lower[:3] {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// ShiftKey identifies the single record an employee may have for a day.
type ShiftKey struct {
	Employee string
	Day      Day
}

// ShiftRecord is one saved row of the weekly form. Worked hours are not
// stored; call WorkedHours.
type ShiftRecord struct {
	Employee string
	Day      Day
	Start    TimeOfDay
	End      TimeOfDay
	Break    float64
}

func (r ShiftRecord) Key() ShiftKey {
	return ShiftKey{Employee: r.Employee, Day: r.Day}
}

func (r ShiftRecord) Validate() error {
	if strings.TrimSpace(r.Employee) == "" {
		return ErrEmptyEmployee
	}
	if strings.IndexFunc(r.Employee, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidEmployee, r.Employee)
	}
	if !r.Day.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, int(r.Day))
	}
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if r.Break < 0 || math.IsNaN(r.Break) || math.IsInf(r.Break, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidBreak, r.Break)
	}
	return nil
}

func (r ShiftRecord) WorkedHours() float64 {
	return ComputeWorkedHours(&r.Start, &r.End, r.Break)
}

// ShiftRepo persists at most one ShiftRecord per ShiftKey.
//
// GetShift reports a missing key with found == false and a nil error.
// LoadShifts on a store that was never written returns an empty slice.
// Implementations are not safe for concurrent writers.
type ShiftRepo interface {
	LoadShifts() ([]ShiftRecord, error)
	UpsertShift(rec ShiftRecord) error
	ClearShifts() error
	GetShift(employee string, day Day) (rec ShiftRecord, found bool, err error)
}
