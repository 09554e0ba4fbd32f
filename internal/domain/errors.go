package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHour       = errors.New("hour must be between 1 and 12")
	ErrInvalidMinute     = errors.New("minute must be between 0 and 59")
	ErrInvalidMeridiem   = errors.New("meridiem must be AM or PM")
	ErrInvalidTimeFormat = errors.New("time must look like 9:30 AM or 17:30")
	ErrInvalidDay        = errors.New("day must be Monday through Sunday")
	ErrInvalidBreak      = errors.New("break must be a non-negative number of hours")
	ErrEmptyEmployee     = errors.New("employee name is empty")
	ErrInvalidEmployee   = errors.New("employee name must not contain control characters")
)

// StoreError is returned when the backing medium of a ShiftRepo cannot be
// read or written.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("timesheet store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
