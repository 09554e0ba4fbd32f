package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// ParseMeridiem accepts "AM" or "PM" in any case.
func ParseMeridiem(s string) (Meridiem, error) {
	switch Meridiem(strings.ToUpper(strings.TrimSpace(s))) {
	case AM:
		return AM, nil
	case PM:
		return PM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMeridiem, s)
}

// TimeOfDay is a 12-hour clock reading as entered on the form.
type TimeOfDay struct {
	Hour     int
	Minute   int
	Meridiem Meridiem
}

// NewTimeOfDay validates its arguments; out-of-range values are rejected, never normalized.
func NewTimeOfDay(hour, minute int, m Meridiem) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute, Meridiem: m}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 1 || t.Hour > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %d", ErrInvalidMinute, t.Minute)
	}
	if t.Meridiem != AM && t.Meridiem != PM {
		return fmt.Errorf("%w: %q", ErrInvalidMeridiem, string(t.Meridiem))
	}
	return nil
}

// MinuteOfDay maps the reading onto [0, 1440). 12 AM is midnight, 12 PM is noon.
func (t TimeOfDay) MinuteOfDay() int {
	h := t.Hour % 12
	if t.Meridiem == PM {
		h += 12
	}
	return h*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d %s", t.Hour, t.Minute, t.Meridiem)
}

// FromMinuteOfDay is the inverse of MinuteOfDay. Values outside [0, 1440) wrap.
func FromMinuteOfDay(mod int) TimeOfDay {
	mod %= minutesPerDay
	if mod < 0 {
		mod += minutesPerDay
	}
	h24, m := mod/60, mod%60
	t := TimeOfDay{Hour: h24 % 12, Minute: m, Meridiem: AM}
	if h24 >= 12 {
		t.Meridiem = PM
	}
	if t.Hour == 0 {
		t.Hour = 12
	}
	return t
}

// ParseTimeOfDay reads "9:30 AM", "9AM", "09:30pm" or a 24-hour "17:30".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if raw == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty", ErrInvalidTimeFormat)
	}

	var m Meridiem
	switch {
	case strings.HasSuffix(raw, string(AM)):
		m, raw = AM, strings.TrimSuffix(raw, string(AM))
	case strings.HasSuffix(raw, string(PM)):
		m, raw = PM, strings.TrimSuffix(raw, string(PM))
	}

	hourStr, minStr, hasColon := strings.Cut(raw, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute := 0
	if hasColon {
		if len(minStr) != 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		if minute, err = strconv.Atoi(minStr); err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	if m != "" {
		return NewTimeOfDay(hour, minute, m)
	}

	// 24-hour clock needs the colon so "9" alone stays ambiguous.
	if !hasColon {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %d", ErrInvalidMinute, minute)
	}
	return FromMinuteOfDay(hour*60 + minute), nil
}
