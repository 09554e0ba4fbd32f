package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/domain"
)

var errUsage = errors.New("wrong number of fields")

// splitArgs splits a command payload on '|' and trims each field.
func splitArgs(payload string) []string {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	parts := strings.Split(payload, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseShift reads "Employee | Day | Start | End [| Break]".
func parseShift(roster []string, payload string) (domain.ShiftRecord, error) {
	args := splitArgs(payload)
	if len(args) != 4 && len(args) != 5 {
		return domain.ShiftRecord{}, errUsage
	}

	employee, day, err := parseKeyArgs(roster, args[0], args[1])
	if err != nil {
		return domain.ShiftRecord{}, err
	}
	start, err := domain.ParseTimeOfDay(args[2])
	if err != nil {
		return domain.ShiftRecord{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseTimeOfDay(args[3])
	if err != nil {
		return domain.ShiftRecord{}, fmt.Errorf("end: %w", err)
	}
	brk := 0.0
	if len(args) == 5 && args[4] != "" {
		if brk, err = strconv.ParseFloat(args[4], 64); err != nil {
			return domain.ShiftRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidBreak, args[4])
		}
	}

	rec := domain.ShiftRecord{Employee: employee, Day: day, Start: start, End: end, Break: brk}
	return rec, rec.Validate()
}

// parseKey reads "Employee | Day".
func parseKey(roster []string, payload string) (string, domain.Day, error) {
	args := splitArgs(payload)
	if len(args) != 2 {
		return "", 0, errUsage
	}
	return parseKeyArgs(roster, args[0], args[1])
}

func parseKeyArgs(roster []string, name, dayStr string) (string, domain.Day, error) {
	employee, err := service.ResolveEmployee(roster, name)
	if err != nil {
		return "", 0, err
	}
	day, err := domain.ParseDay(dayStr)
	if err != nil {
		return "", 0, err
	}
	return employee, day, nil
}
