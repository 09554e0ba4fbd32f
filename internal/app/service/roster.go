package service

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownEmployee = errors.New("employee is not on the roster")

// ResolveEmployee returns the roster spelling of name, matching case-insensitively.
// An empty roster accepts any non-blank name as typed.
func ResolveEmployee(roster []string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUnknownEmployee
	}
	if len(roster) == 0 {
		return name, nil
	}
	for _, r := range roster {
		if strings.EqualFold(r, name) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmployee, name)
}
