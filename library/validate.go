package library

import (
	"strconv"
	"strings"
)

// ParseYear accepts a decimal year between 0 and maxYear inclusive. Signs,
// spaces inside the number and non-ASCII digits are rejected.
func ParseYear(s string, maxYear int) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, &ValidationError{Field: "year", Value: s, Reason: "must not be empty"}
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, &ValidationError{Field: "year", Value: s, Reason: "must be a non-negative whole number"}
		}
	}
	year, err := strconv.Atoi(v)
	if err != nil || year > maxYear {
		return 0, &ValidationError{Field: "year", Value: s, Reason: "must not be later than " + strconv.Itoa(maxYear)}
	}
	return year, nil
}

// parseNewStatus is the strict check used by change-status.
func parseNewStatus(s string) (Status, error) {
	st, ok := ParseStatus(s)
	if !ok {
		return "", &ValidationError{
			Field:  "status",
			Value:  s,
			Reason: "must be " + string(StatusAvailable) + " or " + string(StatusCheckedOut),
		}
	}
	return st, nil
}
