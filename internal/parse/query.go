package parse

import (
	"fmt"
	"strconv"
	"strings"

	"booking-admin/internal/model"
)

// Filter parses a status filter from a query value. Empty or "all" selects every status.
func Filter(raw string) (model.Filter, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == string(model.FilterAll) {
		return model.FilterAll, nil
	}
	if !model.Status(s).Valid() {
		return "", fmt.Errorf("unknown status filter: %q", raw)
	}
	return model.Filter(s), nil
}

// Status parses a booking status submitted by the operator.
func Status(raw string) (model.Status, error) {
	s := model.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status: %q", raw)
	}
	return s, nil
}

// Page parses a 1-indexed page number.
func Page(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid page: %q", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("page must be positive: %d", n)
	}
	return n, nil
}

// ID parses a booking id from a path segment.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id: %q", raw)
	}
	return id, nil
}

// Search normalizes a search term; surrounding whitespace is not significant.
func Search(raw string) string {
	return strings.TrimSpace(raw)
}
