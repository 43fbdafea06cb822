package models

import (
	"errors"
	"strings"
)

type FilterState string

const (
	FilterPending      FilterState = "pending"
	FilterAcknowledged FilterState = "acknowledged"
	FilterAll          FilterState = "all"

	DefaultFilter = FilterPending
)

var ErrInvalidFilter = errors.New("invalid filter state")

func ParseFilterState(s string) (FilterState, error) {
	switch FilterState(strings.ToLower(strings.TrimSpace(s))) {
	case FilterPending:
		return FilterPending, nil
	case FilterAcknowledged:
		return FilterAcknowledged, nil
	case FilterAll:
		return FilterAll, nil
	}
	return "", ErrInvalidFilter
}
