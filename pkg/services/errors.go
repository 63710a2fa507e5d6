package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks missing or unusable static reference data.
	ErrConfiguration = errors.New("configuration error")
	// ErrEmptyCatalog is returned when no crop is available to score.
	ErrEmptyCatalog = fmt.Errorf("%w: crop catalog is empty", ErrConfiguration)
	// ErrNotFound is returned by reference lookups with no matching row.
	ErrNotFound = errors.New("not found")
)

func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
