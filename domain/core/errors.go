package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Missing resource errors. A missing indicator sheet is the only
	// condition allowed to halt processing of a whole indicator set.
	ErrNotFound          = errors.New("resource not found")
	ErrResourceMissing   = errors.New("indicator source missing")
	ErrSubmissionMissing = fmt.Errorf("%w: submission", ErrNotFound)

	// Validation errors
	ErrEmptyIndicatorSet = errors.New("indicator set is empty")
	ErrUnknownOrgType    = errors.New("unknown organization type")
	ErrUnknownTier       = errors.New("unknown tier")
)

// Error constructors with context
func NewSheetMissingError(levelKey string, available []string) error {
	return fmt.Errorf("%w: no sheet matches level %q (available: %v)", ErrResourceMissing, levelKey, available)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsResourceMissingError(err error) bool {
	return errors.Is(err, ErrResourceMissing)
}
