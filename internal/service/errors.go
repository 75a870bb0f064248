package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service error taxonomy. Handlers map these to HTTP statuses:
// NotFound → 404, InvalidState / Validation → 400, Conflict → 409,
// Persistence → 500. Wrap with fmt.Errorf("...: %w", Err...) so callers can
// classify with errors.Is while keeping the human-readable detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
)

// classifyDBError translates known datastore failures into the taxonomy and
// wraps everything else as a persistence failure. The engine never swallows a
// datastore error.
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%v: %w", err, ErrConflict)
	}
	return fmt.Errorf("%v: %w", err, ErrPersistence)
}
