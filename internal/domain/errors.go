package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated   = errors.New("no authenticated actor")
	ErrForbidden         = errors.New("action not allowed for this actor")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrFeedbackRequired  = errors.New("feedback is required to reject a presentation")
	ErrLocked            = errors.New("record can no longer be changed in its current status")
)

// NewValidationError tags err so that callers can match it with ErrValidation
// while keeping the field level details of err.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrValidation, err)
}
