package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and controllers.
// Controllers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
	ErrConflict                = errors.New("conflict")
	ErrInvalidInput            = errors.New("invalid input")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// Conflict reasons. Each wraps ErrConflict.
var (
	ErrAlreadyEnrolled         = fmt.Errorf("%w: participant already enrolled", ErrConflict)
	ErrEventFull               = fmt.Errorf("%w: event capacity reached", ErrConflict)
	ErrEventNotOpen            = fmt.Errorf("%w: event not open for enrollment", ErrConflict)
	ErrEventHasParticipants    = fmt.Errorf("%w: cannot delete an event with enrolled participants", ErrConflict)
	ErrCapacityBelowEnrollment = fmt.Errorf("%w: capacity cannot be lower than the number of enrolled participants", ErrConflict)
	ErrEventNotActive          = fmt.Errorf("%w: only active events can be cancelled", ErrConflict)
)

// InvalidInputError wraps ErrInvalidInput with the list of validation messages.
func InvalidInputError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
