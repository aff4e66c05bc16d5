package service

import (
	"errors"
	"fmt"

	"github.com/scolaria/scolaria-backend/internal/model"
)

// Business errors shared across services. Handlers translate these into
// HTTP status codes; anything else bubbling out of a service is an
// unexpected datastore failure and surfaces as a 500.
var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrSlotNotFound          = errors.New("time slot not found")
	ErrReferenceNotFound     = errors.New("referenced record not found")
	ErrInvalidTimeRange      = errors.New("end_time must be after start_time")
	ErrInvalidValidityWindow = errors.New("valid_until must not be before valid_from")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUsernameTaken         = errors.New("username or email already registered")
)

// ConflictError is the expected failure of a timetable write: the
// candidate slot collides with existing entries. It carries the
// dimension and the colliding slots so the HTTP layer can return them.
type ConflictError struct {
	Conflict *model.ScheduleConflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict on %s dimension (%d colliding slots)",
		e.Conflict.Type, len(e.Conflict.Conflicts))
}
