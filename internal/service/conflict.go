package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scolaria/scolaria-backend/internal/model"
)

// ConflictStore is the slice of the timetable store the conflict check
// reads. Both queries narrow only by location/teacher and weekday; the
// overlap, recurrence and validity predicates run in memory here so the
// algorithm stays independent of the query language and testable on its
// own.
type ConflictStore interface {
	FindByRoom(ctx context.Context, classroom string, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error)
	FindByTeacher(ctx context.Context, teacherID int, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error)
}

// CourseDirectory resolves a course to its assigned teacher.
type CourseDirectory interface {
	ResolveTeacher(ctx context.Context, courseID int) (int, error)
}

// ConflictDetector decides whether a candidate slot collides with
// existing timetable entries. It is stateless and never writes; it is
// safe to call concurrently for different candidates, but the
// detect-then-write sequence for one candidate is not atomic on its own
// (see TimetableService).
type ConflictDetector struct {
	store   ConflictStore
	courses CourseDirectory
}

// NewConflictDetector creates a new ConflictDetector.
func NewConflictDetector(store ConflictStore, courses CourseDirectory) *ConflictDetector {
	return &ConflictDetector{store: store, courses: courses}
}

// Detect checks the candidate against existing slots on two dimensions,
// room first, then teacher. The first dimension with a hit wins and the
// other is not evaluated. A nil result means no conflict. excludeID, if
// set, removes one slot (the candidate's own persisted row, on update)
// from both dimensions.
func (d *ConflictDetector) Detect(ctx context.Context, cand model.TimeSlot, excludeID *int) (*model.ScheduleConflict, error) {
	// A slot without a classroom occupies no room at all (remote or
	// online courses), so the room dimension does not apply.
	if cand.Classroom != nil {
		existing, err := d.store.FindByRoom(ctx, *cand.Classroom, cand.DayOfWeek, excludeID)
		if err != nil {
			return nil, fmt.Errorf("query room slots: %w", err)
		}
		if hits := collideAll(cand, existing); len(hits) > 0 {
			return &model.ScheduleConflict{Type: model.ConflictClassroom, Conflicts: hits}, nil
		}
	}

	teacherID, err := d.courses.ResolveTeacher(ctx, cand.CourseID)
	if err != nil {
		return nil, fmt.Errorf("resolve teacher for course %d: %w", cand.CourseID, err)
	}

	existing, err := d.store.FindByTeacher(ctx, teacherID, cand.DayOfWeek, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query teacher slots: %w", err)
	}
	if hits := collideAll(cand, existing); len(hits) > 0 {
		return &model.ScheduleConflict{Type: model.ConflictTeacher, Conflicts: hits}, nil
	}

	return nil, nil
}

func collideAll(cand model.TimeSlot, existing []model.TimeSlot) []model.TimeSlot {
	var hits []model.TimeSlot
	for _, ex := range existing {
		if Collides(cand, ex) {
			hits = append(hits, ex)
		}
	}
	return hits
}

// Collides reports whether two slots occupy the same time. All four
// predicates must hold: same weekday, clock intervals overlap,
// recurrence patterns compatible, validity windows overlap.
func Collides(a, b model.TimeSlot) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return false
	}
	if !IntervalsOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
		return false
	}
	if !a.Recurrence.CompatibleWith(b.Recurrence) {
		return false
	}
	return validityOverlaps(a.ValidFrom, a.ValidUntil, b.ValidFrom, b.ValidUntil)
}

// IntervalsOverlap implements half-open [start, end) overlap. The single
// predicate aStart < bEnd && bStart < aEnd covers partial overlap in
// either direction and full containment; back-to-back slots sharing a
// boundary do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd model.TimeOfDay) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// validityOverlaps checks the two [valid_from, valid_until] date windows
// for overlap with inclusive bounds. A nil bound is unbounded in that
// direction.
func validityOverlaps(aFrom, aUntil, bFrom, bUntil *time.Time) bool {
	if aUntil != nil && bFrom != nil && aUntil.Before(*bFrom) {
		return false
	}
	if bUntil != nil && aFrom != nil && bUntil.Before(*aFrom) {
		return false
	}
	return true
}
