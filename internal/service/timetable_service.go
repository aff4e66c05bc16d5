package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/scolaria/scolaria-backend/internal/config"
	"github.com/scolaria/scolaria-backend/internal/model"
)

// classTimetableTTL bounds staleness of the per-class timetable cache.
// Writes invalidate the affected class eagerly; the TTL only covers
// writes that bypass this service (e.g. manual SQL).
const classTimetableTTL = 5 * time.Minute

// TimetableStore is the full persistence contract of the timetable.
type TimetableStore interface {
	ConflictStore
	GetByID(ctx context.Context, id int) (*model.TimeSlot, error)
	GetDetail(ctx context.Context, id int) (*model.TimeSlotDetail, error)
	Insert(ctx context.Context, s *model.TimeSlot) error
	Update(ctx context.Context, s *model.TimeSlot) error
	Delete(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.TimeSlotDetail, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.TimeSlotDetail, error)
	ListByClass(ctx context.Context, classID int) ([]model.TimeSlotDetail, error)
	ListCurrentByClass(ctx context.Context, classID int, on time.Time) ([]model.TimeSlotDetail, error)
}

// TimetableEvent is published on the timetable Redis channel after every
// successful write, for live dashboard streams.
type TimetableEvent struct {
	Action  string                `json:"action"` // created, updated, deleted
	ClassID int                   `json:"class_id"`
	SlotID  int                   `json:"slot_id"`
	Slot    *model.TimeSlotDetail `json:"slot,omitempty"`
}

// TimetableService orchestrates validated timetable writes: every
// create/update runs the conflict detector before touching the store,
// and a rejected candidate is never partially written.
//
// The check-then-write sequence is not atomic: two concurrent creates
// for the same room and time can both pass detection before either
// commits. Callers needing strict atomicity must serialize writes for
// the same room/course pairing externally.
type TimetableService struct {
	store    TimetableStore
	courses  CourseDirectory
	detector *ConflictDetector
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewTimetableService creates a new TimetableService. rdb may be nil,
// which disables the read cache and event publishing.
func NewTimetableService(store TimetableStore, courses CourseDirectory, rdb *redis.Client, log zerolog.Logger) *TimetableService {
	return &TimetableService{
		store:    store,
		courses:  courses,
		detector: NewConflictDetector(store, courses),
		rdb:      rdb,
		log:      log.With().Str("component", "timetable_service").Logger(),
	}
}

// Create schedules a new slot for a course. The course must exist, the
// intervals must be well formed, and the conflict check must come back
// clean. Recurrence defaults to Weekly. Returns the stored slot joined
// with its course display fields.
func (s *TimetableService) Create(ctx context.Context, req model.CreateTimeSlotRequest) (*model.TimeSlotDetail, error) {
	if _, err := s.courses.ResolveTeacher(ctx, req.CourseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	cand := model.TimeSlot{
		CourseID:   req.CourseID,
		DayOfWeek:  model.DayOfWeek(req.DayOfWeek),
		StartTime:  model.TimeOfDay(req.StartTime),
		EndTime:    model.TimeOfDay(req.EndTime),
		Classroom:  req.Classroom,
		Recurrence: model.RecurrenceWeekly,
	}
	if req.Recurrence != nil {
		cand.Recurrence = model.Recurrence(*req.Recurrence)
	}

	var err error
	if cand.ValidFrom, err = parseDate(req.ValidFrom); err != nil {
		return nil, ErrInvalidValidityWindow
	}
	if cand.ValidUntil, err = parseDate(req.ValidUntil); err != nil {
		return nil, ErrInvalidValidityWindow
	}
	if err := validateIntervals(cand); err != nil {
		return nil, err
	}

	conflict, err := s.detector.Detect(ctx, cand, nil)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Conflict: conflict}
	}

	if err := s.store.Insert(ctx, &cand); err != nil {
		return nil, err
	}

	detail, err := s.store.GetDetail(ctx, cand.ID)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, TimetableEvent{Action: "created", ClassID: detail.ClassID, SlotID: detail.ID, Slot: detail})
	return detail, nil
}

// Update reschedules an existing slot. Omitted fields keep their
// previous values; the merged candidate re-runs the conflict check with
// the slot's own ID excluded so it never collides with itself.
func (s *TimetableService) Update(ctx context.Context, id int, req model.UpdateTimeSlotRequest) (*model.TimeSlotDetail, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	merged := *current
	if req.DayOfWeek != nil {
		merged.DayOfWeek = model.DayOfWeek(*req.DayOfWeek)
	}
	if req.StartTime != nil {
		merged.StartTime = model.TimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		merged.EndTime = model.TimeOfDay(*req.EndTime)
	}
	if req.Classroom != nil {
		merged.Classroom = req.Classroom
	}
	if req.Recurrence != nil {
		merged.Recurrence = model.Recurrence(*req.Recurrence)
	}
	if req.ValidFrom != nil {
		if merged.ValidFrom, err = parseDate(req.ValidFrom); err != nil {
			return nil, ErrInvalidValidityWindow
		}
	}
	if req.ValidUntil != nil {
		if merged.ValidUntil, err = parseDate(req.ValidUntil); err != nil {
			return nil, ErrInvalidValidityWindow
		}
	}
	if err := validateIntervals(merged); err != nil {
		return nil, err
	}

	conflict, err := s.detector.Detect(ctx, merged, &id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Conflict: conflict}
	}

	if err := s.store.Update(ctx, &merged); err != nil {
		return nil, err
	}

	detail, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, TimetableEvent{Action: "updated", ClassID: detail.ClassID, SlotID: detail.ID, Slot: detail})
	return detail, nil
}

// Delete removes a slot. Removing a slot cannot create a collision, so
// no conflict check runs.
func (s *TimetableService) Delete(ctx context.Context, id int) error {
	detail, err := s.store.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotNotFound
		}
		return err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSlotNotFound
	}

	s.afterWrite(ctx, TimetableEvent{Action: "deleted", ClassID: detail.ClassID, SlotID: id})
	return nil
}

// List returns the whole timetable.
func (s *TimetableService) List(ctx context.Context) ([]model.TimeSlotDetail, error) {
	return s.store.List(ctx)
}

// ListByCourse returns all slots of one course.
func (s *TimetableService) ListByCourse(ctx context.Context, courseID int) ([]model.TimeSlotDetail, error) {
	return s.store.ListByCourse(ctx, courseID)
}

// ListByClass returns a class's full timetable.
func (s *TimetableService) ListByClass(ctx context.Context, classID int) ([]model.TimeSlotDetail, error) {
	return s.store.ListByClass(ctx, classID)
}

// CurrentByClass returns the class timetable restricted to slots whose
// validity window covers today, served from the Redis cache when warm.
func (s *TimetableService) CurrentByClass(ctx context.Context, classID int) ([]model.TimeSlotDetail, error) {
	key := config.CacheKey.ClassTimetableKey(classID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var slots []model.TimeSlotDetail
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
			// Corrupt cache entry: fall through to the store.
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Int("class_id", classID).Msg("timetable cache read failed")
		}
	}

	slots, err := s.store.ListCurrentByClass(ctx, classID, time.Now())
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(slots); err == nil {
			if err := s.rdb.Set(ctx, key, payload, classTimetableTTL).Err(); err != nil {
				s.log.Warn().Err(err).Int("class_id", classID).Msg("timetable cache write failed")
			}
		}
	}
	return slots, nil
}

// afterWrite invalidates the affected class cache and publishes the
// change event. Both are best-effort; the write itself already landed.
func (s *TimetableService) afterWrite(ctx context.Context, event TimetableEvent) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Del(ctx, config.CacheKey.ClassTimetableKey(event.ClassID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("class_id", event.ClassID).Msg("timetable cache invalidation failed")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.TimetableEventsChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("action", event.Action).Msg("timetable event publish failed")
	}
}

// validateIntervals checks the clock interval and validity window of a
// candidate before any store access.
func validateIntervals(s model.TimeSlot) error {
	if !s.StartTime.Before(s.EndTime) {
		return ErrInvalidTimeRange
	}
	if s.ValidFrom != nil && s.ValidUntil != nil && s.ValidUntil.Before(*s.ValidFrom) {
		return ErrInvalidValidityWindow
	}
	return nil
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
