package service

import (
	"context"
	"testing"
	"time"

	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                         string
		aStart, aEnd, bStart, bEnd   model.TimeOfDay
		want                         bool
	}{
		{"partial overlap forward", "09:00", "10:00", "09:30", "10:30", true},
		{"partial overlap backward", "09:30", "10:30", "09:00", "10:00", true},
		{"full containment", "09:00", "12:00", "10:00", "11:00", true},
		{"identical intervals", "09:00", "10:00", "09:00", "10:00", true},
		{"back to back", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "08:00", "09:00", "14:00", "15:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestRecurrenceCompatibleWith(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Recurrence
		want bool
	}{
		{"weekly vs weekly", model.RecurrenceWeekly, model.RecurrenceWeekly, true},
		{"weekly vs biweekly", model.RecurrenceWeekly, model.RecurrenceBiweekly, true},
		{"onetime vs weekly", model.RecurrenceOneTime, model.RecurrenceWeekly, true},
		{"biweekly vs biweekly", model.RecurrenceBiweekly, model.RecurrenceBiweekly, true},
		{"onetime vs onetime", model.RecurrenceOneTime, model.RecurrenceOneTime, true},
		{"biweekly vs onetime", model.RecurrenceBiweekly, model.RecurrenceOneTime, false},
		{"onetime vs biweekly", model.RecurrenceOneTime, model.RecurrenceBiweekly, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.CompatibleWith(tt.b))
		})
	}
}

func TestCollides(t *testing.T) {
	room := strPtr("A101")

	base := slot(1, room, "09:00", "10:00")

	t.Run("different weekday never collides", func(t *testing.T) {
		other := base
		other.DayOfWeek = model.Tuesday
		assert.False(t, Collides(base, other))
	})

	t.Run("overlapping validity windows collide", func(t *testing.T) {
		a := base
		a.ValidFrom = datePtr(2026, time.September, 1)
		a.ValidUntil = datePtr(2026, time.December, 20)
		b := base
		b.ValidFrom = datePtr(2026, time.December, 20)
		b.ValidUntil = datePtr(2027, time.March, 31)
		// Shared boundary date: windows are inclusive, so they touch.
		assert.True(t, Collides(a, b))
	})

	t.Run("disjoint validity windows suppress collision", func(t *testing.T) {
		a := base
		a.ValidFrom = datePtr(2026, time.September, 1)
		a.ValidUntil = datePtr(2026, time.December, 20)
		b := base
		b.ValidFrom = datePtr(2027, time.January, 5)
		b.ValidUntil = datePtr(2027, time.June, 30)
		assert.False(t, Collides(a, b))
	})

	t.Run("unbounded window overlaps everything", func(t *testing.T) {
		a := base // no bounds at all
		b := base
		b.ValidFrom = datePtr(2027, time.January, 5)
		b.ValidUntil = datePtr(2027, time.June, 30)
		assert.True(t, Collides(a, b))
	})

	t.Run("half-bounded windows", func(t *testing.T) {
		a := base
		a.ValidUntil = datePtr(2026, time.June, 30) // open start
		b := base
		b.ValidFrom = datePtr(2026, time.September, 1) // open end
		assert.False(t, Collides(a, b))

		b.ValidFrom = datePtr(2026, time.June, 30)
		assert.True(t, Collides(a, b))
	})

	t.Run("incompatible recurrence suppresses collision", func(t *testing.T) {
		a := base
		a.Recurrence = model.RecurrenceBiweekly
		b := base
		b.Recurrence = model.RecurrenceOneTime
		assert.False(t, Collides(a, b))
	})

	t.Run("two one-time slots on same weekday collide", func(t *testing.T) {
		// Literal dates are not compared, only the validity windows
		// are, so a shared weekday is enough.
		a := base
		a.Recurrence = model.RecurrenceOneTime
		b := base
		b.Recurrence = model.RecurrenceOneTime
		assert.True(t, Collides(a, b))
	})
}

func TestConflictDetectorRoomDimension(t *testing.T) {
	ctx := context.Background()
	room := strPtr("A101")

	dir := newMockCourseDirectory()
	dir.addCourse(1, 10, 100)
	dir.addCourse(2, 20, 200)

	store := newMockTimetableStore(dir)
	store.add(slot(1, room, "09:00", "10:00"))

	det := NewConflictDetector(store, dir)

	t.Run("same room overlapping interval conflicts", func(t *testing.T) {
		cand := slot(0, room, "09:30", "10:30")
		cand.CourseID = 2 // different teacher, so only the room can clash

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, model.ConflictClassroom, conflict.Type)
		require.Len(t, conflict.Conflicts, 1)
		assert.Equal(t, 1, conflict.Conflicts[0].ID)
	})

	t.Run("different room does not conflict", func(t *testing.T) {
		cand := slot(0, strPtr("B202"), "09:30", "10:30")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("back to back in same room does not conflict", func(t *testing.T) {
		cand := slot(0, room, "10:00", "11:00")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("roomless candidate skips the room dimension", func(t *testing.T) {
		cand := slot(0, nil, "09:00", "10:00")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("self exclusion removes own row", func(t *testing.T) {
		cand := slot(1, room, "09:00", "10:00")

		conflict, err := det.Detect(ctx, cand, intPtr(1))
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}

func TestConflictDetectorTeacherDimension(t *testing.T) {
	ctx := context.Background()

	dir := newMockCourseDirectory()
	dir.addCourse(1, 10, 100) // courses 1 and 2 share teacher 10
	dir.addCourse(2, 10, 200)
	dir.addCourse(3, 30, 300)

	store := newMockTimetableStore(dir)
	store.add(slot(1, strPtr("A101"), "09:00", "10:00"))

	det := NewConflictDetector(store, dir)

	t.Run("same teacher in another room conflicts", func(t *testing.T) {
		cand := slot(0, strPtr("B202"), "09:30", "10:30")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, model.ConflictTeacher, conflict.Type)
		require.Len(t, conflict.Conflicts, 1)
		assert.Equal(t, 1, conflict.Conflicts[0].ID)
	})

	t.Run("roomless candidate still hits the teacher dimension", func(t *testing.T) {
		cand := slot(0, nil, "09:30", "10:30")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, model.ConflictTeacher, conflict.Type)
	})

	t.Run("different teacher different room does not conflict", func(t *testing.T) {
		cand := slot(0, strPtr("B202"), "09:30", "10:30")
		cand.CourseID = 3

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("room dimension wins when both clash", func(t *testing.T) {
		// Same room AND same teacher: room is checked first and the
		// teacher dimension is never evaluated.
		cand := slot(0, strPtr("A101"), "09:30", "10:30")
		cand.CourseID = 2

		conflict, err := det.Detect(ctx, cand, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, model.ConflictClassroom, conflict.Type)
	})

	t.Run("unknown course surfaces the lookup error", func(t *testing.T) {
		cand := slot(0, nil, "09:00", "10:00")
		cand.CourseID = 999

		conflict, err := det.Detect(ctx, cand, nil)
		assert.Error(t, err)
		assert.Nil(t, conflict)
	})
}

func TestConflictDetectorReportsAllHits(t *testing.T) {
	ctx := context.Background()
	room := strPtr("A101")

	dir := newMockCourseDirectory()
	dir.addCourse(1, 10, 100)
	dir.addCourse(2, 20, 200)

	store := newMockTimetableStore(dir)
	store.add(slot(1, room, "09:00", "10:00"))
	store.add(slot(2, room, "10:30", "11:30"))

	det := NewConflictDetector(store, dir)

	cand := slot(0, room, "09:30", "11:00") // spans both existing slots
	cand.CourseID = 2

	conflict, err := det.Detect(ctx, cand, nil)
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, model.ConflictClassroom, conflict.Type)
	assert.Len(t, conflict.Conflicts, 2)
}
