package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTimetableService wires the service against the in-memory mocks
// with Redis disabled.
func newTestTimetableService() (*TimetableService, *mockTimetableStore, *mockCourseDirectory) {
	dir := newMockCourseDirectory()
	store := newMockTimetableStore(dir)
	svc := NewTimetableService(store, dir, nil, zerolog.Nop())
	return svc, store, dir
}

func createReq(courseID int, room *string, start, end string) model.CreateTimeSlotRequest {
	return model.CreateTimeSlotRequest{
		CourseID:  courseID,
		DayOfWeek: string(model.Monday),
		StartTime: start,
		EndTime:   end,
		Classroom: room,
	}
}

func TestTimetableServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown course is rejected before any write", func(t *testing.T) {
		svc, store, _ := newTestTimetableService()

		_, err := svc.Create(ctx, createReq(999, strPtr("A101"), "09:00", "10:00"))
		assert.ErrorIs(t, err, ErrCourseNotFound)
		assert.Empty(t, store.slots)
	})

	t.Run("recurrence defaults to weekly", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		detail, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)
		assert.Equal(t, model.RecurrenceWeekly, detail.Recurrence)
		assert.Equal(t, 100, detail.ClassID)
		assert.NotZero(t, detail.ID)
	})

	t.Run("explicit recurrence is kept", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		req := createReq(1, strPtr("A101"), "09:00", "10:00")
		req.Recurrence = strPtr(string(model.RecurrenceBiweekly))

		detail, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.RecurrenceBiweekly, detail.Recurrence)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "10:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero length slot is rejected", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("inverted validity window is rejected", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		req := createReq(1, strPtr("A101"), "09:00", "10:00")
		req.ValidFrom = strPtr("2026-12-20")
		req.ValidUntil = strPtr("2026-09-01")

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidValidityWindow)
	})

	t.Run("room conflict blocks the write", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)
		dir.addCourse(2, 20, 200)

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq(2, strPtr("A101"), "09:30", "10:30"))

		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, model.ConflictClassroom, conflictErr.Conflict.Type)
		assert.Len(t, store.slots, 1)
	})

	t.Run("teacher conflict blocks the write", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)
		dir.addCourse(2, 10, 200) // same teacher, different class

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq(2, strPtr("B202"), "09:30", "10:30"))

		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, model.ConflictTeacher, conflictErr.Conflict.Type)
		assert.Len(t, store.slots, 1)
	})

	t.Run("back to back slots in one room both land", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)
		dir.addCourse(2, 20, 200)

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)
		_, err = svc.Create(ctx, createReq(2, strPtr("A101"), "10:00", "11:00"))
		require.NoError(t, err)
		assert.Len(t, store.slots, 2)
	})
}

func TestTimetableServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		svc, _, _ := newTestTimetableService()

		_, err := svc.Update(ctx, 42, model.UpdateTimeSlotRequest{})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("resubmitting unchanged values does not self-conflict", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		created, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)

		detail, err := svc.Update(ctx, created.ID, model.UpdateTimeSlotRequest{
			StartTime: strPtr("09:00"),
			EndTime:   strPtr("10:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.TimeOfDay("09:00"), detail.StartTime)
	})

	t.Run("omitted fields keep previous values", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		req := createReq(1, strPtr("A101"), "09:00", "10:00")
		req.ValidFrom = strPtr("2026-09-01")
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)

		detail, err := svc.Update(ctx, created.ID, model.UpdateTimeSlotRequest{
			StartTime: strPtr("11:00"),
			EndTime:   strPtr("12:00"),
		})
		require.NoError(t, err)

		require.NotNil(t, detail.Classroom)
		assert.Equal(t, "A101", *detail.Classroom)
		assert.Equal(t, model.DayOfWeek("Monday"), detail.DayOfWeek)
		require.NotNil(t, detail.ValidFrom)
		assert.Equal(t, *datePtr(2026, time.September, 1), *detail.ValidFrom)

		stored := store.slots[created.ID]
		assert.Equal(t, model.TimeOfDay("11:00"), stored.StartTime)
	})

	t.Run("conflicting reschedule leaves the slot untouched", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)
		dir.addCourse(2, 20, 200)

		_, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)
		second, err := svc.Create(ctx, createReq(2, strPtr("A101"), "11:00", "12:00"))
		require.NoError(t, err)

		_, err = svc.Update(ctx, second.ID, model.UpdateTimeSlotRequest{
			StartTime: strPtr("09:30"),
			EndTime:   strPtr("10:30"),
		})

		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, model.TimeOfDay("11:00"), store.slots[second.ID].StartTime)
	})

	t.Run("merged interval is revalidated", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		created, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)

		// New start after the kept end.
		_, err = svc.Update(ctx, created.ID, model.UpdateTimeSlotRequest{
			StartTime: strPtr("10:30"),
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestTimetableServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		svc, _, _ := newTestTimetableService()
		assert.ErrorIs(t, svc.Delete(ctx, 42), ErrSlotNotFound)
	})

	t.Run("delete removes the slot", func(t *testing.T) {
		svc, store, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)

		created, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))
		assert.Empty(t, store.slots)
	})

	t.Run("deleted room can be reused", func(t *testing.T) {
		svc, _, dir := newTestTimetableService()
		dir.addCourse(1, 10, 100)
		dir.addCourse(2, 20, 200)

		created, err := svc.Create(ctx, createReq(1, strPtr("A101"), "09:00", "10:00"))
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err = svc.Create(ctx, createReq(2, strPtr("A101"), "09:00", "10:00"))
		assert.NoError(t, err)
	})
}

func TestTimetableServiceCurrentByClass(t *testing.T) {
	ctx := context.Background()

	svc, store, dir := newTestTimetableService()
	dir.addCourse(1, 10, 100)
	dir.addCourse(2, 20, 100)

	// Expired last school year.
	expired := slot(0, strPtr("A101"), "09:00", "10:00")
	expired.ValidUntil = datePtr(2020, time.June, 30)
	store.add(expired)

	// Unbounded, always current.
	current := slot(0, strPtr("B202"), "10:00", "11:00")
	current.CourseID = 2
	store.add(current)

	slots, err := svc.CurrentByClass(ctx, 100)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.NotNil(t, slots[0].Classroom)
	assert.Equal(t, "B202", *slots[0].Classroom)
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Conflict: &model.ScheduleConflict{
		Type:      model.ConflictClassroom,
		Conflicts: []model.TimeSlot{{ID: 1}},
	}}

	var target *ConflictError
	assert.True(t, errors.As(error(err), &target))
	assert.Contains(t, err.Error(), "classroom")
}
