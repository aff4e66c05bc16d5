package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/scolaria/scolaria-backend/internal/model"
)

// ── Mock CourseDirectory ──

// mockCourseDirectory maps course IDs to teacher and class IDs.
type mockCourseDirectory struct {
	teacherByCourse map[int]int
	classByCourse   map[int]int
}

func newMockCourseDirectory() *mockCourseDirectory {
	return &mockCourseDirectory{
		teacherByCourse: make(map[int]int),
		classByCourse:   make(map[int]int),
	}
}

func (m *mockCourseDirectory) addCourse(courseID, teacherID, classID int) {
	m.teacherByCourse[courseID] = teacherID
	m.classByCourse[courseID] = classID
}

func (m *mockCourseDirectory) ResolveTeacher(_ context.Context, courseID int) (int, error) {
	teacherID, ok := m.teacherByCourse[courseID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return teacherID, nil
}

// ── Mock TimetableStore ──

// mockTimetableStore keeps slots in a map and resolves teachers through
// the shared course directory, mirroring the courses join of the real
// repository.
type mockTimetableStore struct {
	slots  map[int]model.TimeSlot
	nextID int
	dir    *mockCourseDirectory
}

func newMockTimetableStore(dir *mockCourseDirectory) *mockTimetableStore {
	return &mockTimetableStore{
		slots:  make(map[int]model.TimeSlot),
		nextID: 1,
		dir:    dir,
	}
}

func (m *mockTimetableStore) add(s model.TimeSlot) model.TimeSlot {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	} else if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	m.slots[s.ID] = s
	return s
}

func (m *mockTimetableStore) FindByRoom(_ context.Context, classroom string, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, s := range m.slots {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if s.Classroom != nil && *s.Classroom == classroom && s.DayOfWeek == day {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockTimetableStore) FindByTeacher(_ context.Context, teacherID int, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, s := range m.slots {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if m.dir.teacherByCourse[s.CourseID] == teacherID && s.DayOfWeek == day {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockTimetableStore) GetByID(_ context.Context, id int) (*model.TimeSlot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (m *mockTimetableStore) GetDetail(_ context.Context, id int) (*model.TimeSlotDetail, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.TimeSlotDetail{
		TimeSlot:         s,
		ClassID:          m.dir.classByCourse[s.CourseID],
		SubjectName:      "Mathematics",
		TeacherFirstName: "Marie",
		TeacherLastName:  "Curie",
		ClassName:        "6A",
	}, nil
}

func (m *mockTimetableStore) Insert(_ context.Context, s *model.TimeSlot) error {
	s.ID = m.nextID
	m.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.slots[s.ID] = *s
	return nil
}

func (m *mockTimetableStore) Update(_ context.Context, s *model.TimeSlot) error {
	if _, ok := m.slots[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.UpdatedAt = time.Now()
	m.slots[s.ID] = *s
	return nil
}

func (m *mockTimetableStore) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := m.slots[id]; !ok {
		return false, nil
	}
	delete(m.slots, id)
	return true, nil
}

func (m *mockTimetableStore) List(_ context.Context) ([]model.TimeSlotDetail, error) {
	return m.details(func(model.TimeSlot) bool { return true }), nil
}

func (m *mockTimetableStore) ListByCourse(_ context.Context, courseID int) ([]model.TimeSlotDetail, error) {
	return m.details(func(s model.TimeSlot) bool { return s.CourseID == courseID }), nil
}

func (m *mockTimetableStore) ListByClass(_ context.Context, classID int) ([]model.TimeSlotDetail, error) {
	return m.details(func(s model.TimeSlot) bool { return m.dir.classByCourse[s.CourseID] == classID }), nil
}

func (m *mockTimetableStore) ListCurrentByClass(_ context.Context, classID int, on time.Time) ([]model.TimeSlotDetail, error) {
	return m.details(func(s model.TimeSlot) bool {
		if m.dir.classByCourse[s.CourseID] != classID {
			return false
		}
		if s.ValidFrom != nil && on.Before(*s.ValidFrom) {
			return false
		}
		if s.ValidUntil != nil && s.ValidUntil.Before(on) {
			return false
		}
		return true
	}), nil
}

func (m *mockTimetableStore) details(keep func(model.TimeSlot) bool) []model.TimeSlotDetail {
	var out []model.TimeSlotDetail
	for _, s := range m.slots {
		if keep(s) {
			d, _ := m.GetDetail(context.Background(), s.ID)
			out = append(out, *d)
		}
	}
	return out
}

// ── Shared helpers ──

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func datePtr(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// slot builds a minimal weekly Monday slot for course 1 in the given room.
func slot(id int, room *string, start, end model.TimeOfDay) model.TimeSlot {
	return model.TimeSlot{
		ID:         id,
		CourseID:   1,
		DayOfWeek:  model.Monday,
		StartTime:  start,
		EndTime:    end,
		Classroom:  room,
		Recurrence: model.RecurrenceWeekly,
	}
}
