package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scolaria/scolaria-backend/internal/model"
)

// slotColumns is the shared projection for timetable rows. Times come
// back as zero-padded HH:MM text so model.TimeOfDay comparisons stay
// plain string compares.
const slotColumns = `t.id, t.course_id, t.day_of_week,
	to_char(t.start_time, 'HH24:MI'), to_char(t.end_time, 'HH24:MI'),
	t.classroom, t.recurrence, t.valid_from, t.valid_until,
	t.created_at, t.updated_at`

// detailColumns extends slotColumns with course display fields.
const detailColumns = slotColumns + `,
	c.class_id, sub.subject_name, tea.first_name, tea.last_name, cl.class_name`

// detailJoins resolves a slot's course into subject, teacher and class.
const detailJoins = `
	JOIN courses c ON t.course_id = c.id
	JOIN subjects sub ON c.subject_id = sub.id
	JOIN teachers tea ON c.teacher_id = tea.id
	JOIN classes cl ON c.class_id = cl.id`

// dayOrder sorts textual weekdays Monday-first in listings.
const dayOrder = `array_position(
	ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'],
	t.day_of_week)`

// TimetableRepository is the durable store of timetable slots. The
// conflict queries (FindByRoom, FindByTeacher) only narrow by location
// and weekday; overlap, recurrence and validity filtering is pure logic
// in the service layer.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	s := &model.TimeSlot{}
	err := row.Scan(
		&s.ID, &s.CourseID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
		&s.Classroom, &s.Recurrence, &s.ValidFrom, &s.ValidUntil,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanSlots(rows pgx.Rows) ([]model.TimeSlot, error) {
	defer rows.Close()

	var slots []model.TimeSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

func scanDetails(rows pgx.Rows) ([]model.TimeSlotDetail, error) {
	defer rows.Close()

	var details []model.TimeSlotDetail
	for rows.Next() {
		var d model.TimeSlotDetail
		err := rows.Scan(
			&d.ID, &d.CourseID, &d.DayOfWeek, &d.StartTime, &d.EndTime,
			&d.Classroom, &d.Recurrence, &d.ValidFrom, &d.ValidUntil,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ClassID, &d.SubjectName, &d.TeacherFirstName, &d.TeacherLastName, &d.ClassName,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetByID retrieves a slot by its ID.
func (r *TimetableRepository) GetByID(ctx context.Context, id int) (*model.TimeSlot, error) {
	return scanSlot(r.pool.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM timetable t WHERE t.id = $1`, id))
}

// GetDetail retrieves a slot joined with its course display fields.
func (r *TimetableRepository) GetDetail(ctx context.Context, id int) (*model.TimeSlotDetail, error) {
	d := &model.TimeSlotDetail{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+detailColumns+` FROM timetable t`+detailJoins+` WHERE t.id = $1`, id,
	).Scan(
		&d.ID, &d.CourseID, &d.DayOfWeek, &d.StartTime, &d.EndTime,
		&d.Classroom, &d.Recurrence, &d.ValidFrom, &d.ValidUntil,
		&d.CreatedAt, &d.UpdatedAt,
		&d.ClassID, &d.SubjectName, &d.TeacherFirstName, &d.TeacherLastName, &d.ClassName,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// FindByRoom returns all slots occupying a classroom on a weekday,
// optionally excluding one slot by ID (self-exclusion on update).
func (r *TimetableRepository) FindByRoom(ctx context.Context, classroom string, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM timetable t
		 WHERE t.classroom = $1 AND t.day_of_week = $2
		   AND ($3::int IS NULL OR t.id <> $3)`,
		classroom, day, excludeID)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// FindByTeacher returns all slots whose course is taught by the given
// teacher on a weekday, optionally excluding one slot by ID.
func (r *TimetableRepository) FindByTeacher(ctx context.Context, teacherID int, day model.DayOfWeek, excludeID *int) ([]model.TimeSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM timetable t
		 JOIN courses c ON t.course_id = c.id
		 WHERE c.teacher_id = $1 AND t.day_of_week = $2
		   AND ($3::int IS NULL OR t.id <> $3)`,
		teacherID, day, excludeID)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// Insert persists a new slot and fills its ID and timestamps.
func (r *TimetableRepository) Insert(ctx context.Context, s *model.TimeSlot) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO timetable
		   (course_id, day_of_week, start_time, end_time, classroom, recurrence, valid_from, valid_until)
		 VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.CourseID, s.DayOfWeek, s.StartTime, s.EndTime,
		s.Classroom, s.Recurrence, s.ValidFrom, s.ValidUntil,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update overwrites a slot with the given (already merged) values.
func (r *TimetableRepository) Update(ctx context.Context, s *model.TimeSlot) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE timetable SET
		   day_of_week = $1, start_time = $2::time, end_time = $3::time,
		   classroom = $4, recurrence = $5, valid_from = $6, valid_until = $7,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		s.DayOfWeek, s.StartTime, s.EndTime,
		s.Classroom, s.Recurrence, s.ValidFrom, s.ValidUntil, s.ID,
	)
	return err
}

// Delete removes a slot. Returns false if no row matched.
func (r *TimetableRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM timetable WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List retrieves the whole timetable, ordered by weekday then start time.
func (r *TimetableRepository) List(ctx context.Context) ([]model.TimeSlotDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+detailColumns+` FROM timetable t`+detailJoins+`
		 ORDER BY `+dayOrder+`, t.start_time`)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ListByCourse retrieves all slots of one course.
func (r *TimetableRepository) ListByCourse(ctx context.Context, courseID int) ([]model.TimeSlotDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+detailColumns+` FROM timetable t`+detailJoins+`
		 WHERE t.course_id = $1
		 ORDER BY `+dayOrder+`, t.start_time`, courseID)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ListByClass retrieves a class's full timetable.
func (r *TimetableRepository) ListByClass(ctx context.Context, classID int) ([]model.TimeSlotDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+detailColumns+` FROM timetable t`+detailJoins+`
		 WHERE c.class_id = $1
		 ORDER BY `+dayOrder+`, t.start_time`, classID)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ListCurrentByClass retrieves a class's timetable restricted to slots
// whose validity window covers the given date.
func (r *TimetableRepository) ListCurrentByClass(ctx context.Context, classID int, on time.Time) ([]model.TimeSlotDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+detailColumns+` FROM timetable t`+detailJoins+`
		 WHERE c.class_id = $1
		   AND (t.valid_from IS NULL OR t.valid_from <= $2::date)
		   AND (t.valid_until IS NULL OR t.valid_until >= $2::date)
		 ORDER BY `+dayOrder+`, t.start_time`, classID, on)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}
