package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scolaria/scolaria-backend/internal/model"
)

// CourseRepository handles course data access. It doubles as the course
// directory the timetable conflict check resolves teachers through.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseDetailQuery = `
	SELECT c.id, c.subject_id, c.teacher_id, c.class_id, c.description,
	       c.created_at, c.updated_at,
	       s.subject_name, t.first_name, t.last_name, cl.class_name
	FROM courses c
	JOIN subjects s ON c.subject_id = s.id
	JOIN teachers t ON c.teacher_id = t.id
	JOIN classes cl ON c.class_id = cl.id`

// ResolveTeacher returns the teacher assigned to a course.
// Returns pgx.ErrNoRows if the course does not exist.
func (r *CourseRepository) ResolveTeacher(ctx context.Context, courseID int) (int, error) {
	var teacherID int
	err := r.pool.QueryRow(ctx,
		`SELECT teacher_id FROM courses WHERE id = $1`, courseID,
	).Scan(&teacherID)
	return teacherID, err
}

// GetDetail retrieves a course joined with its display fields.
func (r *CourseRepository) GetDetail(ctx context.Context, id int) (*model.CourseDetail, error) {
	d := &model.CourseDetail{}
	err := r.pool.QueryRow(ctx, courseDetailQuery+` WHERE c.id = $1`, id).Scan(
		&d.ID, &d.SubjectID, &d.TeacherID, &d.ClassID, &d.Description,
		&d.CreatedAt, &d.UpdatedAt,
		&d.SubjectName, &d.TeacherFirstName, &d.TeacherLastName, &d.ClassName,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List retrieves all courses with display fields.
func (r *CourseRepository) List(ctx context.Context) ([]model.CourseDetail, error) {
	rows, err := r.pool.Query(ctx, courseDetailQuery+` ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.CourseDetail
	for rows.Next() {
		var d model.CourseDetail
		err := rows.Scan(
			&d.ID, &d.SubjectID, &d.TeacherID, &d.ClassID, &d.Description,
			&d.CreatedAt, &d.UpdatedAt,
			&d.SubjectName, &d.TeacherFirstName, &d.TeacherLastName, &d.ClassName,
		)
		if err != nil {
			return nil, err
		}
		courses = append(courses, d)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (subject_id, teacher_id, class_id, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.SubjectID, c.TeacherID, c.ClassID, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses SET subject_id = $1, teacher_id = $2, class_id = $3,
		   description = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		c.SubjectID, c.TeacherID, c.ClassID, c.Description, c.ID,
	)
	return err
}

// Delete removes a course. Returns false if no row matched.
func (r *CourseRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
