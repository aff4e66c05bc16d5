package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/scolaria/scolaria-backend/internal/repository"
)

// CourseService handles course business logic, including the referential
// checks the original schema leaves to the application layer.
type CourseService struct {
	courseRepo  *repository.CourseRepository
	subjectRepo *repository.SubjectRepository
	teacherRepo *repository.TeacherRepository
	classRepo   *repository.ClassRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo *repository.CourseRepository,
	subjectRepo *repository.SubjectRepository,
	teacherRepo *repository.TeacherRepository,
	classRepo *repository.ClassRepository,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		teacherRepo: teacherRepo,
		classRepo:   classRepo,
	}
}

// GetDetail retrieves a course with display fields.
func (s *CourseService) GetDetail(ctx context.Context, id int) (*model.CourseDetail, error) {
	return s.courseRepo.GetDetail(ctx, id)
}

// List retrieves all courses with display fields.
func (s *CourseService) List(ctx context.Context) ([]model.CourseDetail, error) {
	return s.courseRepo.List(ctx)
}

// Create validates that subject, teacher and class all exist, then
// inserts the course and returns it resolved.
func (s *CourseService) Create(ctx context.Context, req model.CreateCourseRequest) (*model.CourseDetail, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	course := &model.Course{
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		ClassID:     req.ClassID,
		Description: req.Description,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return s.courseRepo.GetDetail(ctx, course.ID)
}

// Update validates references and overwrites an existing course.
func (s *CourseService) Update(ctx context.Context, id int, req model.CreateCourseRequest) (*model.CourseDetail, error) {
	if _, err := s.courseRepo.GetDetail(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	course := &model.Course{
		ID:          id,
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		ClassID:     req.ClassID,
		Description: req.Description,
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.courseRepo.GetDetail(ctx, id)
}

// Delete removes a course. Timetable slots referencing it are removed by
// the schema's cascade.
func (s *CourseService) Delete(ctx context.Context, id int) (bool, error) {
	return s.courseRepo.Delete(ctx, id)
}

func (s *CourseService) checkReferences(ctx context.Context, req model.CreateCourseRequest) error {
	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		return refError(err)
	}
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return refError(err)
	}
	if _, err := s.classRepo.GetByID(ctx, req.ClassID); err != nil {
		return refError(err)
	}
	return nil
}

func refError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrReferenceNotFound
	}
	return err
}
