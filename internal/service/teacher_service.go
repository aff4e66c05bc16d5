package service

import (
	"context"

	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/scolaria/scolaria-backend/internal/repository"
)

// TeacherService handles teacher business logic.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo}
}

// GetByID retrieves a teacher by ID.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// List retrieves all teachers.
func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teacherRepo.List(ctx)
}

// Create inserts a new teacher.
func (s *TeacherService) Create(ctx context.Context, t *model.Teacher) error {
	return s.teacherRepo.Create(ctx, t)
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, t *model.Teacher) error {
	return s.teacherRepo.Update(ctx, t)
}

// Delete removes a teacher. Foreign keys on courses prevent deleting a
// teacher that still teaches.
func (s *TeacherService) Delete(ctx context.Context, id int) (bool, error) {
	return s.teacherRepo.Delete(ctx, id)
}
