package model

import "time"

// Class represents a school class group.
type Class struct {
	ID            int       `json:"id"`
	ClassName     string    `json:"class_name"`
	AcademicYear  string    `json:"academic_year"`
	Level         *string   `json:"level"`
	HeadTeacherID *int      `json:"head_teacher_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	ClassName     string  `json:"class_name" binding:"required,min=1,max=50"`
	AcademicYear  string  `json:"academic_year" binding:"required,min=4,max=9"`
	Level         *string `json:"level" binding:"omitempty,max=50"`
	HeadTeacherID *int    `json:"head_teacher_id" binding:"omitempty"`
}
