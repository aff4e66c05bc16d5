package model

import "time"

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID         int        `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	HireDate   *time.Time `json:"hire_date"`
	Speciality *string    `json:"speciality"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateTeacherRequest is the payload for creating or updating a teacher.
type CreateTeacherRequest struct {
	FirstName  string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string  `json:"last_name" binding:"required,min=1,max=100"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone" binding:"omitempty,min=8,max=20"`
	HireDate   *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	Speciality *string `json:"speciality" binding:"omitempty,max=100"`
}
