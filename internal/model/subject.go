package model

import "time"

// Subject represents an academic discipline.
type Subject struct {
	ID          int       `json:"id"`
	SubjectName string    `json:"subject_name"`
	Description *string   `json:"description"`
	Credits     *int      `json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating or updating a subject.
type CreateSubjectRequest struct {
	SubjectName string  `json:"subject_name" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Credits     *int    `json:"credits" binding:"omitempty,min=0,max=60"`
}
