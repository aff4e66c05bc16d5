package model

import "time"

// Course assigns a subject to a class, taught by a teacher.
type Course struct {
	ID          int       `json:"id"`
	SubjectID   int       `json:"subject_id"`
	TeacherID   int       `json:"teacher_id"`
	ClassID     int       `json:"class_id"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseDetail is a Course joined with display fields for read responses.
type CourseDetail struct {
	Course
	SubjectName      string `json:"subject_name"`
	TeacherFirstName string `json:"teacher_first_name"`
	TeacherLastName  string `json:"teacher_last_name"`
	ClassName        string `json:"class_name"`
}

// CreateCourseRequest is the payload for creating or updating a course.
type CreateCourseRequest struct {
	SubjectID   int     `json:"subject_id" binding:"required"`
	TeacherID   int     `json:"teacher_id" binding:"required"`
	ClassID     int     `json:"class_id" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
