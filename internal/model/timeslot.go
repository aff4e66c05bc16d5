package model

import "time"

// DayOfWeek is the textual weekday a slot occurs on.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// Recurrence describes how often a slot repeats.
type Recurrence string

const (
	RecurrenceWeekly   Recurrence = "Weekly"
	RecurrenceBiweekly Recurrence = "Biweekly"
	RecurrenceOneTime  Recurrence = "OneTime"
)

// CompatibleWith reports whether two recurrence patterns can interact on
// the calendar at all. A Weekly slot interacts with everything; otherwise
// the patterns must match exactly. This is a coarse filter: two OneTime
// slots sharing a weekday are treated as interacting even when their
// literal dates differ.
func (r Recurrence) CompatibleWith(other Recurrence) bool {
	return r == RecurrenceWeekly || other == RecurrenceWeekly || r == other
}

// TimeOfDay is a zero-padded "HH:MM" clock value. Zero-padding makes
// lexicographic comparison identical to time order, so Before is a plain
// string compare.
type TimeOfDay string

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// TimeSlot is one scheduled occurrence pattern of a course: weekday,
// clock interval, optional room, recurrence, and an optional validity
// date window. Nil Classroom means the slot occupies no room (remote or
// online teaching) and is exempt from room conflicts. Nil validity
// bounds mean unbounded in that direction.
type TimeSlot struct {
	ID         int        `json:"id"`
	CourseID   int        `json:"course_id"`
	DayOfWeek  DayOfWeek  `json:"day_of_week"`
	StartTime  TimeOfDay  `json:"start_time"`
	EndTime    TimeOfDay  `json:"end_time"`
	Classroom  *string    `json:"classroom"`
	Recurrence Recurrence `json:"recurrence"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TimeSlotDetail is a TimeSlot joined with course display fields for
// read responses. Denormalization is a read-side convenience only.
type TimeSlotDetail struct {
	TimeSlot
	ClassID          int    `json:"class_id"`
	SubjectName      string `json:"subject_name"`
	TeacherFirstName string `json:"teacher_first_name"`
	TeacherLastName  string `json:"teacher_last_name"`
	ClassName        string `json:"class_name"`
}

// ScheduleConflict reports a collision along one dimension together with
// the existing slots that collide.
type ScheduleConflict struct {
	Type      ConflictDimension `json:"type"`
	Conflicts []TimeSlot        `json:"conflicts"`
}

// ConflictDimension is the axis along which a collision was detected.
type ConflictDimension string

const (
	ConflictClassroom ConflictDimension = "classroom"
	ConflictTeacher   ConflictDimension = "teacher"
)

// CreateTimeSlotRequest is the payload for scheduling a course slot.
// Recurrence defaults to Weekly when omitted.
type CreateTimeSlotRequest struct {
	CourseID   int     `json:"course_id" binding:"required"`
	DayOfWeek  string  `json:"day_of_week" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime  string  `json:"start_time" binding:"required,datetime=15:04"`
	EndTime    string  `json:"end_time" binding:"required,datetime=15:04"`
	Classroom  *string `json:"classroom" binding:"omitempty,min=1,max=50"`
	Recurrence *string `json:"recurrence" binding:"omitempty,oneof=Weekly Biweekly OneTime"`
	ValidFrom  *string `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidUntil *string `json:"valid_until" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTimeSlotRequest is the payload for rescheduling a slot. Omitted
// fields keep their previous values (merge semantics).
type UpdateTimeSlotRequest struct {
	DayOfWeek  *string `json:"day_of_week" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime  *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime    *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Classroom  *string `json:"classroom" binding:"omitempty,min=1,max=50"`
	Recurrence *string `json:"recurrence" binding:"omitempty,oneof=Weekly Biweekly OneTime"`
	ValidFrom  *string `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidUntil *string `json:"valid_until" binding:"omitempty,datetime=2006-01-02"`
}
