package models

import (
	"time"
)

// Enrollment links one student to one course. The (student_id, course_id)
// pair is unique; the composite index guarantees it even when two concurrent
// requests pass the application-level check. EnrolledAt is assigned by the
// server at creation time and never updated afterwards.
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"student_id" gorm:"not null;index;uniqueIndex:idx_enrollments_student_course"`
	CourseID   uint      `json:"course_id" gorm:"not null;index;uniqueIndex:idx_enrollments_student_course"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"not null;<-:create"`

	// Relations
	Student *User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) ToResponse() *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:         e.ID,
		UserID:     e.StudentID,
		CourseID:   e.CourseID,
		EnrolledAt: e.EnrolledAt,
	}
}
