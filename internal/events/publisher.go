package events

import (
	"context"
	"time"
)

// Event types emitted by the service layer
const (
	EventUserRegistered    = "user.registered"
	EventCourseCreated     = "course.created"
	EventEnrollmentCreated = "enrollment.created"
	EventEnrollmentDeleted = "enrollment.deleted"
)

// Event is the envelope published to the broker and mirrored into the
// domain_events outbox table.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ===== EVENT PAYLOADS =====

type EnrollmentEventData struct {
	EnrollmentID uint      `json:"enrollment_id"`
	StudentID    uint      `json:"student_id"`
	CourseID     uint      `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at,omitempty"`
}

type UserEventData struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type CourseEventData struct {
	CourseID  uint `json:"course_id"`
	TeacherID uint `json:"teacher_id"`
}
