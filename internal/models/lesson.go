package models

import (
	"time"
)

// Lesson content is text or markdown. The (title, course_id) pair is unique
// within a course; the composite index is the storage-level backstop for the
// application-level duplicate check.
type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:255;uniqueIndex:idx_lessons_title_course"`
	Content  string `json:"content" gorm:"not null;size:2000"`
	CourseID uint   `json:"course_id" gorm:"not null;index;uniqueIndex:idx_lessons_title_course"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) ToResponse() *LessonResponse {
	return &LessonResponse{
		ID:       l.ID,
		Title:    l.Title,
		Content:  l.Content,
		CourseID: l.CourseID,
	}
}
