package models

import (
	"time"
)

type Course struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:255;index"`
	Description string `json:"description" gorm:"not null;size:10000"`
	TeacherID   uint   `json:"teacher_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Teacher     *User        `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Lessons     []Lesson     `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) ToResponse() *CourseResponse {
	return &CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		TeacherID:   c.TeacherID,
		CreatedAt:   c.CreatedAt,
	}
}
