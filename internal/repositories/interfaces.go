package repositories

import (
	"context"

	"github.com/mateoAlonso06/educatech-api/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type PageFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title", "email"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Role *models.Role `json:"role"`
	PageFilters
}

type CourseFilters struct {
	TeacherID *uint `json:"teacher_id"`
	PageFilters
}

type LessonFilters struct {
	CourseID *uint `json:"course_id"`
	PageFilters
}

type EnrollmentFilters struct {
	StudentID *uint `json:"student_id"`
	CourseID  *uint `json:"course_id"`
	PageFilters
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	SearchByTitle(ctx context.Context, keyword string, filters CourseFilters) ([]*models.Course, int64, error)
	DeleteByTeacher(ctx context.Context, teacherID uint) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters LessonFilters) ([]*models.Lesson, int64, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error)
	GetByTitleAndCourse(ctx context.Context, title string, courseID uint) (*models.Lesson, error)
	DeleteByCourse(ctx context.Context, courseID uint) error
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error)
	ListByCourseWithStudents(ctx context.Context, courseID uint) ([]*models.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
	DeleteByCourse(ctx context.Context, courseID uint) error
}

type EventRepository interface {
	Create(ctx context.Context, event *models.DomainEvent) error
}

// ===== REPOSITORY MANAGER =====

// Repository aggregates all entity repositories. WithTransaction runs fn
// against a Repository whose operations share a single database transaction.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Lesson() LessonRepository
	Enrollment() EnrollmentRepository
	Event() EventRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
