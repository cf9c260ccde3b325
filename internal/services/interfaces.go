package services

import (
	"context"
	"time"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request types from the validator package
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type CreateLessonRequest = validator.LessonCreateRequest
type UpdateLessonRequest = validator.LessonUpdateRequest
type EnrollRequest = validator.EnrollmentCreateRequest
type UpdateEnrollmentRequest = validator.EnrollmentUpdateRequest
type LoginRequest = validator.LoginRequest

type UserListResponse struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
}

type CourseListResponse struct {
	Courses []*models.CourseResponse `json:"courses"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	Size    int                      `json:"size"`
}

type LessonListResponse struct {
	Lessons []*models.LessonResponse `json:"lessons"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	Size    int                      `json:"size"`
}

type EnrollmentListResponse struct {
	Enrollments []*models.EnrollmentResponse `json:"enrollments"`
	Total       int64                        `json:"total"`
	Page        int                          `json:"page"`
	Size        int                          `json:"size"`
}

type LoginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      *models.UserResponse `json:"user"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *CreateUserRequest) (*models.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*models.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*models.UserResponse, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.UserResponse, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest) (*models.CourseResponse, error)
	GetByID(ctx context.Context, id uint) (*models.CourseResponse, error)
	List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.CourseResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.CourseResponse, error)
	SearchByTitle(ctx context.Context, keyword string, filters repositories.CourseFilters) (*CourseListResponse, error)
}

type LessonService interface {
	Create(ctx context.Context, req *CreateLessonRequest) (*models.LessonResponse, error)
	GetByID(ctx context.Context, id uint) (*models.LessonResponse, error)
	List(ctx context.Context, filters repositories.LessonFilters) (*LessonListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.LessonResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByCourse(ctx context.Context, courseID uint) ([]*models.LessonResponse, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest) (*models.EnrollmentResponse, error)
	Unenroll(ctx context.Context, enrollmentID uint) error
	GetByID(ctx context.Context, enrollmentID uint) (*models.EnrollmentResponse, error)
	List(ctx context.Context, filters repositories.EnrollmentFilters) (*EnrollmentListResponse, error)
	Update(ctx context.Context, enrollmentID uint, req *UpdateEnrollmentRequest) (*models.EnrollmentResponse, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.EnrollmentResponse, error)
	GetByCourse(ctx context.Context, courseID uint) ([]*models.EnrollmentResponse, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.EnrollmentResponse, error)
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type ExportService interface {
	// CourseRoster renders a course's enrollments as an xlsx workbook and
	// returns the file bytes plus a suggested filename.
	CourseRoster(ctx context.Context, courseID uint) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	User() UserService
	Course() CourseService
	Lesson() LessonService
	Enrollment() EnrollmentService
	Auth() AuthService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
