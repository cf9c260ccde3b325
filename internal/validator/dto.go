package validator

// UserCreateRequest represents the request structure for registering users
type UserCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=60"`
	Role      string `json:"role" validate:"required,oneof=STUDENT TEACHER ADMIN"`
}

// UserUpdateRequest replaces the mutable profile fields of a user
type UserUpdateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=60"`
}

type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=10000"`
	TeacherID   uint   `json:"teacher_id" validate:"required"`
}

type CourseUpdateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=10000"`
	TeacherID   uint   `json:"teacher_id" validate:"required"`
}

type LessonCreateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required,max=2000"`
	CourseID uint   `json:"course_id" validate:"required"`
}

type LessonUpdateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required,max=2000"`
	CourseID uint   `json:"course_id" validate:"required"`
}

// EnrollmentCreateRequest carries the two foreign keys of an enrollment.
// Zero or missing ids fail struct validation before any store access.
type EnrollmentCreateRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
}

type EnrollmentUpdateRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=60"`
}
