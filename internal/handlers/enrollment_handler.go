package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/services"
	"github.com/mateoAlonso06/educatech-api/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// Enroll enrolls a student in a course
// @Summary Enroll student
// @Description Creates the unique (student, course) association
// @Tags enrollments
// @Accept json
// @Produce json
// @Param enrollment body services.EnrollRequest true "Enrollment data"
// @Success 201 {object} models.EnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// GetEnrollment retrieves an enrollment by ID
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Param id path uint true "Enrollment ID"
// @Success 200 {object} models.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// ListEnrollments lists enrollments with optional filtering
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Param student_id query uint false "Filter by student"
// @Param course_id query uint false "Filter by course"
// @Success 200 {object} services.EnrollmentListResponse
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	filters := repositories.EnrollmentFilters{PageFilters: h.parsePageFilters(c)}

	if id, ok := h.parseOptionalID(c, "student_id"); !ok {
		return
	} else if id != nil {
		filters.StudentID = id
	}
	if id, ok := h.parseOptionalID(c, "course_id"); !ok {
		return
	} else if id != nil {
		filters.CourseID = id
	}

	resp, err := h.enrollmentService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateEnrollment replaces the student and course of an enrollment
// @Summary Update enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path uint true "Enrollment ID"
// @Param enrollment body services.UpdateEnrollmentRequest true "Enrollment data"
// @Success 200 {object} models.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// Unenroll removes an enrollment
// @Summary Unenroll student
// @Tags enrollments
// @Param id path uint true "Enrollment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Unenrolling", "enrollment_id", id)

	if err := h.enrollmentService.Unenroll(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEnrollmentsByStudent lists a student's enrollments
// @Summary List enrollments by student
// @Tags enrollments
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {array} models.EnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrollments/student/{student_id} [get]
func (h *EnrollmentHandler) GetEnrollmentsByStudent(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	enrollments, err := h.enrollmentService.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// GetEnrollmentsByCourse lists a course's enrollments
// @Summary List enrollments by course
// @Tags enrollments
// @Produce json
// @Param course_id path uint true "Course ID"
// @Success 200 {array} models.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrollments/course/{course_id} [get]
func (h *EnrollmentHandler) GetEnrollmentsByCourse(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	enrollments, err := h.enrollmentService.GetByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// GetEnrollmentByPair finds the enrollment linking a student to a course
// @Summary Get enrollment by student and course
// @Tags enrollments
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param course_id path uint true "Course ID"
// @Success 200 {object} models.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrollments/student/{student_id}/course/{course_id} [get]
func (h *EnrollmentHandler) GetEnrollmentByPair(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	enrollment, err := h.enrollmentService.GetByStudentAndCourse(c.Request.Context(), studentID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// parseOptionalID parses an optional positive integer query parameter. The
// second return is false when the parameter is present but invalid.
func (h *EnrollmentHandler) parseOptionalID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " filter",
			Details: raw,
		})
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}
