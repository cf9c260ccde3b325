package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mateoAlonso06/educatech-api/internal/events"
	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Enroll creates the (student, course) association. The uniqueness check
// here produces a friendly conflict before the insert; the composite unique
// index on enrollments is the authoritative guard under concurrency.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest) (*models.EnrollmentResponse, error) {
	s.logger.Info("Enrolling student", "student_id", req.UserID, "course_id", req.CourseID)

	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	student, err := resolveStudent(ctx, s.repo, req.UserID)
	if err != nil {
		return nil, err
	}

	course, err := resolveCourse(ctx, s.repo, req.CourseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Enrollment().GetByStudentAndCourse(ctx, student.ID, course.ID); err == nil {
		return nil, NewConflictError("enrollment",
			fmt.Sprintf("student with id: %d has already enrolled in course with id: %d", student.ID, course.ID))
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}

	enrollment := &models.Enrollment{
		StudentID:  student.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now().UTC(),
	}

	var envelope events.Event
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Enrollment().Create(ctx, enrollment); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				// Lost the race against a concurrent enroll for the same pair
				return NewConflictError("enrollment",
					fmt.Sprintf("student with id: %d has already enrolled in course with id: %d", student.ID, course.ID))
			}
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		row, ev, err := newDomainEvent(events.EventEnrollmentCreated, events.EnrollmentEventData{
			EnrollmentID: enrollment.ID,
			StudentID:    enrollment.StudentID,
			CourseID:     enrollment.CourseID,
			EnrolledAt:   enrollment.EnrolledAt,
		})
		if err != nil {
			return err
		}
		envelope = ev
		return r.Event().Create(ctx, row)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, envelope)

	s.logger.Info("Student enrolled", "enrollment_id", enrollment.ID)
	return enrollment.ToResponse(), nil
}

// Unenroll deletes an enrollment by id.
func (s *enrollmentService) Unenroll(ctx context.Context, enrollmentID uint) error {
	s.logger.Info("Unenrolling", "enrollment_id", enrollmentID)

	enrollment, err := s.getEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	var envelope events.Event
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Enrollment().Delete(ctx, enrollment.ID); err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("enrollment", enrollmentID)
			}
			return fmt.Errorf("failed to delete enrollment: %w", err)
		}

		row, ev, err := newDomainEvent(events.EventEnrollmentDeleted, events.EnrollmentEventData{
			EnrollmentID: enrollment.ID,
			StudentID:    enrollment.StudentID,
			CourseID:     enrollment.CourseID,
		})
		if err != nil {
			return err
		}
		envelope = ev
		return r.Event().Create(ctx, row)
	})
	if err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, envelope)
	return nil
}

func (s *enrollmentService) GetByID(ctx context.Context, enrollmentID uint) (*models.EnrollmentResponse, error) {
	enrollment, err := s.getEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	return enrollment.ToResponse(), nil
}

func (s *enrollmentService) List(ctx context.Context, filters repositories.EnrollmentFilters) (*EnrollmentListResponse, error) {
	enrollments, total, err := s.repo.Enrollment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return &EnrollmentListResponse{
		Enrollments: toEnrollmentResponses(enrollments),
		Total:       total,
		Page:        pageOf(filters.PageFilters),
		Size:        filters.Limit,
	}, nil
}

// Update replaces the student and course references of an existing
// enrollment. Both new references are validated the same way Enroll
// validates them; the original enrollment timestamp is preserved.
func (s *enrollmentService) Update(ctx context.Context, enrollmentID uint, req *UpdateEnrollmentRequest) (*models.EnrollmentResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	enrollment, err := s.getEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	student, err := resolveStudent(ctx, s.repo, req.UserID)
	if err != nil {
		return nil, err
	}

	course, err := resolveCourse(ctx, s.repo, req.CourseID)
	if err != nil {
		return nil, err
	}

	// Moving to a pair that is already taken is the same conflict as a
	// duplicate enroll, unless it is this enrollment's own pair.
	if existing, err := s.repo.Enrollment().GetByStudentAndCourse(ctx, student.ID, course.ID); err == nil {
		if existing.ID != enrollment.ID {
			return nil, NewConflictError("enrollment",
				fmt.Sprintf("student with id: %d has already enrolled in course with id: %d", student.ID, course.ID))
		}
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}

	enrollment.StudentID = student.ID
	enrollment.CourseID = course.ID

	if err := s.repo.Enrollment().Update(ctx, enrollment); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError("enrollment",
				fmt.Sprintf("student with id: %d has already enrolled in course with id: %d", student.ID, course.ID))
		}
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}

	return enrollment.ToResponse(), nil
}

func (s *enrollmentService) GetByStudent(ctx context.Context, studentID uint) ([]*models.EnrollmentResponse, error) {
	student, err := resolveStudent(ctx, s.repo, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Enrollment().ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments by student: %w", err)
	}
	return toEnrollmentResponses(enrollments), nil
}

func (s *enrollmentService) GetByCourse(ctx context.Context, courseID uint) ([]*models.EnrollmentResponse, error) {
	course, err := resolveCourse(ctx, s.repo, courseID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Enrollment().ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments by course: %w", err)
	}
	return toEnrollmentResponses(enrollments), nil
}

// GetByStudentAndCourse returns the single enrollment for the pair.
// Absence is a not-found error, never a nil record.
func (s *enrollmentService) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.EnrollmentResponse, error) {
	student, err := resolveStudent(ctx, s.repo, studentID)
	if err != nil {
		return nil, err
	}

	course, err := resolveCourse(ctx, s.repo, courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.repo.Enrollment().GetByStudentAndCourse(ctx, student.ID, course.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &ServiceError{
				Code:     CodeNotFound,
				Resource: "enrollment",
				Message:  fmt.Sprintf("enrollment not found for student id: %d and course id: %d", studentID, courseID),
			}
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment.ToResponse(), nil
}

func (s *enrollmentService) getEnrollmentByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	if id == 0 {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid enrollment id: %d", id))
	}

	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("enrollment", id)
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func toEnrollmentResponses(enrollments []*models.Enrollment) []*models.EnrollmentResponse {
	responses := make([]*models.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, e.ToResponse())
	}
	return responses
}
