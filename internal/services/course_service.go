package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mateoAlonso06/educatech-api/internal/events"
	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*models.CourseResponse, error) {
	s.logger.Info("Creating course", "title", req.Title, "teacher_id", req.TeacherID)

	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	teacher, err := resolveTeacher(ctx, s.repo, req.TeacherID)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacher.ID,
	}

	var envelope events.Event
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Course().Create(ctx, course); err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}

		row, ev, err := newDomainEvent(events.EventCourseCreated, events.CourseEventData{
			CourseID:  course.ID,
			TeacherID: course.TeacherID,
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

	s.logger.Info("Course created", "course_id", course.ID)
	return course.ToResponse(), nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.CourseResponse, error) {
	course, err := resolveCourse(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return course.ToResponse(), nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error) {
	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &CourseListResponse{
		Courses: toCourseResponses(courses),
		Total:   total,
		Page:    pageOf(filters.PageFilters),
		Size:    filters.Limit,
	}, nil
}

// Update replaces all mutable fields of the course. Reassigning the course
// to the teacher who already owns it is rejected as a conflict.
func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.CourseResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := resolveCourse(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	teacher, err := resolveTeacher(ctx, s.repo, req.TeacherID)
	if err != nil {
		return nil, err
	}

	if course.TeacherID == teacher.ID {
		return nil, NewConflictError("course", fmt.Sprintf("teacher with id %d is already assigned to course %d", teacher.ID, course.ID))
	}

	course.Title = req.Title
	course.Description = req.Description
	course.TeacherID = teacher.ID

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return course.ToResponse(), nil
}

// Delete removes the course and its dependents (lessons and enrollments)
// inside one transaction.
func (s *courseService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting course", "course_id", id)

	course, err := resolveCourse(ctx, s.repo, id)
	if err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Lesson().DeleteByCourse(ctx, course.ID); err != nil {
			return err
		}
		if err := r.Enrollment().DeleteByCourse(ctx, course.ID); err != nil {
			return err
		}
		if err := r.Course().Delete(ctx, course.ID); err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("course", id)
			}
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
}

func (s *courseService) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.CourseResponse, error) {
	teacher, err := resolveTeacher(ctx, s.repo, teacherID)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course().ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by teacher: %w", err)
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) SearchByTitle(ctx context.Context, keyword string, filters repositories.CourseFilters) (*CourseListResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, NewInvalidArgumentError("search keyword is required")
	}

	courses, total, err := s.repo.Course().SearchByTitle(ctx, keyword, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	return &CourseListResponse{
		Courses: toCourseResponses(courses),
		Total:   total,
		Page:    pageOf(filters.PageFilters),
		Size:    filters.Limit,
	}, nil
}

func toCourseResponses(courses []*models.Course) []*models.CourseResponse {
	responses := make([]*models.CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, c.ToResponse())
	}
	return responses
}
