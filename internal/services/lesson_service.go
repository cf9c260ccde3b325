package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

type lessonService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) LessonService {
	return &lessonService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *lessonService) Create(ctx context.Context, req *CreateLessonRequest) (*models.LessonResponse, error) {
	s.logger.Info("Creating lesson", "title", req.Title, "course_id", req.CourseID)

	if errs := s.validator.GetBusinessValidator().ValidateLessonCreate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := resolveCourse(ctx, s.repo, req.CourseID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTitleAvailable(ctx, req.Title, course.ID, 0); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		Title:    req.Title,
		Content:  req.Content,
		CourseID: course.ID,
	}

	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, s.titleConflict(req.Title, course.ID)
		}
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("Lesson created", "lesson_id", lesson.ID)
	return lesson.ToResponse(), nil
}

func (s *lessonService) GetByID(ctx context.Context, id uint) (*models.LessonResponse, error) {
	lesson, err := s.getLessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lesson.ToResponse(), nil
}

func (s *lessonService) List(ctx context.Context, filters repositories.LessonFilters) (*LessonListResponse, error) {
	lessons, total, err := s.repo.Lesson().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	return &LessonListResponse{
		Lessons: toLessonResponses(lessons),
		Total:   total,
		Page:    pageOf(filters.PageFilters),
		Size:    filters.Limit,
	}, nil
}

// Update replaces all mutable fields of the lesson, including moving it to
// another course. The lesson itself is allowed to keep its own title, so
// the uniqueness check skips the lesson being updated.
func (s *lessonService) Update(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.LessonResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	lesson, err := s.getLessonByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course, err := resolveCourse(ctx, s.repo, req.CourseID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTitleAvailable(ctx, req.Title, course.ID, lesson.ID); err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.CourseID = course.ID

	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, s.titleConflict(req.Title, course.ID)
		}
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	return lesson.ToResponse(), nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting lesson", "lesson_id", id)

	lesson, err := s.getLessonByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Lesson().Delete(ctx, lesson.ID); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("lesson", id)
		}
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uint) ([]*models.LessonResponse, error) {
	course, err := resolveCourse(ctx, s.repo, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.repo.Lesson().ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons by course: %w", err)
	}
	return toLessonResponses(lessons), nil
}

// checkTitleAvailable enforces title uniqueness within a course. selfID is
// the id of the lesson being updated, or 0 on create.
func (s *lessonService) checkTitleAvailable(ctx context.Context, title string, courseID, selfID uint) error {
	existing, err := s.repo.Lesson().GetByTitleAndCourse(ctx, title, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to check lesson title: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return s.titleConflict(title, courseID)
}

func (s *lessonService) titleConflict(title string, courseID uint) error {
	return NewConflictError("lesson", fmt.Sprintf("lesson with title %q already exists in course %d", title, courseID))
}

func (s *lessonService) getLessonByID(ctx context.Context, id uint) (*models.Lesson, error) {
	if id == 0 {
		return nil, NewInvalidArgumentError("lesson id must be positive")
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("lesson", id)
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

func toLessonResponses(lessons []*models.Lesson) []*models.LessonResponse {
	responses := make([]*models.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		responses = append(responses, l.ToResponse())
	}
	return responses
}
