package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mateoAlonso06/educatech-api/internal/auth"
	"github.com/mateoAlonso06/educatech-api/internal/events"
	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *userService) Register(ctx context.Context, req *CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	if errs := s.validator.GetBusinessValidator().ValidateUserCreate(req); len(errs) > 0 {
		return nil, errs
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid role: %s", req.Role))
	}

	taken, err := s.repo.User().ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, NewConflictError("user", fmt.Sprintf("email %s is already registered", req.Email))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
	}

	var envelope events.Event
	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.User().Create(ctx, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return NewConflictError("user", fmt.Sprintf("email %s is already registered", req.Email))
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		row, ev, err := newDomainEvent(events.EventUserRegistered, events.UserEventData{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
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

	s.logger.Info("User registered", "user_id", user.ID)
	return user.ToResponse(), nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := resolveUser(ctx, s.repo, id, nil)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.UserResponse, error) {
	if email == "" {
		return nil, NewInvalidArgumentError("email is required")
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &ServiceError{
				Code:     CodeNotFound,
				Resource: "user",
				Message:  fmt.Sprintf("user not found with email: %s", email),
			}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user.ToResponse(), nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: toUserResponses(users),
		Total: total,
		Page:  pageOf(filters.PageFilters),
		Size:  filters.Limit,
	}, nil
}

func (s *userService) ListByRole(ctx context.Context, role models.Role) ([]*models.UserResponse, error) {
	if !role.Valid() {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid role: %s", role))
	}

	users, err := s.repo.User().ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return toUserResponses(users), nil
}

// Update replaces the mutable profile fields. Role is fixed at
// registration and not part of the update surface.
func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.UserResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := resolveUser(ctx, s.repo, id, nil)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		taken, err := s.repo.User().ExistsByEmail(ctx, req.Email, &user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, NewConflictError("user", fmt.Sprintf("email %s is already registered", req.Email))
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Password = hash

	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError("user", fmt.Sprintf("email %s is already registered", req.Email))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user.ToResponse(), nil
}

// Delete removes a user together with everything the user owns: the
// enrollments where they are the student, and each course they teach with
// that course's lessons and enrollments. No language-level cascade exists
// here, so the deletion is an explicit sequence inside one transaction.
func (s *userService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting user", "user_id", id)

	user, err := resolveUser(ctx, s.repo, id, nil)
	if err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Enrollment().DeleteByStudent(ctx, user.ID); err != nil {
			return err
		}

		courses, err := r.Course().ListByTeacher(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, course := range courses {
			if err := r.Lesson().DeleteByCourse(ctx, course.ID); err != nil {
				return err
			}
			if err := r.Enrollment().DeleteByCourse(ctx, course.ID); err != nil {
				return err
			}
		}
		if err := r.Course().DeleteByTeacher(ctx, user.ID); err != nil {
			return err
		}

		if err := r.User().Delete(ctx, user.ID); err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("user", id)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func toUserResponses(users []*models.User) []*models.UserResponse {
	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses
}
