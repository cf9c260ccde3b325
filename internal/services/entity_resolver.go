package services

import (
	"context"
	"fmt"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

// Entity resolvers turn claimed foreign-key ids into entities or fail with
// a typed error. Ids are checked before any store access.

func resolveUser(ctx context.Context, repo repositories.Repository, id uint, requiredRole *models.Role) (*models.User, error) {
	if id == 0 {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid user id: %d", id))
	}

	user, err := repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if requiredRole != nil && !user.HasRole(*requiredRole) {
		return nil, NewRoleMismatchError(id, string(*requiredRole))
	}

	return user, nil
}

func resolveStudent(ctx context.Context, repo repositories.Repository, id uint) (*models.User, error) {
	role := models.RoleStudent
	return resolveUser(ctx, repo, id, &role)
}

func resolveTeacher(ctx context.Context, repo repositories.Repository, id uint) (*models.User, error) {
	role := models.RoleTeacher
	return resolveUser(ctx, repo, id, &role)
}

func resolveCourse(ctx context.Context, repo repositories.Repository, id uint) (*models.Course, error) {
	if id == 0 {
		return nil, NewInvalidArgumentError(fmt.Sprintf("invalid course id: %d", id))
	}

	course, err := repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("course", id)
		}
		return nil, fmt.Errorf("failed to resolve course: %w", err)
	}

	return course, nil
}
