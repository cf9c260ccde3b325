package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

type EventPostgreSQL struct {
	db *gorm.DB
}

func NewEventPostgreSQL(db *gorm.DB) repositories.EventRepository {
	return &EventPostgreSQL{db: db}
}

func (r *EventPostgreSQL) Create(ctx context.Context, event *models.DomainEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record domain event: %w", err)
	}
	return nil
}
