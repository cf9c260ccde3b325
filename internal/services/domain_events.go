package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mateoAlonso06/educatech-api/internal/events"
	"github.com/mateoAlonso06/educatech-api/internal/models"
)

// newDomainEvent builds the outbox row and the broker envelope for a single
// domain event, sharing one id and timestamp.
func newDomainEvent(eventType string, data interface{}) (*models.DomainEvent, events.Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, events.Event{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	row := &models.DomainEvent{
		ID:        id,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: now,
	}
	envelope := events.Event{
		ID:         id,
		Type:       eventType,
		OccurredAt: now,
		Data:       data,
	}
	return row, envelope, nil
}

// publishEvent pushes an event to the broker after the owning transaction
// committed. Publish failures are logged, never surfaced: the outbox row is
// the durable record.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish domain event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
	}
}
