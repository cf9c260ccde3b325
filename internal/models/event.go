package models

import (
	"time"

	"gorm.io/datatypes"
)

// DomainEvent is the outbox row recorded in the same transaction as the
// state change that produced it. The broker publish happens after commit;
// this table is the durable audit of what was emitted.
type DomainEvent struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Type      string         `json:"type" gorm:"not null;size:100;index"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

func (DomainEvent) TableName() string {
	return "domain_events"
}
