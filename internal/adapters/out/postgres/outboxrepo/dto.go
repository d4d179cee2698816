// Package outboxrepo persists the transactional outbox.
package outboxrepo

import (
	"time"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO is an outbox row. Seq keeps insertion order for the relay.
type MessageDTO struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	EventID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Topic       string    `gorm:"size:128;not null"`
	OrderID     int64     `gorm:"not null;index"`
	Payload     []byte    `gorm:"type:bytea"`
	OccurredAt  time.Time `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(e integration.Event) MessageDTO {
	return MessageDTO{
		EventID:    e.ID.Bytes(),
		Topic:      e.Topic,
		OrderID:    e.OrderID,
		Payload:    e.Payload,
		OccurredAt: e.OccurredAt,
	}
}

func toDomain(dto MessageDTO) (integration.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return integration.Event{}, err
	}

	e := integration.Event{
		ID:         id,
		Topic:      dto.Topic,
		OrderID:    dto.OrderID,
		Payload:    dto.Payload,
		OccurredAt: dto.OccurredAt.UTC(),
	}
	return e, e.Validate()
}
