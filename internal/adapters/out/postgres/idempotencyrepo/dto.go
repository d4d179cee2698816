// Package idempotencyrepo persists deduplication records. The composite
// primary key (request_id, command_type) is what makes reservation atomic.
package idempotencyrepo

import (
	"time"

	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO is a row of the idempotency_records table. Succeeded is nil while
// the owning transaction has not completed the record.
type RecordDTO struct {
	RequestID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CommandType string    `gorm:"primaryKey;size:64"`
	Succeeded   *bool
	Reason      string `gorm:"not null;default:''"`
	Payload     []byte `gorm:"type:bytea"`
	CreatedAt   time.Time
	CompletedAt *time.Time `gorm:"index"`
}

func (RecordDTO) TableName() string {
	return "idempotency_records"
}

func fromDomain(record *idempotency.Record) RecordDTO {
	dto := RecordDTO{
		RequestID:   record.Key().RequestID.Bytes(),
		CommandType: record.Key().CommandType,
		CreatedAt:   record.CreatedAt(),
	}

	if completedAt, ok := record.CompletedAt(); ok {
		succeeded := record.Result().Succeeded()
		dto.Succeeded = &succeeded
		dto.Reason = record.Result().Reason()
		dto.Payload = record.Result().Payload()
		dto.CompletedAt = &completedAt
	}
	return dto
}

func toDomain(dto RecordDTO) (*idempotency.Record, error) {
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	key, err := idempotency.NewKey(requestID, dto.CommandType)
	if err != nil {
		return nil, err
	}

	var result idempotency.Result
	switch {
	case dto.Succeeded == nil:
	case *dto.Succeeded:
		result = idempotency.Success(dto.Payload)
	default:
		result = idempotency.FailureWithPayload(dto.Reason, dto.Payload)
	}

	return idempotency.RestoreRecord(key, result, dto.CreatedAt, dto.CompletedAt)
}
