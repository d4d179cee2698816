package idempotencyrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIdempotencyRepository implements IdempotencyRepository using GORM.
type GormIdempotencyRepository struct {
	db *gorm.DB
}

var _ ports.IdempotencyRepository = (*GormIdempotencyRepository)(nil)

func NewGormIdempotencyRepository(db *gorm.DB) *GormIdempotencyRepository {
	return &GormIdempotencyRepository{db: db}
}

// Reserve inserts the record. A concurrent insert of the same key blocks on
// the primary key until the other transaction ends; when it committed,
// Reserve returns *errs.AlreadyExistsError.
func (r *GormIdempotencyRepository) Reserve(ctx context.Context, record *idempotency.Record) error {
	if err := record.Key().Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewAlreadyExistsError("idempotency record", record.Key().String())
	}
	return nil
}

// Complete stores the outcome of a reserved record.
func (r *GormIdempotencyRepository) Complete(ctx context.Context, record *idempotency.Record) error {
	if !record.IsCompleted() {
		return fmt.Errorf("idempotency record %s is not completed", record.Key())
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("request_id = ? AND command_type = ?", dto.RequestID, dto.CommandType).
		Updates(map[string]any{
			"succeeded":    dto.Succeeded,
			"reason":       dto.Reason,
			"payload":      dto.Payload,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("idempotency record", record.Key().String())
	}
	return nil
}

func (r *GormIdempotencyRepository) Get(ctx context.Context, key idempotency.Key) (*idempotency.Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		First(&dto, "request_id = ? AND command_type = ?", key.RequestID.Bytes(), key.CommandType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency record", key.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeleteCompletedBefore removes completed records older than before and
// returns how many were deleted. Reservations in progress are kept.
func (r *GormIdempotencyRepository) DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("completed_at IS NOT NULL AND completed_at < ?", before).
		Delete(&RecordDTO{})
	return result.RowsAffected, result.Error
}
