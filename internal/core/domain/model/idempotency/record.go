package idempotency

import (
	"errors"
	"time"
)

// ErrRecordIsAlreadyCompleted is returned when Complete is called on a finished record.
var ErrRecordIsAlreadyCompleted = errors.New("idempotency record is already completed")

// Record is the stored proof that a request has been reserved and, once
// completed, what it produced.
type Record struct {
	key         Key
	result      Result
	createdAt   time.Time
	completedAt *time.Time
}

// NewRecord reserves key at now. The record stays incomplete until Complete.
func NewRecord(key Key, now time.Time) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return &Record{key: key, createdAt: now.UTC()}, nil
}

// RestoreRecord rebuilds a record read from storage. completedAt is nil for a
// reservation whose command has not finished yet.
func RestoreRecord(key Key, result Result, createdAt time.Time, completedAt *time.Time) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	r := &Record{key: key, result: result, createdAt: createdAt.UTC()}
	if completedAt != nil {
		at := completedAt.UTC()
		r.completedAt = &at
	}
	return r, nil
}

// Complete stores the command's outcome. A record completes once.
func (r *Record) Complete(result Result, now time.Time) error {
	if r.IsCompleted() {
		return ErrRecordIsAlreadyCompleted
	}
	at := now.UTC()
	r.result = result
	r.completedAt = &at
	return nil
}

func (r *Record) Key() Key { return r.key }
func (r *Record) Result() Result { return r.result }
func (r *Record) CreatedAt() time.Time { return r.createdAt }

func (r *Record) IsCompleted() bool {
	return r.completedAt != nil
}

// CompletedAt returns the completion time and whether the record is completed.
func (r *Record) CompletedAt() (time.Time, bool) {
	if r.completedAt == nil {
		return time.Time{}, false
	}
	return *r.completedAt, true
}
