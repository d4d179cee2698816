package integration

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Event is an immutable fact published across service boundaries.
type Event struct {
	ID         kernel.UUID
	Topic      string
	OrderID    int64
	Payload    json.RawMessage
	OccurredAt time.Time
}

type envelope struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	OrderID    int64           `json:"orderId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewEvent builds an event with a fresh identifier. payload is marshalled to JSON.
func NewEvent(topic string, orderID int64, payload any, occurredAt time.Time) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	e := Event{
		ID:         kernel.NewUUID(),
		Topic:      topic,
		OrderID:    orderID,
		Payload:    raw,
		OccurredAt: occurredAt.UTC(),
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// NewReplyEvent builds the event answering cause. Its identifier is derived
// from cause and topic, so redeliveries of cause produce the same reply.
func NewReplyEvent(cause Event, topic string, payload any, occurredAt time.Time) (Event, error) {
	if err := cause.ID.Validate(); err != nil {
		return Event{}, err
	}

	reply, err := NewEvent(topic, cause.OrderID, payload, occurredAt)
	if err != nil {
		return Event{}, err
	}
	reply.ID = kernel.DerivedUUID(cause.ID, topic)
	return reply, nil
}

func (e Event) Validate() error {
	var problems []error
	if err := e.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if e.Topic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("topic"))
	}
	if e.OrderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"orderId", fmt.Errorf("%d is not greater than 0", e.OrderID)))
	}
	return errors.Join(problems...)
}

// Encode serializes the event into its wire envelope.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(envelope{
		ID:         e.ID.String(),
		Topic:      e.Topic,
		OrderID:    e.OrderID,
		Payload:    e.Payload,
		OccurredAt: e.OccurredAt,
	})
}

// Decode parses a wire envelope and validates it.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, errs.NewValueIsInvalidErrorWithCause("event", err)
	}

	id, err := kernel.UUIDFromString(env.ID)
	if err != nil {
		return Event{}, errs.NewValueIsInvalidErrorWithCause("event id", err)
	}

	e := Event{
		ID:         id,
		Topic:      env.Topic,
		OrderID:    env.OrderID,
		Payload:    env.Payload,
		OccurredAt: env.OccurredAt.UTC(),
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}
