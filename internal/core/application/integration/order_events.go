package integration

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderStatusChanged is the payload of every outbound order.* event.
type OrderStatusChanged struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
	BuyerID string `json:"buyerId"`
	Reason  string `json:"reason,omitempty"`
}

var eventTopics = map[order.EventKind]string{
	order.EventOrderStarted:            TopicOrderStarted,
	order.EventOrderAwaitingValidation: TopicOrderAwaitingValidation,
	order.EventOrderStockConfirmed:     TopicOrderStockConfirmed,
	order.EventOrderPaid:               TopicOrderPaid,
	order.EventOrderShipped:            TopicOrderShipped,
	order.EventOrderCancelled:          TopicOrderCancelled,
}

// TopicFor returns the outbound topic of a domain event kind.
func TopicFor(kind order.EventKind) (string, bool) {
	topic, ok := eventTopics[kind]
	return topic, ok
}

// FromTransition maps the domain event of a transition to an integration event.
// It returns false when the transition emits nothing (no-ops included).
func FromTransition(o *order.Order, t order.Transition, occurredAt time.Time) (Event, bool, error) {
	if !t.Emits() {
		return Event{}, false, nil
	}

	topic, ok := TopicFor(t.Event)
	if !ok {
		return Event{}, false, fmt.Errorf("no topic for domain event %s", t.Event)
	}

	e, err := NewEvent(topic, o.ID(), OrderStatusChanged{
		OrderID: o.ID(),
		Status:  t.To.String(),
		BuyerID: o.Buyer().UserID(),
		Reason:  string(t.Reason),
	}, occurredAt)
	if err != nil {
		return Event{}, false, err
	}
	return e, true, nil
}
