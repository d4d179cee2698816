package order

// EventKind names the domain event a transition emits.
type EventKind int

const (
	EventNone EventKind = iota
	EventOrderStarted
	EventOrderAwaitingValidation
	EventOrderStockConfirmed
	EventOrderPaid
	EventOrderShipped
	EventOrderCancelled
)

var eventKindNames = map[EventKind]string{
	EventNone:                    "None",
	EventOrderStarted:            "OrderStarted",
	EventOrderAwaitingValidation: "OrderAwaitingValidation",
	EventOrderStockConfirmed:     "OrderStockConfirmed",
	EventOrderPaid:               "OrderPaid",
	EventOrderShipped:            "OrderShipped",
	EventOrderCancelled:          "OrderCancelled",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// CancelReason explains why an order ended up Cancelled.
type CancelReason string

const (
	ReasonNone          CancelReason = ""
	ReasonNoStock       CancelReason = "NoStock"
	ReasonPaymentFailed CancelReason = "PaymentFailed"
	ReasonUserRequested CancelReason = "UserRequested"
)
