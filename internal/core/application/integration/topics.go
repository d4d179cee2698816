package integration

// Outbound topics published by the ordering service.
const (
	TopicOrderStarted            = "order.started"
	TopicOrderAwaitingValidation = "order.awaiting-validation"
	TopicOrderStockConfirmed     = "order.stock-confirmed"
	TopicOrderPaid               = "order.paid"
	TopicOrderShipped            = "order.shipped"
	TopicOrderCancelled          = "order.cancelled"
)

// Inbound topics consumed from the stock and payment services.
const (
	TopicStockConfirmed   = "stock.confirmed"
	TopicStockRejected    = "stock.rejected"
	TopicPaymentSucceeded = "payment.succeeded"
	TopicPaymentFailed    = "payment.failed"
)

// InboundTopics lists every topic the reactor subscribes to.
func InboundTopics() []string {
	return []string{TopicStockConfirmed, TopicStockRejected, TopicPaymentSucceeded, TopicPaymentFailed}
}
