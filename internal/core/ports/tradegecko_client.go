package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// TradeGeckoOrder is an order kept in the TradeGecko ERP. It is independent
// of the ordering aggregate; the service only relays it.
type TradeGeckoOrder struct {
	ID                int64
	OrderNumber       string
	CompanyID         int64
	Status            string
	PaymentStatus     string
	FulfillmentStatus string
	IssuedAt          string
	Total             decimal.Decimal
	LineItems         []TradeGeckoLineItem
}

type TradeGeckoLineItem struct {
	VariantID int64
	Label     string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// TradeGeckoPage selects a page of orders. Zero values leave the choice to
// TradeGecko.
type TradeGeckoPage struct {
	Limit int
	Page  int
}

// TradeGeckoClient reads and writes orders in the TradeGecko ERP.
type TradeGeckoClient interface {
	ListOrders(ctx context.Context, page TradeGeckoPage) ([]TradeGeckoOrder, error)

	// GetOrder returns *errs.ObjectNotFoundError when TradeGecko has no such order.
	GetOrder(ctx context.Context, id int64) (TradeGeckoOrder, error)

	CreateOrder(ctx context.Context, order TradeGeckoOrder) (TradeGeckoOrder, error)

	// UpdateOrderStatus sets the payment and fulfillment status of an order.
	// Returns *errs.ObjectNotFoundError when TradeGecko has no such order.
	UpdateOrderStatus(ctx context.Context, id int64, paymentStatus, fulfillmentStatus string) error
}
