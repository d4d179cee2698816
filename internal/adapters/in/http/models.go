package http

import (
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type BasketItem struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// CreateOrderRequest is the checkout of a basket. CardSecurityNumber is
// accepted for compatibility and never stored.
type CreateOrderRequest struct {
	UserID             string       `json:"userId"`
	UserName           string       `json:"userName"`
	Street             string       `json:"street"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Country            string       `json:"country"`
	ZipCode            string       `json:"zipCode"`
	CardNumber         string       `json:"cardNumber"`
	CardHolderName     string       `json:"cardHolderName"`
	CardExpiration     time.Time    `json:"cardExpiration"`
	CardSecurityNumber string       `json:"cardSecurityNumber"`
	CardTypeID         int          `json:"cardTypeId"`
	Items              []BasketItem `json:"items"`
}

type OrderNumberRequest struct {
	OrderNumber int64 `json:"orderNumber"`
}

type CreateOrderDraftRequest struct {
	BuyerID string       `json:"buyerId"`
	Items   []BasketItem `json:"items"`
}

func (r CreateOrderRequest) input() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		UserID:         r.UserID,
		UserName:       r.UserName,
		Street:         r.Street,
		City:           r.City,
		State:          r.State,
		Country:        r.Country,
		ZipCode:        r.ZipCode,
		CardNumber:     r.CardNumber,
		CardHolderName: r.CardHolderName,
		CardExpiration: r.CardExpiration,
		CardTypeID:     r.CardTypeID,
		Items:          orderItems(r.Items),
	}
}

func orderItems(basket []BasketItem) []commands.OrderItem {
	items := make([]commands.OrderItem, 0, len(basket))
	for _, b := range basket {
		items = append(items, commands.OrderItem{
			ProductID:   b.ProductID,
			ProductName: b.ProductName,
			UnitPrice:   b.UnitPrice,
			Units:       b.Quantity,
		})
	}
	return items
}

type TradeGeckoLineItem struct {
	VariantID int64           `json:"variantId"`
	Label     string          `json:"label,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type TradeGeckoOrder struct {
	ID                int64                `json:"id,omitempty"`
	OrderNumber       string               `json:"orderNumber,omitempty"`
	CompanyID         int64                `json:"companyId"`
	Status            string               `json:"status,omitempty"`
	PaymentStatus     string               `json:"paymentStatus,omitempty"`
	FulfillmentStatus string               `json:"fulfillmentStatus,omitempty"`
	IssuedAt          string               `json:"issuedAt,omitempty"`
	Total             decimal.Decimal      `json:"total"`
	LineItems         []TradeGeckoLineItem `json:"lineItems"`
}

func tradeGeckoOrderFrom(o ports.TradeGeckoOrder) TradeGeckoOrder {
	out := TradeGeckoOrder{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CompanyID:         o.CompanyID,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		IssuedAt:          o.IssuedAt,
		Total:             o.Total,
		LineItems:         make([]TradeGeckoLineItem, 0, len(o.LineItems)),
	}
	for _, item := range o.LineItems {
		out.LineItems = append(out.LineItems, TradeGeckoLineItem(item))
	}
	return out
}

func (o TradeGeckoOrder) toPort() ports.TradeGeckoOrder {
	out := ports.TradeGeckoOrder{
		CompanyID:         o.CompanyID,
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		IssuedAt:          o.IssuedAt,
		Total:             o.Total,
	}
	for _, item := range o.LineItems {
		out.LineItems = append(out.LineItems, ports.TradeGeckoLineItem(item))
	}
	return out
}
