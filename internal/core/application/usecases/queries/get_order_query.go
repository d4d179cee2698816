// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its lines.
//
// Example:
//
//	query, err := NewGetOrderQuery(7)
//	handler := NewGetOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // respond 404
//	}
type GetOrderQuery struct {
	orderNumber int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderNumber int64) (GetOrderQuery, error) {
	if orderNumber <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber", fmt.Errorf("%d is not greater than 0", orderNumber))
	}
	return GetOrderQuery{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderNumber() int64 {
	return q.orderNumber
}

// GetOrderQueryResponse is the detailed order view.
type GetOrderQueryResponse struct {
	OrderNumber int64           `json:"orderNumber"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	BuyerID     string          `json:"buyerId"`
	Street      string          `json:"street"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Country     string          `json:"country"`
	ZipCode     string          `json:"zipCode"`
	Items       []OrderItemView `json:"orderItems"`
	Total       decimal.Decimal `json:"total"`
}

type OrderItemView struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Units       int             `json:"units"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}
