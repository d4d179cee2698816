package queries

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrdersForUserQueryIsNotConstructed = errors.New(
		"GetOrdersForUserQuery must be created via NewGetOrdersForUserQuery constructor",
	)
)

// GetOrdersForUserQuery lists the orders of one buyer, newest first.
type GetOrdersForUserQuery struct {
	userID string

	guard guard.ConstructorGuard
}

func NewGetOrdersForUserQuery(userID string) (GetOrdersForUserQuery, error) {
	if userID == "" {
		return GetOrdersForUserQuery{}, errs.NewValueIsRequiredError("userID")
	}
	return GetOrdersForUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersForUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForUserQueryIsNotConstructed)
}

func (q GetOrdersForUserQuery) UserID() string {
	return q.userID
}

// OrderSummary is one row of a buyer's order history.
type OrderSummary struct {
	OrderNumber int64           `json:"orderNumber"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}
