package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderItem is a basket line as received from the caller.
type OrderItem struct {
	ProductID   int
	ProductName string
	UnitPrice   decimal.Decimal
	Units       int
}

func toDomainItems(items []OrderItem) ([]order.Item, error) {
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	out := make([]order.Item, 0, len(items))
	var problems []error
	for i, in := range items {
		item, err := order.NewItem(in.ProductID, in.ProductName, in.UnitPrice, in.Units)
		if err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		out = append(out, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return out, nil
}

// DraftView is the read-only preview returned by CreateOrderDraft.
type DraftView struct {
	BuyerID string          `json:"buyerId"`
	Status  string          `json:"status"`
	Items   []DraftItemView `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

type DraftItemView struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Units       int             `json:"units"`
}
