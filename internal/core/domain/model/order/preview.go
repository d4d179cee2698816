package order

import (
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Preview is a Draft order built from a basket. It is never persisted and has
// no side effects.
type Preview struct {
	buyerID string
	items   []Item
}

func NewPreview(buyerID string, items []Item) (Preview, error) {
	if buyerID == "" {
		return Preview{}, errs.NewValueIsRequiredError("buyerID")
	}
	if err := validateItems(items); err != nil {
		return Preview{}, err
	}

	return Preview{buyerID: buyerID, items: append([]Item(nil), items...)}, nil
}

func (d Preview) BuyerID() string { return d.buyerID }

func (d Preview) Status() Status { return Draft }

func (d Preview) Items() []Item { return append([]Item(nil), d.items...) }

func (d Preview) Total() decimal.Decimal { return totalOf(d.items) }
