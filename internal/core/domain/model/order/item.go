package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an ordered line: a product, its unit price at ordering time and the
// number of units. Items are value objects and never change once created.
type Item struct {
	productID   int
	productName string
	unitPrice   decimal.Decimal
	units       int

	guard guard.ConstructorGuard
}

// NewItem validates and builds an Item.
//
// Rules:
//   - productID must be positive
//   - productName must not be empty
//   - unitPrice must not be negative
//   - units must be at least 1
func NewItem(productID int, productName string, unitPrice decimal.Decimal, units int) (Item, error) {
	var problems []error
	if productID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"productID", fmt.Errorf("%d is not greater than 0", productID)))
	}
	if productName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productName"))
	}
	if unitPrice.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%s is negative", unitPrice)))
	}
	if units < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("units", units, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		units:       units,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() int { return i.productID }
func (i Item) ProductName() string { return i.productName }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i Item) Units() int { return i.units }

// Total is unit price times units.
func (i Item) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.units)))
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
