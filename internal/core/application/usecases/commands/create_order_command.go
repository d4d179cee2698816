package commands

import (
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// CreateOrderInput carries the raw checkout data. CardNumber is the only
// field holding a sensitive value; it never leaves NewCreateOrderCommand unmasked.
type CreateOrderInput struct {
	UserID   string
	UserName string

	Street  string
	City    string
	State   string
	Country string
	ZipCode string

	CardNumber     string
	CardHolderName string
	CardExpiration time.Time
	CardTypeID     int

	Items []OrderItem
}

// CreateOrderCommand represents a checkout: a new order submitted by a buyer.
//
// The card number is masked by the constructor, before the command can be
// logged, recorded or persisted.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderInput{
//	    UserID:     "user-1",
//	    CardNumber: "4111111111111111",
//	    // ...
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	cmd.PaymentMethod().MaskedCardNumber() // "XXXXXXXXXXXX1111"
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyer   order.Buyer
	address kernel.Address
	payment order.PaymentMethod
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout and masks the card number.
// Every invalid part is reported; the raw card number is never part of an error.
func NewCreateOrderCommand(in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyer(in.UserID, in.UserName),
		cmd.setAddress(in.Street, in.City, in.State, in.Country, in.ZipCode),
		cmd.setPayment(in.CardTypeID, in.CardHolderName, in.CardNumber, in.CardExpiration),
		cmd.setItems(in.Items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Type() CommandType {
	return CreateOrder
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Buyer() order.Buyer {
	return c.buyer
}

func (c CreateOrderCommand) Address() kernel.Address {
	return c.address
}

// PaymentMethod returns the card with its number already masked.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.payment
}

func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("userId", c.buyer.UserID()),
		slog.String("cardNumber", c.payment.MaskedCardNumber()),
		slog.Int("cardTypeId", c.payment.CardTypeID()),
		slog.Int("items", len(c.items)),
	)
}

func (c *CreateOrderCommand) setBuyer(userID, userName string) error {
	buyer, err := order.NewBuyer(userID, userName)
	if err != nil {
		return err
	}

	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setAddress(street, city, state, country, zipCode string) error {
	address, err := kernel.NewAddress(street, city, state, country, zipCode)
	if err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPayment(cardTypeID int, holder, cardNumber string, expiration time.Time) error {
	masked, err := kernel.MaskCardNumber(cardNumber)
	if err != nil {
		return err
	}

	payment, err := order.NewPaymentMethod(cardTypeID, holder, masked, expiration)
	if err != nil {
		return err
	}

	c.payment = payment
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	domainItems, err := toDomainItems(items)
	if err != nil {
		return err
	}

	c.items = domainItems
	return nil
}
