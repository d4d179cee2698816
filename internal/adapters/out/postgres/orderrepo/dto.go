// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The id is generated by the database and assigned to the aggregate on insert.
type OrderDTO struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	BuyerID     string         `gorm:"not null;index"`
	BuyerName   string         `gorm:"not null"`
	Address     AddressDTO     `gorm:"embedded;embeddedPrefix:address_"`
	Payment     PaymentDTO     `gorm:"embedded;embeddedPrefix:card_"`
	Status      int            `gorm:"not null;index:idx_orders_status_pending,priority:1"`
	Description string         `gorm:"not null;default:''"`
	Entered     TransitionsDTO `gorm:"embedded;embeddedPrefix:entered_"`
	Items       []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded shipping address.
type AddressDTO struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

// PaymentDTO is the embedded payment method. Only the masked card number is stored.
type PaymentDTO struct {
	TypeID     int
	HolderName string
	Number     string `gorm:"size:32"`
	Expiration time.Time
}

// TransitionsDTO stores when each status was entered; nil for statuses never reached.
type TransitionsDTO struct {
	Draft              time.Time  `gorm:"not null"`
	Pending            *time.Time `gorm:"index:idx_orders_status_pending,priority:2"`
	AwaitingValidation *time.Time
	StockConfirmed     *time.Time
	Paid               *time.Time
	Shipped            *time.Time
	Cancelled          *time.Time
}

// OrderItemDTO is one order line.
type OrderItemDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"not null;index"`
	ProductID   int             `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Units       int             `gorm:"not null"`
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func (t *TransitionsDTO) slot(s order.Status) **time.Time {
	switch s {
	case order.Pending:
		return &t.Pending
	case order.AwaitingValidation:
		return &t.AwaitingValidation
	case order.StockConfirmed:
		return &t.StockConfirmed
	case order.Paid:
		return &t.Paid
	case order.Shipped:
		return &t.Shipped
	case order.Cancelled:
		return &t.Cancelled
	default:
		return nil
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:        aggregate.ID(),
		BuyerID:   aggregate.Buyer().UserID(),
		BuyerName: aggregate.Buyer().UserName(),
		Address: AddressDTO{
			Street:  aggregate.Address().Street(),
			City:    aggregate.Address().City(),
			State:   aggregate.Address().State(),
			Country: aggregate.Address().Country(),
			ZipCode: aggregate.Address().ZipCode(),
		},
		Payment: PaymentDTO{
			TypeID:     aggregate.PaymentMethod().CardTypeID(),
			HolderName: aggregate.PaymentMethod().CardHolderName(),
			Number:     aggregate.PaymentMethod().MaskedCardNumber(),
			Expiration: aggregate.PaymentMethod().Expiration(),
		},
		Status:      int(aggregate.Status()),
		Description: aggregate.Description(),
	}

	for s, at := range aggregate.Transitions() {
		if s == order.Draft {
			dto.Entered.Draft = at
			continue
		}
		if slot := dto.Entered.slot(s); slot != nil {
			entered := at
			*slot = &entered
		}
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     aggregate.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice(),
			Units:       item.Units(),
		})
	}
	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	buyer, err := order.NewBuyer(dto.BuyerID, dto.BuyerName)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Address.Street, dto.Address.City, dto.Address.State, dto.Address.Country, dto.Address.ZipCode)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPaymentMethod(
		dto.Payment.TypeID, dto.Payment.HolderName, dto.Payment.Number, dto.Payment.Expiration)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		item, itemErr := order.NewItem(line.ProductID, line.ProductName, line.UnitPrice, line.Units)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	transitions := map[order.Status]time.Time{order.Draft: dto.Entered.Draft}
	for _, s := range order.Statuses() {
		if slot := dto.Entered.slot(s); slot != nil && *slot != nil {
			transitions[s] = **slot
		}
	}

	return order.RestoreOrder(
		dto.ID, buyer, address, payment, items, order.Status(dto.Status), transitions, dto.Description)
}
