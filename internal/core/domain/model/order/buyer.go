package order

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrBuyerIsNotConstructed         = errors.New("Buyer must be created via NewBuyer constructor")
	ErrPaymentMethodIsNotConstructed = errors.New("PaymentMethod must be created via NewPaymentMethod constructor")
)

// Buyer identifies who placed the order.
type Buyer struct {
	userID   string
	userName string

	guard guard.ConstructorGuard
}

func NewBuyer(userID, userName string) (Buyer, error) {
	if userID == "" {
		return Buyer{}, errs.NewValueIsRequiredError("userID")
	}
	return Buyer{userID: userID, userName: userName, guard: guard.NewConstructorGuard()}, nil
}

func (b Buyer) Validate() error {
	return b.guard.Validate(ErrBuyerIsNotConstructed)
}

func (b Buyer) UserID() string { return b.userID }
func (b Buyer) UserName() string { return b.userName }

// PaymentMethod is the card an order is charged to. Only the masked card
// number is ever held; NewPaymentMethod rejects anything else.
type PaymentMethod struct {
	cardTypeID       int
	cardHolderName   string
	maskedCardNumber string
	expiration       time.Time

	guard guard.ConstructorGuard
}

func NewPaymentMethod(cardTypeID int, cardHolderName, maskedCardNumber string, expiration time.Time) (PaymentMethod, error) {
	var problems []error
	if cardTypeID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("cardTypeID"))
	}
	if cardHolderName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("cardHolderName"))
	}
	if !kernel.IsMaskedCardNumber(maskedCardNumber) {
		problems = append(problems, errs.NewValueIsInvalidError("maskedCardNumber"))
	}
	if expiration.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("cardExpiration"))
	}
	if err := errors.Join(problems...); err != nil {
		return PaymentMethod{}, err
	}

	return PaymentMethod{
		cardTypeID:       cardTypeID,
		cardHolderName:   cardHolderName,
		maskedCardNumber: maskedCardNumber,
		expiration:       expiration.UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (p PaymentMethod) Validate() error {
	return p.guard.Validate(ErrPaymentMethodIsNotConstructed)
}

func (p PaymentMethod) CardTypeID() int { return p.cardTypeID }
func (p PaymentMethod) CardHolderName() string { return p.cardHolderName }
func (p PaymentMethod) MaskedCardNumber() string { return p.maskedCardNumber }
func (p PaymentMethod) Expiration() time.Time { return p.expiration }
