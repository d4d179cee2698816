package kernel

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned by Validate for a zero Address.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the shipping destination of an order. State is optional.
type Address struct {
	street  string
	city    string
	state   string
	country string
	zipCode string

	guard guard.ConstructorGuard
}

// NewAddress validates and builds an Address. Every missing mandatory part is reported.
func NewAddress(street, city, state, country, zipCode string) (Address, error) {
	if err := errors.Join(
		required("street", street),
		required("city", city),
		required("country", country),
		required("zipCode", zipCode),
	); err != nil {
		return Address{}, err
	}

	return Address{
		street:  street,
		city:    city,
		state:   state,
		country: country,
		zipCode: zipCode,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) Country() string { return a.country }
func (a Address) ZipCode() string { return a.zipCode }

func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.country == other.country &&
		a.zipCode == other.zipCode
}
