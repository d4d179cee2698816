package queries

import (
	"errors"

	"ordering/internal/pkg/guard"
)

var (
	ErrGetCardTypesQueryIsNotConstructed = errors.New(
		"GetCardTypesQuery must be created via NewGetCardTypesQuery constructor",
	)
)

// GetCardTypesQuery lists the accepted card types.
type GetCardTypesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCardTypesQuery() GetCardTypesQuery {
	return GetCardTypesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCardTypesQuery) Validate() error {
	return q.guard.Validate(ErrGetCardTypesQueryIsNotConstructed)
}

type CardType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
