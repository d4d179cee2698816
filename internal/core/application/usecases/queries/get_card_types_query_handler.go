package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetCardTypesQueryHandler struct {
	db *gorm.DB
}

func NewGetCardTypesQueryHandler(db *gorm.DB) GetCardTypesQueryHandler {
	return GetCardTypesQueryHandler{db: db}
}

// Handle returns the card types sorted by id.
func (h GetCardTypesQueryHandler) Handle(ctx context.Context, query GetCardTypesQuery) ([]CardType, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cardTypes := make([]CardType, 0)
	rows, err := h.db.WithContext(ctx).Raw(`SELECT id, name FROM card_types ORDER BY id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cardType CardType
		if err = rows.Scan(&cardType.ID, &cardType.Name); err != nil {
			return nil, err
		}
		cardTypes = append(cardTypes, cardType)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cardTypes, nil
}
