package postgres

import (
	"fmt"

	"ordering/internal/adapters/out/postgres/idempotencyrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardTypeDTO is a row of the card_types reference table.
type CardTypeDTO struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:64;not null"`
}

func (CardTypeDTO) TableName() string {
	return "card_types"
}

// CardTypes is the seeded reference data.
var CardTypes = []CardTypeDTO{
	{ID: 1, Name: "Amex"},
	{ID: 2, Name: "Visa"},
	{ID: 3, Name: "MasterCard"},
}

// Migrate creates or updates every table and seeds the card types.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&idempotencyrepo.RecordDTO{},
		&outboxrepo.MessageDTO{},
		&CardTypeDTO{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&CardTypes).Error; err != nil {
		return fmt.Errorf("failed to seed card types: %w", err)
	}
	return nil
}

// Tables lists every table Migrate manages, children first.
func Tables() []string {
	return []string{"order_items", "orders", "idempotency_records", "outbox_messages", "card_types"}
}
