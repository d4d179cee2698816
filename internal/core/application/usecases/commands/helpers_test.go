package commands_test

import (
	"io"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/testkit/memory"

	"github.com/shopspring/decimal"
)

var checkoutExpiration = time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func checkout() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		UserID:         "user-1",
		UserName:       "Alice",
		Street:         "1 Main St",
		City:           "Seattle",
		State:          "WA",
		Country:        "USA",
		ZipCode:        "98101",
		CardNumber:     "4111111111111111",
		CardHolderName: "Alice",
		CardExpiration: checkoutExpiration,
		CardTypeID:     2,
		Items: []commands.OrderItem{
			{ProductID: 1, ProductName: "A", UnitPrice: decimal.RequireFromString("9.50"), Units: 2},
		},
	}
}

type orderUoWFactory struct{ db *memory.DB }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.db.NewUnitOfWork() }

type outboxUoWFactory struct{ db *memory.DB }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.db.NewUnitOfWork() }

type idempotencyUoWFactory struct{ db *memory.DB }

func (f idempotencyUoWFactory) Create() commands.IdempotencyUoW { return f.db.NewUnitOfWork() }
