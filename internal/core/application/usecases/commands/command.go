package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// CommandType is the discriminator the Dispatcher routes on.
type CommandType string

const (
	CreateOrder      CommandType = "CreateOrder"
	CancelOrder      CommandType = "CancelOrder"
	ShipOrder        CommandType = "ShipOrder"
	CreateOrderDraft CommandType = "CreateOrderDraft"
)

// Command is an order command routed by the Dispatcher. LogValue must never
// expose sensitive values.
type Command interface {
	Type() CommandType
	Validate() error
	slog.LogValuer
}

// IdentifiedCommand pairs a command with the caller supplied request id that
// makes retries safe.
type IdentifiedCommand struct {
	RequestID kernel.UUID
	Command   Command
}

// Key is the deduplication key of the command.
// Fails with *errs.InvalidRequestError when the request id is empty.
func (c IdentifiedCommand) Key() (idempotency.Key, error) {
	if err := c.RequestID.Validate(); err != nil {
		return idempotency.Key{}, errs.NewInvalidRequestErrorWithCause("requestID", err)
	}
	return idempotency.NewKey(c.RequestID, string(c.Command.Type()))
}

// CommandResult is what a command produced. It is stored verbatim in the
// deduplication record and returned unchanged on replays.
type CommandResult struct {
	Command   CommandType `json:"command"`
	Succeeded bool        `json:"succeeded"`
	OrderID   int64       `json:"orderId,omitempty"`
	Status    string      `json:"status,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Draft     *DraftView  `json:"draft,omitempty"`
}

// Completed is the successful result of a command that changed o.
func Completed(commandType CommandType, o *order.Order) CommandResult {
	return CommandResult{
		Command:   commandType,
		Succeeded: true,
		OrderID:   o.ID(),
		Status:    o.Status().String(),
	}
}

// Rejected is the failed result of a command that could not be carried out.
func Rejected(commandType CommandType, reason string) CommandResult {
	return CommandResult{Command: commandType, Reason: reason}
}

// Err returns *errs.HandlerFailureError for a failed result and nil otherwise.
func (r CommandResult) Err() error {
	if r.Succeeded {
		return nil
	}
	return errs.NewHandlerFailureError(string(r.Command), r.Reason)
}

// Handler executes one command type. tx is nil for commands that are not
// deduplicated.
//
// Returned errors are reserved for infrastructure failures; business failures
// are reported through a Rejected result.
type Handler interface {
	Handle(ctx context.Context, tx OrderTx, cmd Command) (CommandResult, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, tx OrderTx, cmd Command) (CommandResult, error)

func (f HandlerFunc) Handle(ctx context.Context, tx OrderTx, cmd Command) (CommandResult, error) {
	return f(ctx, tx, cmd)
}

// TypedHandler is a handler of one concrete command type.
type TypedHandler[C Command] interface {
	Handle(ctx context.Context, tx OrderTx, cmd C) (CommandResult, error)
}

// Bind turns a TypedHandler into a Handler for the dispatch table.
func Bind[C Command](h TypedHandler[C]) Handler {
	return HandlerFunc(func(ctx context.Context, tx OrderTx, cmd Command) (CommandResult, error) {
		typed, ok := cmd.(C)
		if !ok {
			var want C
			return CommandResult{}, fmt.Errorf("handler expects %T, got %T", want, cmd)
		}
		return h.Handle(ctx, tx, typed)
	})
}
