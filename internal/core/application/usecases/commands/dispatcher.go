package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/dedup"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecordStore runs work at most once per idempotency key.
type RecordStore interface {
	RecordIfAbsent(ctx context.Context, key idempotency.Key, compute dedup.Compute) (idempotency.Result, bool, error)
}

// Route is an entry of the dispatch table.
type Route struct {
	Handler Handler

	// Deduplicated commands require a request id and run inside the record
	// store's transaction. Other commands run once per call with a nil tx.
	Deduplicated bool
}

// Dispatcher routes commands to their handler through an explicit table and
// guarantees that a deduplicated command runs at most once per request id.
//
// Example:
//
//	dispatcher := commands.NewDispatcher(store, logger, map[commands.CommandType]commands.Route{
//	    commands.CancelOrder: {Handler: commands.Bind[commands.CancelOrderCommand](cancelHandler), Deduplicated: true},
//	})
//	result, err := dispatcher.Dispatch(ctx, cmd, requestID)
//	if err != nil {
//	    // invalid request or storage failure; safe to retry with the same request id
//	}
//	if err := result.Err(); err != nil {
//	    // the command was rejected; retries return the same rejection
//	}
type Dispatcher struct {
	store  RecordStore
	routes map[CommandType]Route
	logger *slog.Logger
	tracer trace.Tracer
}

func NewDispatcher(store RecordStore, logger *slog.Logger, routes map[CommandType]Route) *Dispatcher {
	return &Dispatcher{
		store:  store,
		routes: routes,
		logger: logger.With("component", "dispatcher"),
		tracer: otel.Tracer("ordering/commands"),
	}
}

// Dispatch runs cmd identified by requestID.
//
// Returns:
//   - *errs.InvalidRequestError for an invalid command or, on a deduplicated
//     command, a nil request id; nothing is executed or recorded
//   - the handler's CommandResult, possibly replayed from an earlier execution
//   - a storage error when the outcome could not be recorded
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, requestID kernel.UUID) (CommandResult, error) {
	if cmd == nil {
		return CommandResult{}, errs.NewInvalidRequestError("command")
	}
	if err := cmd.Validate(); err != nil {
		return CommandResult{}, errs.NewInvalidRequestErrorWithCause("command", err)
	}

	route, ok := d.routes[cmd.Type()]
	if !ok {
		return CommandResult{}, fmt.Errorf("no handler registered for %s", cmd.Type())
	}

	ctx, span := d.tracer.Start(ctx, "commands.Dispatch", trace.WithAttributes(
		attribute.String("command.type", string(cmd.Type())),
		attribute.String("request.id", requestID.String()),
	))
	defer span.End()

	d.logger.InfoContext(ctx, "Sending command",
		"command_type", cmd.Type(),
		"request_id", requestID.String(),
		"command", cmd,
	)

	var (
		result CommandResult
		err    error
	)
	if route.Deduplicated {
		result, err = d.dispatchOnce(ctx, IdentifiedCommand{RequestID: requestID, Command: cmd}, route.Handler)
	} else {
		result, err = route.Handler.Handle(ctx, nil, cmd)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return CommandResult{}, err
	}
	if !result.Succeeded {
		span.SetStatus(codes.Error, result.Reason)
		d.logger.WarnContext(ctx, "Command rejected",
			"command_type", cmd.Type(),
			"request_id", requestID.String(),
			"reason", result.Reason,
		)
	}
	return result, nil
}

func (d *Dispatcher) dispatchOnce(ctx context.Context, ic IdentifiedCommand, handler Handler) (CommandResult, error) {
	key, err := ic.Key()
	if err != nil {
		return CommandResult{}, err
	}

	stored, replayed, err := d.store.RecordIfAbsent(ctx, key,
		func(ctx context.Context, uow ports.UnitOfWork) (idempotency.Result, error) {
			result, err := handler.Handle(ctx, uow, ic.Command)
			if err != nil {
				return idempotency.Result{}, err
			}
			return encodeResult(result)
		})
	if err != nil {
		return CommandResult{}, err
	}

	if replayed {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("command.replayed", true))
		d.logger.InfoContext(ctx, "Command already handled, returning stored result",
			"command_type", ic.Command.Type(),
			"request_id", ic.RequestID.String(),
		)
	}
	return decodeResult(ic.Command.Type(), stored)
}

func encodeResult(r CommandResult) (idempotency.Result, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return idempotency.Result{}, fmt.Errorf("failed to encode %s result: %w", r.Command, err)
	}
	if r.Succeeded {
		return idempotency.Success(payload), nil
	}
	return idempotency.FailureWithPayload(r.Reason, payload), nil
}

func decodeResult(commandType CommandType, stored idempotency.Result) (CommandResult, error) {
	payload := stored.Payload()
	if len(payload) == 0 {
		return CommandResult{Command: commandType, Succeeded: stored.Succeeded(), Reason: stored.Reason()}, nil
	}

	var r CommandResult
	if err := json.Unmarshal(payload, &r); err != nil {
		return CommandResult{}, fmt.Errorf("failed to decode stored %s result: %w", commandType, err)
	}
	return r, nil
}
