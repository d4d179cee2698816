package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// CreateOrderDraftCommandHandler prices a basket without persisting anything.
type CreateOrderDraftCommandHandler struct{}

func NewCreateOrderDraftCommandHandler() CreateOrderDraftCommandHandler {
	return CreateOrderDraftCommandHandler{}
}

// Handle ignores tx: drafts are never stored.
func (h *CreateOrderDraftCommandHandler) Handle(_ context.Context, _ OrderTx, cmd CreateOrderDraftCommand) (CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return CommandResult{}, err
	}

	preview, err := order.NewPreview(cmd.BuyerID(), cmd.Items())
	if err != nil {
		return Rejected(CreateOrderDraft, err.Error()), nil
	}

	view := &DraftView{
		BuyerID: preview.BuyerID(),
		Status:  preview.Status().String(),
		Total:   preview.Total(),
	}
	for _, item := range preview.Items() {
		view.Items = append(view.Items, DraftItemView{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice(),
			Units:       item.Units(),
		})
	}

	return CommandResult{Command: CreateOrderDraft, Succeeded: true, Status: view.Status, Draft: view}, nil
}
