package tradegecko

import (
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

type orderDTO struct {
	ID                int64            `json:"id,omitempty"`
	OrderNumber       string           `json:"order_number,omitempty"`
	CompanyID         int64            `json:"company_id,omitempty"`
	Status            string           `json:"status,omitempty"`
	PaymentStatus     string           `json:"payment_status,omitempty"`
	FulfillmentStatus string           `json:"fulfillment_status,omitempty"`
	IssuedAt          string           `json:"issued_at,omitempty"`
	Total             *decimal.Decimal `json:"total,omitempty"`
	LineItems         []lineItemDTO    `json:"order_line_items,omitempty"`
}

type lineItemDTO struct {
	VariantID int64           `json:"variant_id"`
	Label     string          `json:"label,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderEnvelope struct {
	Order orderDTO `json:"order"`
}

type ordersEnvelope struct {
	Orders []orderDTO `json:"orders"`
}

type statusDTO struct {
	PaymentStatus     string `json:"payment_status,omitempty"`
	FulfillmentStatus string `json:"fulfillment_status,omitempty"`
}

type statusEnvelope struct {
	Order statusDTO `json:"order"`
}

func fromPort(o ports.TradeGeckoOrder) orderDTO {
	dto := orderDTO{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CompanyID:         o.CompanyID,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		IssuedAt:          o.IssuedAt,
	}
	if !o.Total.IsZero() {
		total := o.Total
		dto.Total = &total
	}
	for _, item := range o.LineItems {
		dto.LineItems = append(dto.LineItems, lineItemDTO{
			VariantID: item.VariantID,
			Label:     item.Label,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return dto
}

func (dto orderDTO) toPort() ports.TradeGeckoOrder {
	o := ports.TradeGeckoOrder{
		ID:                dto.ID,
		OrderNumber:       dto.OrderNumber,
		CompanyID:         dto.CompanyID,
		Status:            dto.Status,
		PaymentStatus:     dto.PaymentStatus,
		FulfillmentStatus: dto.FulfillmentStatus,
		IssuedAt:          dto.IssuedAt,
	}
	if dto.Total != nil {
		o.Total = *dto.Total
	}
	for _, item := range dto.LineItems {
		o.LineItems = append(o.LineItems, ports.TradeGeckoLineItem{
			VariantID: item.VariantID,
			Label:     item.Label,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return o
}
