package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersForUserQueryHandler aggregates order totals in SQL.
type GetOrdersForUserQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersForUserQueryHandler(db *gorm.DB) GetOrdersForUserQueryHandler {
	return GetOrdersForUserQueryHandler{db: db}
}

// Handle returns an empty slice for a buyer without orders.
func (h GetOrdersForUserQueryHandler) Handle(ctx context.Context, query GetOrdersForUserQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.entered_draft,
			o.status,
			COALESCE(SUM(i.unit_price * i.units), 0)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.buyer_id = ?
		GROUP BY o.id, o.entered_draft, o.status
		ORDER BY o.id DESC
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary OrderSummary
			status  int
		)
		if err = rows.Scan(&summary.OrderNumber, &summary.Date, &status, &summary.Total); err != nil {
			return nil, err
		}
		summary.Status = order.Status(status).String()
		summary.Date = summary.Date.UTC()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
