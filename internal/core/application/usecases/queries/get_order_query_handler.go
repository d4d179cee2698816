package queries

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its lines with plain SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		view   GetOrderQueryResponse
		status int
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			entered_draft,
			status,
			description,
			buyer_id,
			address_street,
			address_city,
			address_state,
			address_country,
			address_zip_code
		FROM orders
		WHERE id = ?
	`, query.OrderNumber()).Row()
	if err := row.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	err := row.Scan(
		&view.OrderNumber,
		&view.Date,
		&status,
		&view.Description,
		&view.BuyerID,
		&view.Street,
		&view.City,
		&view.State,
		&view.Country,
		&view.ZipCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", strconv.FormatInt(query.OrderNumber(), 10))
		}
		return GetOrderQueryResponse{}, err
	}
	view.Status = order.Status(status).String()
	view.Date = view.Date.UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			units,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderNumber()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	view.Items = make([]OrderItemView, 0)
	view.Total = decimal.Zero
	for rows.Next() {
		var item OrderItemView
		if err = rows.Scan(&item.ProductID, &item.ProductName, &item.Units, &item.UnitPrice); err != nil {
			return GetOrderQueryResponse{}, err
		}
		view.Items = append(view.Items, item)
		view.Total = view.Total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Units))))
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return view, nil
}
