package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

// Add inserts the order with its lines and assigns the generated id.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignID(dto.ID)
}

// Update saves the status, description and transition timestamps. Lines never change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                      dto.Status,
		"description":                 dto.Description,
		"entered_pending":             dto.Entered.Pending,
		"entered_awaiting_validation": dto.Entered.AwaitingValidation,
		"entered_stock_confirmed":     dto.Entered.StockConfirmed,
		"entered_paid":                dto.Entered.Paid,
		"entered_shipped":             dto.Entered.Shipped,
		"entered_cancelled":           dto.Entered.Cancelled,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(dto.ID, 10))
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and holds a row lock on it until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetPendingSubmittedBefore retrieves Pending orders submitted before the given instant.
func (r *GormOrderRepository) GetPendingSubmittedBefore(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND entered_pending < ?", int(order.Pending), before).
		Order("entered_pending").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if err = r.loadItems(ctx, dtos); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) get(db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	dtos := []OrderDTO{dto}
	if err := r.loadItems(db.Statement.Context, dtos); err != nil {
		return nil, err
	}

	return toDomain(dtos[0])
}

// loadItems fills the lines of dtos with a single query.
func (r *GormOrderRepository) loadItems(ctx context.Context, dtos []OrderDTO) error {
	if len(dtos) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(dtos))
	index := make(map[int64]int, len(dtos))
	for i, dto := range dtos {
		ids = append(ids, dto.ID)
		index[dto.ID] = i
	}

	var items []OrderItemDTO
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	for _, item := range items {
		i := index[item.OrderID]
		dtos[i].Items = append(dtos[i].Items, item)
	}
	return nil
}
