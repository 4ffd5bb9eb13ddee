package orderitemrepo

import (
	"context"
	"errors"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderItemRepository implements OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GORM order item repository.
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{
		db: db,
	}
}

// Add saves a new order item to the database.
func (r *GormOrderItemRepository) Add(ctx context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order item to the database. Select("*") forces all
// columns into the UPDATE, including the nil timestamps: clearing expires_at
// on dispatch must reach the database, and struct-based Updates would skip it.
func (r *GormOrderItemRepository) Update(ctx context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderItem", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order item by ID.
func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order item and takes its row lock with
// SELECT ... FOR UPDATE. The lock is held until the surrounding transaction
// commits or rolls back, which serializes concurrent edits, manual dispatches
// and sweeps of the same item. Only meaningful inside a transaction.
func (r *GormOrderItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Remove deletes an order item by ID.
func (r *GormOrderItemRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderItem", id.String())
	}

	return nil
}

// GetByOrderAndStatus retrieves all items of one order in the given status.
func (r *GormOrderItemRepository) GetByOrderAndStatus(
	ctx context.Context,
	orderID kernel.UUID,
	status orderitem.Status,
) ([]*orderitem.OrderItem, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderItemDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ? AND status = ?", orderID.Bytes(), int(status)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetExpiredUnlocked retrieves all pending items whose holding-window timer
// elapsed at or before now. The predicate runs in SQL against the committed
// state; Pending is the only status with a timer armed, so filtering on it is
// exactly the expired-and-unlocked condition.
func (r *GormOrderItemRepository) GetExpiredUnlocked(
	ctx context.Context,
	now time.Time,
) ([]*orderitem.OrderItem, error) {
	var dtos []OrderItemDTO
	err := r.db.WithContext(ctx).
		Order("expires_at").
		Find(&dtos, "status = ? AND expires_at <= ?", int(orderitem.Pending), now).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderItemDTO) ([]*orderitem.OrderItem, error) {
	items := make([]*orderitem.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
