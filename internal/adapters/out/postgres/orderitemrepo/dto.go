// Package orderitemrepo provides data transfer objects and mapping functions
// for order item persistence. It implements the repository pattern for the
// order item aggregate, converting between the domain model and its relational
// representation.
package orderitemrepo

import (
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemDTO represents the database structure for persisting order item
// aggregates. Status and expires_at share a composite index because the expiry
// sweep filters on both columns every second.
type OrderItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid"`
	Quantity     int
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Instructions string
	DelaySeconds int
	Status       int        `gorm:"index:idx_order_items_expiry"`
	ExpiresAt    *time.Time `gorm:"index:idx_order_items_expiry"`
	StartedAt    *time.Time
	DispatchedAt *time.Time
	CompletedAt  *time.Time
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order item aggregate to its database representation.
func fromDomain(item *orderitem.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:           item.ID().Bytes(),
		OrderID:      item.OrderID().Bytes(),
		MenuItemID:   item.MenuItemID().Bytes(),
		Quantity:     item.Quantity(),
		UnitPrice:    item.UnitPrice().Amount(),
		Instructions: item.Instructions(),
		DelaySeconds: item.DelaySeconds(),
		Status:       int(item.Status()),
		ExpiresAt:    item.ExpiresAt(),
		StartedAt:    item.StartedAt(),
		DispatchedAt: item.DispatchedAt(),
		CompletedAt:  item.CompletedAt(),
	}
}

// toDomain converts a database DTO back to an order item aggregate.
// RestoreOrderItem re-validates the cross-field invariants, so a corrupted row
// surfaces as an error here instead of an impossible aggregate downstream.
func toDomain(dto OrderItemDTO) (*orderitem.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewPrice(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return orderitem.RestoreOrderItem(
		id,
		orderID,
		menuItemID,
		dto.Quantity,
		unitPrice,
		dto.Instructions,
		dto.DelaySeconds,
		orderitem.Status(dto.Status),
		dto.ExpiresAt,
		dto.StartedAt,
		dto.DispatchedAt,
		dto.CompletedAt,
	)
}
