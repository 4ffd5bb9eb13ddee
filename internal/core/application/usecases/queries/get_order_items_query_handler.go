package queries

import (
	"context"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderItemsQueryHandler reads one order's ticket from the database.
// Results are sorted by item ID so repeated refreshes render the lines in a
// stable order.
type GetOrderItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderItemsQueryHandler creates a handler for ticket queries.
func NewGetOrderItemsQueryHandler(db *gorm.DB) GetOrderItemsQueryHandler {
	return GetOrderItemsQueryHandler{db: db}
}

// Handle executes the ticket query for the order named by the query.
// An order with no items yields an empty slice, not an error.
func (h GetOrderItemsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderItemsQuery,
) ([]GetOrderItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]GetOrderItemsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			menu_item_id,
			quantity,
			unit_price,
			instructions,
			delay_seconds,
			status,
			expires_at,
			started_at,
			dispatched_at,
			completed_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			menuItemID   uuid.UUID
			quantity     int
			unitPrice    decimal.Decimal
			instructions string
			delaySeconds int
			status       int
			expiresAt    *time.Time
			startedAt    *time.Time
			dispatchedAt *time.Time
			completedAt  *time.Time
		)

		err = rows.Scan(
			&id,
			&menuItemID,
			&quantity,
			&unitPrice,
			&instructions,
			&delaySeconds,
			&status,
			&expiresAt,
			&startedAt,
			&dispatchedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		menuID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}

		price, priceErr := kernel.NewPrice(unitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		itemStatus := orderitem.Status(status)

		items = append(items, GetOrderItemsQueryResponse{
			ID:           itemID,
			MenuItemID:   menuID,
			Quantity:     quantity,
			UnitPrice:    price,
			Instructions: instructions,
			DelaySeconds: delaySeconds,
			Status:       itemStatus,
			Locked:       itemStatus.IsLocked(),
			ExpiresAt:    expiresAt,
			StartedAt:    startedAt,
			DispatchedAt: dispatchedAt,
			CompletedAt:  completedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
