package queries

import (
	"context"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPrepQueueQueryHandler reads the preparation queue from the database.
// Oldest dispatch first, so the kitchen works the queue in the order items
// were fired.
type GetPrepQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetPrepQueueQueryHandler creates a handler for prep queue queries.
func NewGetPrepQueueQueryHandler(db *gorm.DB) GetPrepQueueQueryHandler {
	return GetPrepQueueQueryHandler{db: db}
}

// Handle executes the queue query. Completed items drop off the queue; an
// empty kitchen yields an empty slice.
func (h GetPrepQueueQueryHandler) Handle(
	ctx context.Context,
	query GetPrepQueueQuery,
) ([]GetPrepQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetPrepQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			menu_item_id,
			quantity,
			instructions,
			dispatched_at,
			started_at
		FROM order_items
		WHERE status = ?
		ORDER BY dispatched_at, id
	`, int(orderitem.Dispatched)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			orderID      uuid.UUID
			menuItemID   uuid.UUID
			quantity     int
			instructions string
			dispatchedAt time.Time
			startedAt    *time.Time
		)

		err = rows.Scan(
			&id,
			&orderID,
			&menuItemID,
			&quantity,
			&instructions,
			&dispatchedAt,
			&startedAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		ownerID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		menuID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}

		entries = append(entries, GetPrepQueueQueryResponse{
			ID:           itemID,
			OrderID:      ownerID,
			MenuItemID:   menuID,
			Quantity:     quantity,
			Instructions: instructions,
			DispatchedAt: dispatchedAt,
			StartedAt:    startedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
