package queries

import (
	"errors"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrGetPrepQueueQueryIsNotConstructed = errors.New(
	"GetPrepQueueQuery must be created via NewGetPrepQueueQuery constructor",
)

// GetPrepQueueQuery retrieves the preparation queue: every dispatched item not
// yet completed, in dispatch order. This is what the kitchen display renders.
//
// Example:
//
//	query := NewGetPrepQueueQuery()
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load prep queue: %w", err)
//	}
//
//	fmt.Printf("%d items waiting\n", len(queue))
type GetPrepQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPrepQueueQuery creates a query for the preparation queue.
// This is a parameterless query over all open stations.
func NewGetPrepQueueQuery() GetPrepQueueQuery {
	return GetPrepQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPrepQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetPrepQueueQueryIsNotConstructed)
}

// GetPrepQueueQueryResponse is one entry on the kitchen display. StartedAt is
// nil until a cook picks the item up.
type GetPrepQueueQueryResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	MenuItemID   kernel.UUID
	Quantity     int
	Instructions string
	DispatchedAt time.Time
	StartedAt    *time.Time
}
