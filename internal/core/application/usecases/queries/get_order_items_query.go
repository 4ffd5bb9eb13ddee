// Package queries contains the read side of the CQRS split. Query handlers
// bypass the aggregate and read projections straight from the database, so
// screens refresh without touching domain locks.
package queries

import (
	"errors"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/pkg/guard"
)

var ErrGetOrderItemsQueryIsNotConstructed = errors.New(
	"GetOrderItemsQuery must be created via NewGetOrderItemsQuery constructor",
)

// GetOrderItemsQuery retrieves the full ticket for one order: every line item
// with its lifecycle state and timer deadline, for rendering the order screen.
//
// Example:
//
//	query, err := NewGetOrderItemsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load ticket: %w", err)
//	}
//
//	for _, item := range items {
//	    fmt.Printf("%dx %s [%s]\n", item.Quantity, item.MenuItemID, item.Status)
//	}
type GetOrderItemsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderItemsQuery creates a query for one order's items.
func NewGetOrderItemsQuery(orderID kernel.UUID) (GetOrderItemsQuery, error) {
	query := GetOrderItemsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderItemsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemsQueryIsNotConstructed)
}

// OrderID returns the order whose ticket is requested.
func (q GetOrderItemsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderItemsQuery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.orderID = id
	return nil
}

// GetOrderItemsQueryResponse is one ticket line. Locked mirrors the status so
// the UI can grey out edit controls without knowing the status semantics.
type GetOrderItemsQueryResponse struct {
	ID           kernel.UUID
	MenuItemID   kernel.UUID
	Quantity     int
	UnitPrice    kernel.Price
	Instructions string
	DelaySeconds int
	Status       orderitem.Status
	Locked       bool
	ExpiresAt    *time.Time
	StartedAt    *time.Time
	DispatchedAt *time.Time
	CompletedAt  *time.Time
}
