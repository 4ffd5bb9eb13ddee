// Package commands contains the business operations that mutate order items.
// Implements the Command pattern for the write side of the CQRS split. Every
// command follows the same shape: constructor validation, transaction
// management through a unit of work, domain transition, persistence.
package commands

import (
	"context"

	"notapos/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// The per-record write lock taken by GetForUpdate lives inside these
// transaction boundaries, which is what makes the dispatch transition safe to
// invoke concurrently from a request and from the sweeper.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderItemRepoFactory provides access to the order item repository
	// within a transaction.
	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	// UoW manages a transaction over the order item record set.
	UoW interface {
		TxManager
		OrderItemRepoFactory
	}

	// UoWFactory creates a fresh unit of work per operation so concurrent
	// operations stay isolated.
	UoWFactory interface {
		Create() UoW
	}
)
