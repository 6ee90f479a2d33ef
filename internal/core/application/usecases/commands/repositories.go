// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"backoffice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StatusRepoFactory provides access to the status registry within a transaction.
	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	// StockRepoFactory provides access to the inventory ledger within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OutboxFactory provides access to the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// UoW manages the full transition transaction: the order aggregate, the
	// status registry it is validated against, the inventory ledger the
	// effects move, and the outbox the notification is staged in. The same
	// surface serves order creation, which reads the registry for the
	// default status and fires its entry effects.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   stockRepo := uow.StockRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StatusRepoFactory
		StockRepoFactory
		OutboxFactory
	}

	// UoWFactory creates new unit of work instances for transition and
	// order-creation operations.
	UoWFactory interface {
		Create() UoW
	}
)
