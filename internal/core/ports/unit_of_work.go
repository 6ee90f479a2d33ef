package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// A status transition is one unit of work: the order update, its audit entry,
// every stock movement, and the outbox message commit together or not at all.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// StatusRepository returns a StatusRepository instance bound to the current transaction.
	StatusRepository() StatusRepository

	// StockRepository returns a StockRepository instance bound to the current transaction.
	StockRepository() StockRepository

	// NotificationOutbox returns a NotificationOutbox instance bound to the current transaction.
	NotificationOutbox() NotificationOutbox
}
