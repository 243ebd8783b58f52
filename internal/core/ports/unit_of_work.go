package ports

import "context"

// UnitOfWork coordinates a transaction across the store repositories.
// The accept-all batch relies on it for all-or-nothing visibility: a reader
// never observes a partially applied batch.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CourierLocationRepository() CourierLocationRepository
}

// UnitOfWorkFactory creates fresh UnitOfWork instances. Each business
// operation gets its own instance, isolated from concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
