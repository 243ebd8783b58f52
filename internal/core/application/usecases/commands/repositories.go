// Package commands contains the write-side operations of the courier app:
// the order lifecycle transitions and position reporting. Every command is a
// guarded value object, every handler runs its mutation inside a unit of
// work and notifies the change feed after commit.
package commands

import (
	"context"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers depend on the narrowest surface they actually use; the store's
// ports.UnitOfWork satisfies all of them.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierLocationRepoFactory provides access to the courier location
	// repository within a transaction.
	CourierLocationRepoFactory interface {
		CourierLocationRepository() ports.CourierLocationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierLocationUoW manages transactions for position reporting.
	CourierLocationUoW interface {
		TxManager
		CourierLocationRepoFactory
	}

	// CourierLocationUoWFactory creates courier location unit of work
	// instances.
	CourierLocationUoWFactory interface {
		Create() CourierLocationUoW
	}
)
