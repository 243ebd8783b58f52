package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/ports"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. Orders originate outside this app
// (the marketplace writes them into the shared store); Add exists to seed
// them locally, for tooling and tests.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Writing the same state twice is harmless,
// which makes crash-recovery replays safe.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return storeError(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, storeError(err)
	}

	return toDomain(dto)
}

// GetActiveByCourier retrieves the courier's orders in the tracked status
// set, newest first.
func (r *GormOrderRepository) GetActiveByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status IN (?, ?, ?)", courierID, order.Sent, order.Accepted, order.Dispatched).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, storeError(err)
	}

	return toDomainSlice(dtos)
}

// GetAllSentByCourier retrieves the courier's orders still awaiting
// acceptance.
func (r *GormOrderRepository) GetAllSentByCourier(ctx context.Context, courierID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status = ?", courierID, order.Sent).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, storeError(err)
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// storeError classifies driver failures as store unavailability so the
// application layer can decide to replay idempotent writes.
func storeError(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
}
