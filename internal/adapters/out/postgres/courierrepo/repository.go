package courierrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
	"github.com/j4ckson185/apk/internal/core/ports"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// GormCourierLocationRepository implements ports.CourierLocationRepository
// using GORM.
type GormCourierLocationRepository struct {
	db *gorm.DB
}

// NewGormCourierLocationRepository creates a new GORM courier location
// repository.
func NewGormCourierLocationRepository(db *gorm.DB) *GormCourierLocationRepository {
	return &GormCourierLocationRepository{db: db}
}

// Upsert writes the report, replacing any existing row for the courier.
func (r *GormCourierLocationRepository) Upsert(ctx context.Context, aggregate *courier.CourierLocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "courier_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}

	return nil
}

// Get returns the courier's last report.
func (r *GormCourierLocationRepository) Get(ctx context.Context, courierID string) (*courier.CourierLocation, error) {
	var dto CourierLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "courier_id = ?", courierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courierLocation", courierID)
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}

	return toDomain(dto)
}
