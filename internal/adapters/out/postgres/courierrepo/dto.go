// Package courierrepo persists the single last-reported position per courier.
package courierrepo

import (
	"time"

	"github.com/j4ckson185/apk/internal/core/domain/model/courier"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
)

// CourierLocationDTO is the database row for a courier's last position.
// One row per courier; reports overwrite in place.
type CourierLocationDTO struct {
	CourierID  string    `gorm:"primaryKey"`
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time `gorm:"autoUpdateTime:false"`
	Active     bool
}

// TableName overrides GORM's default naming to use "courier_locations".
func (CourierLocationDTO) TableName() string {
	return "courier_locations"
}

func fromDomain(aggregate *courier.CourierLocation) CourierLocationDTO {
	return CourierLocationDTO{
		CourierID:  aggregate.CourierID(),
		Latitude:   aggregate.Location().Latitude(),
		Longitude:  aggregate.Location().Longitude(),
		ReportedAt: aggregate.ReportedAt(),
		Active:     aggregate.Active(),
	}
}

func toDomain(dto CourierLocationDTO) (*courier.CourierLocation, error) {
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourierLocation(dto.CourierID, location, dto.ReportedAt, dto.Active)
}
