// Package orderrepo persists order aggregates in the assignment store. It
// maps between the domain model and the relational representation, keeping
// order items as a JSONB document since they are never queried individually.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// OrderDTO is the database row for an order aggregate. Timestamps are owned
// by the domain, so GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MarketplaceID string     `gorm:"index"`
	CourierID     string     `gorm:"index"`
	CustomerName  string
	CustomerPhone string
	Address       AddressDTO `gorm:"embedded"`
	Items         []ItemDTO  `gorm:"type:jsonb;serializer:json"`
	PaymentMethod string
	Total         float64
	Note          string
	Status        int        `gorm:"index"`
	CreatedAt     time.Time  `gorm:"index;autoCreateTime:false"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime:false"`
	AcceptedAt    *time.Time
	FinishedAt    *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded delivery address. Coordinates stay nullable:
// an address that was never geocoded keeps NULL latitude and longitude.
type AddressDTO struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
	Latitude     *float64
	Longitude    *float64
}

// ItemDTO is one order line inside the JSONB items column.
type ItemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Note      string  `json:"note,omitempty"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	address := aggregate.Address()

	var lat, lng *float64
	if coords := address.Coordinates(); coords != nil {
		latitude := coords.Latitude()
		longitude := coords.Longitude()
		lat, lng = &latitude, &longitude
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Note:      item.Note(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		MarketplaceID: aggregate.MarketplaceID(),
		CourierID:     aggregate.CourierID(),
		CustomerName:  aggregate.CustomerName(),
		CustomerPhone: aggregate.CustomerPhone(),
		Address: AddressDTO{
			Street:       address.Street(),
			Number:       address.Number(),
			Complement:   address.Complement(),
			Neighborhood: address.Neighborhood(),
			City:         address.City(),
			State:        address.State(),
			ZipCode:      address.ZipCode(),
			Latitude:     lat,
			Longitude:    lng,
		},
		Items:         items,
		PaymentMethod: aggregate.PaymentMethod(),
		Total:         aggregate.Total(),
		Note:          aggregate.Note(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		AcceptedAt:    aggregate.AcceptedAt(),
		FinishedAt:    aggregate.FinishedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var coords *kernel.Location
	if dto.Address.Latitude != nil && dto.Address.Longitude != nil {
		location, locErr := kernel.NewLocation(*dto.Address.Latitude, *dto.Address.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		coords = &location
	}

	address, err := order.NewAddress(
		dto.Address.Street,
		dto.Address.Number,
		dto.Address.Complement,
		dto.Address.Neighborhood,
		dto.Address.City,
		dto.Address.State,
		dto.Address.ZipCode,
		coords,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.Note)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.MarketplaceID,
		dto.CourierID,
		dto.CustomerName,
		dto.CustomerPhone,
		address,
		items,
		dto.PaymentMethod,
		dto.Total,
		dto.Note,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.AcceptedAt,
		dto.FinishedAt,
	)
}
