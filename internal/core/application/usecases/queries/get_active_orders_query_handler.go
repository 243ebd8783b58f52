package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler reads the courier's tracked orders straight
// from the store, newest first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order listing.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the listing. Concluded orders never appear here.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			street,
			number,
			neighborhood,
			status,
			total,
			created_at
		FROM orders
		WHERE courier_id = ? AND status IN (?, ?, ?)
		ORDER BY created_at DESC
	`, query.CourierID(), order.Sent, order.Accepted, order.Dispatched).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var street, number, neighborhood string
		var status int

		err = rows.Scan(
			&id,
			&resp.CustomerName,
			&street,
			&number,
			&neighborhood,
			&status,
			&resp.Total,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status).String()
		resp.AddressLine = addressLine(street, number, neighborhood)

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func addressLine(street, number, neighborhood string) string {
	line := street
	if number != "" {
		line = fmt.Sprintf("%s, %s", line, number)
	}
	if neighborhood != "" {
		line = fmt.Sprintf("%s - %s", line, neighborhood)
	}
	return line
}
