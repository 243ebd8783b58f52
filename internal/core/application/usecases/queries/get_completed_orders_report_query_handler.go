package queries

import (
	"context"

	"gorm.io/gorm"

	"github.com/j4ckson185/apk/internal/core/domain/model/order"
)

// GetCompletedOrdersReportQueryHandler builds the courier's earnings report
// by aggregating concluded orders per day in the store.
type GetCompletedOrdersReportQueryHandler struct {
	db *gorm.DB
}

// NewGetCompletedOrdersReportQueryHandler creates a handler for the report.
func NewGetCompletedOrdersReportQueryHandler(db *gorm.DB) GetCompletedOrdersReportQueryHandler {
	return GetCompletedOrdersReportQueryHandler{db: db}
}

// Handle executes the aggregation. Days without deliveries simply do not
// appear in the result.
func (h GetCompletedOrdersReportQueryHandler) Handle(
	ctx context.Context,
	query GetCompletedOrdersReportQuery,
) ([]GetCompletedOrdersReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetCompletedOrdersReportQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			date_trunc('day', finished_at) AS day,
			count(*) AS total_orders,
			sum(total) AS total_value
		FROM orders
		WHERE courier_id = ?
		  AND status = ?
		  AND finished_at >= ?
		  AND finished_at < ?
		GROUP BY day
		ORDER BY day DESC
	`, query.CourierID(), order.Concluded, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCompletedOrdersReportQueryResponse

		if err = rows.Scan(&resp.Day, &resp.TotalOrders, &resp.TotalValue); err != nil {
			return nil, err
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
