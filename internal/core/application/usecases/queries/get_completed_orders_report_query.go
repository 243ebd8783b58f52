package queries

import (
	"errors"
	"time"

	"github.com/j4ckson185/apk/internal/pkg/guard"
)

var (
	ErrGetCompletedOrdersReportQueryIsNotConstructed = errors.New(
		"GetCompletedOrdersReportQuery must be created via NewGetCompletedOrdersReportQuery constructor",
	)
	ErrReportRangeIsInvalid = errors.New("report range is invalid: from must precede to")
)

// GetCompletedOrdersReportQuery aggregates the courier's concluded orders per
// day over the half-open range [from, to).
type GetCompletedOrdersReportQuery struct {
	courierID string
	from      time.Time
	to        time.Time

	guard guard.ConstructorGuard
}

// NewGetCompletedOrdersReportQuery creates a report query over the given
// range.
func NewGetCompletedOrdersReportQuery(courierID string, from, to time.Time) (GetCompletedOrdersReportQuery, error) {
	if courierID == "" {
		return GetCompletedOrdersReportQuery{}, ErrCourierIDIsRequired
	}
	if !from.Before(to) {
		return GetCompletedOrdersReportQuery{}, ErrReportRangeIsInvalid
	}

	return GetCompletedOrdersReportQuery{
		courierID: courierID,
		from:      from,
		to:        to,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompletedOrdersReportQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedOrdersReportQueryIsNotConstructed)
}

// CourierID returns the courier being reported on.
func (q GetCompletedOrdersReportQuery) CourierID() string {
	return q.courierID
}

// From returns the inclusive start of the range.
func (q GetCompletedOrdersReportQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the range.
func (q GetCompletedOrdersReportQuery) To() time.Time {
	return q.to
}

// GetCompletedOrdersReportQueryResponse is one day of concluded deliveries,
// most recent day first.
type GetCompletedOrdersReportQueryResponse struct {
	Day         time.Time
	TotalOrders int
	TotalValue  float64
}
