package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/j4ckson185/apk/internal/adapters/in/positioning"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/application/usecases/queries"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
	"github.com/j4ckson185/apk/internal/core/domain/model/order"
	"github.com/j4ckson185/apk/internal/core/domain/services"
	"github.com/j4ckson185/apk/internal/core/ports"
	"github.com/j4ckson185/apk/internal/pkg/errs"
)

// Server exposes the courier workflow over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	acceptOrderHandler     commands.AcceptOrderCommandHandler
	acceptAllOrdersHandler commands.AcceptAllOrdersCommandHandler
	dispatchOrderHandler   commands.DispatchOrderCommandHandler
	concludeOrderHandler   commands.ConcludeOrderCommandHandler
	finishOrderHandler     commands.FinishOrderCommandHandler

	// Query handlers
	getActiveOrdersHandler          queries.GetActiveOrdersQueryHandler
	getCompletedOrdersReportHandler queries.GetCompletedOrdersReportQueryHandler
	getRouteHandler                 queries.GetRouteQueryHandler

	// GPS fixes enter the process here; route planning reads the latest one
	// back when the request carries no explicit origin.
	positions *positioning.Gateway
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	acceptAllOrdersHandler commands.AcceptAllOrdersCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	concludeOrderHandler commands.ConcludeOrderCommandHandler,
	finishOrderHandler commands.FinishOrderCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getCompletedOrdersReportHandler queries.GetCompletedOrdersReportQueryHandler,
	getRouteHandler queries.GetRouteQueryHandler,
	positions *positioning.Gateway,
) *Server {
	return &Server{
		acceptOrderHandler:              acceptOrderHandler,
		acceptAllOrdersHandler:          acceptAllOrdersHandler,
		dispatchOrderHandler:            dispatchOrderHandler,
		concludeOrderHandler:            concludeOrderHandler,
		finishOrderHandler:              finishOrderHandler,
		getActiveOrdersHandler:          getActiveOrdersHandler,
		getCompletedOrdersReportHandler: getCompletedOrdersReportHandler,
		getRouteHandler:                 getRouteHandler,
		positions:                       positions,
	}
}

// RegisterRoutes binds all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/couriers/:courierID/orders", s.GetActiveOrders)
	v1.POST("/couriers/:courierID/orders/accept-all", s.AcceptAllOrders)
	v1.GET("/couriers/:courierID/route", s.GetRoute)
	v1.GET("/couriers/:courierID/reports/completed", s.GetCompletedOrdersReport)
	v1.POST("/couriers/:courierID/location", s.ReportLocation)

	v1.POST("/orders/:orderID/accept", s.AcceptOrder)
	v1.POST("/orders/:orderID/dispatch", s.DispatchOrder)
	v1.POST("/orders/:orderID/conclude", s.ConcludeOrder)
	v1.POST("/orders/:orderID/finish", s.FinishOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetActiveOrders handles GET /api/v1/couriers/:courierID/orders - lists the
// courier's tracked orders, newest first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery(ctx.Param("courierID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:           o.ID.String(),
			CustomerName: o.CustomerName,
			AddressLine:  o.AddressLine,
			Status:       o.Status,
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if handleErr := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptAllOrders handles POST /api/v1/couriers/:courierID/orders/accept-all -
// accepts every incoming order of the courier in one transaction.
func (s *Server) AcceptAllOrders(ctx echo.Context) error {
	cmd, err := commands.NewAcceptAllOrdersCommand(ctx.Param("courierID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	if handleErr := s.acceptAllOrdersHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:orderID/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if handleErr := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConcludeOrder handles POST /api/v1/orders/:orderID/conclude - verifies the
// customer's hand-off code with the marketplace and closes the order.
func (s *Server) ConcludeOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var body ConcludeOrderRequest
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewConcludeOrderCommand(orderID, body.Code)
	if err != nil {
		return badRequest(ctx, err)
	}

	if handleErr := s.concludeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinishOrder handles POST /api/v1/orders/:orderID/finish - closes the order
// without code verification, for hand-offs where no code can be collected.
func (s *Server) FinishOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewFinishOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if handleErr := s.finishOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRoute handles GET /api/v1/couriers/:courierID/route - plans a visiting
// sequence over the courier's active orders. The origin comes from the lat/lon
// query parameters, falling back to the last reported GPS fix.
func (s *Server) GetRoute(ctx echo.Context) error {
	origin, err := s.routeOrigin(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetRouteQuery(ctx.Param("courierID"), origin)
	if err != nil {
		return badRequest(ctx, err)
	}

	route, err := s.getRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrNoEligibleStops) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "No orders eligible for routing",
			})
		}
		return domainError(ctx, err)
	}

	stops := make([]RouteStop, len(route.Stops))
	for i, stop := range route.Stops {
		rs := RouteStop{
			AddressLine: stop.AddressLine,
			Latitude:    stop.Latitude,
			Longitude:   stop.Longitude,
		}
		if stop.OrderID != nil {
			id := stop.OrderID.String()
			rs.OrderID = &id
		}
		stops[i] = rs
	}

	return ctx.JSON(http.StatusOK, Route{
		Stops:             stops,
		DistanceMeters:    route.DistanceMeters,
		DistanceDisplay:   route.DistanceDisplay,
		EstimatedMinutes:  route.EstimatedMinutes,
		EstimatedDisplay:  route.EstimatedDisplay,
		MapsURL:           route.MapsURL,
		SkippedUngeocoded: route.SkippedUngeocoded,
	})
}

// GetCompletedOrdersReport handles GET /api/v1/couriers/:courierID/reports/completed -
// aggregates concluded orders per day inside the [from, to) window.
func (s *Server) GetCompletedOrdersReport(ctx echo.Context) error {
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidError("from"))
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidError("to"))
	}

	query, err := queries.NewGetCompletedOrdersReportQuery(ctx.Param("courierID"), from, to)
	if err != nil {
		return badRequest(ctx, err)
	}

	rows, err := s.getCompletedOrdersReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ReportRow, len(rows))
	for i, row := range rows {
		response[i] = ReportRow{
			Day:         row.Day.Format("2006-01-02"),
			TotalOrders: row.TotalOrders,
			TotalValue:  row.TotalValue,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReportLocation handles POST /api/v1/couriers/:courierID/location - feeds a
// GPS fix into the positioning gateway. Persistence happens asynchronously in
// the flush job, so this endpoint only validates and hands the fix over.
func (s *Server) ReportLocation(ctx echo.Context) error {
	var body ReportLocationRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	location, err := kernel.NewLocation(body.Latitude, body.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	reportedAt := body.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	position, err := kernel.NewPosition(location, body.Accuracy, reportedAt)
	if err != nil {
		return badRequest(ctx, err)
	}

	if reportErr := s.positions.Report(position); reportErr != nil {
		return domainError(ctx, reportErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// routeOrigin resolves the starting point of a route request. Explicit lat/lon
// query parameters win; otherwise the last reported GPS fix is used.
func (s *Server) routeOrigin(ctx echo.Context) (kernel.Location, error) {
	latParam := ctx.QueryParam("lat")
	lonParam := ctx.QueryParam("lon")

	if latParam == "" && lonParam == "" {
		position, err := s.positions.Current(ctx.Request().Context())
		if err != nil {
			return kernel.Location{}, errs.NewValueIsRequiredError(
				"lat/lon query parameters (no position reported yet)")
		}
		return position.Location(), nil
	}

	var lat, lon float64
	if err := echo.QueryParamsBinder(ctx).
		MustFloat64("lat", &lat).
		MustFloat64("lon", &lon).
		BindError(); err != nil {
		return kernel.Location{}, errs.NewValueIsInvalidError("lat/lon")
	}

	return kernel.NewLocation(lat, lon)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError translates use case failures into HTTP statuses. Marketplace
// rejections keep the marketplace's own status and message so the courier
// sees what the marketplace actually said.
func domainError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	var rejected *ports.MarketplaceRejectedError

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidDeliveryCode):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.As(err, &rejected):
		status := rejected.StatusCode
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		return ctx.JSON(status, Error{
			Code:    status,
			Message: rejected.Message,
		})
	case errors.Is(err, ports.ErrRemoteUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Store temporarily unavailable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}
