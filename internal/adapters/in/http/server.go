// Package http exposes the delivery engine over a JSON REST API built on echo.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"candydelivery/internal/core/application/usecases/commands"
	"candydelivery/internal/core/application/usecases/queries"
	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	CreateCouriersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouriersCommand) (commands.BatchResult, error)
	}
	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) (commands.BatchResult, error)
	}
	AssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignOrdersResult, error)
	}
	UpdateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierCommand) (commands.UpdateCourierResult, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (commands.CompleteOrderResult, error)
	}
	GetCourierHandler interface {
		Handle(ctx context.Context, query queries.GetCourierQuery) (queries.GetCourierQueryResponse, error)
	}
	GetActiveOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.GetActiveOrdersQueryResponse, error)
	}
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	CreateCouriers  CreateCouriersHandler
	CreateOrders    CreateOrdersHandler
	AssignOrders    AssignOrdersHandler
	UpdateCourier   UpdateCourierHandler
	CompleteOrder   CompleteOrderHandler
	GetCourier      GetCourierHandler
	GetActiveOrders GetActiveOrdersHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *metrics.Recorder
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a new HTTP server. now stamps assignment and profile update commands.
func NewServer(
	handlers Handlers,
	recorder *metrics.Recorder,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
	now func() time.Time,
) *Server {
	return &Server{
		handlers: handlers,
		metrics:  recorder,
		gatherer: gatherer,
		logger:   logger.With("component", "http"),
		now:      now,
	}
}

// clock returns the current instant at the precision PostgreSQL stores.
func (s *Server) clock() time.Time {
	return storedPrecision(s.now())
}

// storedPrecision converts t to UTC at the microsecond precision of timestamptz.
func storedPrecision(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Echo builds the router with every route registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:id", s.GetCourier)
	e.PATCH("/couriers/:id", s.UpdateCourier)
	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
	e.GET("/orders/active", s.GetActiveOrders)

	return e
}

// CreateCouriers handles POST /couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	var req createCouriersRequest
	if err := decodeStrict(c, &req); err != nil || len(req.Data) == 0 {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{
			ValidationError: map[string][]idResponse{"couriers": {}},
		})
	}

	items := make([]commands.CourierItem, len(req.Data))
	for i, item := range req.Data {
		items[i] = commands.CourierItem{
			ID:           item.CourierID,
			Type:         item.CourierType,
			Regions:      item.Regions,
			WorkingHours: item.WorkingHours,
		}
	}

	cmd, err := commands.NewCreateCouriersCommand(items)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	if result.HasFailures() {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{
			ValidationError: map[string][]idResponse{"couriers": toIDs(result.FailedIDs())},
		})
	}
	return c.JSON(http.StatusCreated, createdCouriersResponse{Couriers: toIDs(result.Created)})
}

// CreateOrders handles POST /orders.
func (s *Server) CreateOrders(c echo.Context) error {
	var req createOrdersRequest
	if err := decodeStrict(c, &req); err != nil || len(req.Data) == 0 {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{
			ValidationError: map[string][]idResponse{"orders": {}},
		})
	}

	items := make([]commands.OrderItem, len(req.Data))
	for i, item := range req.Data {
		items[i] = commands.OrderItem{
			ID:            item.OrderID,
			Weight:        item.Weight,
			Region:        item.Region,
			DeliveryHours: item.DeliveryHours,
		}
	}

	cmd, err := commands.NewCreateOrdersCommand(items)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	if result.HasFailures() {
		return c.JSON(http.StatusBadRequest, validationErrorResponse{
			ValidationError: map[string][]idResponse{"orders": toIDs(result.FailedIDs())},
		})
	}
	return c.JSON(http.StatusCreated, createdOrdersResponse{Orders: toIDs(result.Created)})
}

// GetCourier handles GET /couriers/:id.
func (s *Server) GetCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	info, err := s.handlers.GetCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	resp := courierInfoResponse{
		courierResponse: courierResponse{
			CourierID:    info.CourierID,
			CourierType:  info.CourierType,
			Regions:      info.Regions,
			WorkingHours: info.WorkingHours,
		},
		Earnings: info.Earnings,
	}
	if info.Rating != nil {
		rating := info.Rating.InexactFloat64()
		resp.Rating = &rating
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateCourier handles PATCH /couriers/:id.
func (s *Server) UpdateCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req updateCourierRequest
	if err = decodeStrict(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewUpdateCourierCommand(id, req.CourierType, req.Regions, req.WorkingHours, s.clock())
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.UpdateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.Evicted(len(result.Evicted))
	if result.Settled {
		s.metrics.Settled()
	}
	return c.JSON(http.StatusOK, toCourierResponse(result.Courier))
}

// AssignOrders handles POST /orders/assign.
func (s *Server) AssignOrders(c echo.Context) error {
	var req assignOrdersRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewAssignOrdersCommand(req.CourierID, s.clock())
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.AssignOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	if !result.Repeated {
		s.metrics.Assigned(len(result.OrderIDs))
	}
	return c.JSON(http.StatusOK, assignOrdersResponse{
		Orders:     toIDs(result.OrderIDs),
		AssignTime: result.AssignTime,
	})
}

// CompleteOrder handles POST /orders/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	var req completeOrderRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewCompleteOrderCommand(req.OrderID, req.CourierID, storedPrecision(req.CompleteTime))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	if !result.AlreadyComplete {
		s.metrics.Completed()
	}
	if result.Settled {
		s.metrics.Settled()
	}
	return c.JSON(http.StatusOK, completeOrderResponse{OrderID: result.OrderID})
}

// GetActiveOrders handles GET /orders/active.
func (s *Server) GetActiveOrders(c echo.Context) error {
	orders, err := s.handlers.GetActiveOrders.Handle(c.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]activeOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = activeOrderResponse{
			OrderID:       o.OrderID,
			Weight:        o.Weight.InexactFloat64(),
			Region:        o.Region,
			DeliveryHours: o.DeliveryHours,
			Status:        o.Status,
			CourierID:     o.CourierID,
			AssignTime:    o.AssignTime,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func toCourierResponse(c *courier.Courier) courierResponse {
	return courierResponse{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      kernel.RegionsToInt64(c.Regions()),
		WorkingHours: kernel.FormatTimeIntervals(c.WorkingHours()),
	}
}

// decodeStrict decodes a JSON body and rejects unknown fields and trailing data.
func decodeStrict(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid request body: trailing data")
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}
