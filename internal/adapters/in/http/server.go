// Package http is the echo transport of the order service. Every route under
// /api/v1/orders requires the X-Customer-ID header set by the gateway after
// verifying the caller.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Use case handlers, declared where they are consumed.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error)
	}
)

// Server maps HTTP requests onto the order use cases.
type Server struct {
	createOrder       CreateOrderHandler
	updateOrderStatus UpdateOrderStatusHandler
	cancelOrder       CancelOrderHandler
	getOrder          GetOrderHandler
	listOrders        ListOrdersHandler
	logger            *slog.Logger
}

func NewServer(
	createOrder CreateOrderHandler,
	updateOrderStatus UpdateOrderStatusHandler,
	cancelOrder CancelOrderHandler,
	getOrder GetOrderHandler,
	listOrders ListOrdersHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrder:       createOrder,
		updateOrderStatus: updateOrderStatus,
		cancelOrder:       cancelOrder,
		getOrder:          getOrder,
		listOrders:        listOrders,
		logger:            logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customerID := CustomerID(c)
	cmd, err := commands.NewCreateOrderCommand(customerID, req.itemInputs(), req.ShippingAddress.input(), req.PaymentMethod)
	if err != nil {
		return err
	}

	created, err := s.createOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.logger.InfoContext(c.Request().Context(), "Order created",
		"order_id", created.ID().String(), "customer_id", customerID)
	return respond(c, http.StatusCreated, "Order created successfully", orderEnvelope{Order: toOrderResponse(created)})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, ok := orderIDParam(c)
	if !ok {
		return respondOrderNotFound(c)
	}

	query, err := queries.NewGetOrderQuery(id, CustomerID(c))
	if err != nil {
		return err
	}

	found, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if found == nil {
		return respondOrderNotFound(c)
	}

	return respond(c, http.StatusOK, "Order retrieved successfully", orderEnvelope{Order: toOrderResponse(found)})
}

// ListOrders handles GET /api/v1/orders?page&limit&status.
func (s *Server) ListOrders(c echo.Context) error {
	var params ListOrdersParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	var status *order.Status
	if params.Status != "" {
		parsed, err := order.ParseStatus(params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(CustomerID(c), params.Page, params.Limit, status)
	if err != nil {
		return err
	}

	page, err := s.listOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Orders retrieved successfully", toListResponse(page))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, ok := orderIDParam(c)
	if !ok {
		return respondOrderNotFound(c)
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, CustomerID(c), status)
	if err != nil {
		return err
	}

	updated, err := s.updateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if updated == nil {
		return respondOrderNotFound(c)
	}

	s.logger.InfoContext(c.Request().Context(), "Order status updated",
		"order_id", id.String(), "status", updated.Status().String())
	return respond(c, http.StatusOK, "Order status updated successfully", orderEnvelope{Order: toOrderResponse(updated)})
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(c echo.Context) error {
	id, ok := orderIDParam(c)
	if !ok {
		return respondOrderNotFound(c)
	}

	customerID := CustomerID(c)
	cmd, err := commands.NewCancelOrderCommand(id, customerID)
	if err != nil {
		return err
	}

	cancelled, err := s.cancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if cancelled == nil {
		return respondOrderNotFound(c)
	}

	s.logger.InfoContext(c.Request().Context(), "Order cancelled",
		"order_id", id.String(), "customer_id", customerID)
	return respond(c, http.StatusOK, "Order cancelled successfully", orderEnvelope{Order: toOrderResponse(cancelled)})
}

// orderIDParam parses the :id path parameter. An id that is not a UUID
// cannot name any order, so callers answer it like a missing order.
func orderIDParam(c echo.Context) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}
