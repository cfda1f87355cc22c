// Package http provides the inbound HTTP adapter for the order service.
// It translates HTTP requests into application commands and queries and maps
// domain errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler   commands.PlaceOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler

	// Query handlers
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler,
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		advanceOrderHandler:   advanceOrderHandler,
		getOwnerOrdersHandler: getOwnerOrdersHandler,
	}
}

// RegisterRoutes attaches the order API to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:ownerId", s.GetOwnerOrders)
	api.PATCH("/orders/:orderId/status", s.AdvanceOrderStatus)

	e.GET("/health", s.Health)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderItem is one cart line in an order placement request.
type PlaceOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	OwnerID string           `json:"ownerId"`
	Items   []PlaceOrderItem `json:"items"`
}

// AdvanceOrderStatusRequest is the body of PATCH /api/v1/orders/{orderId}/status.
type AdvanceOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLine is one line of an order in API responses. Name and price are the
// catalog snapshots taken when the order was placed.
type OrderLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

// Order is a complete order in API responses.
type Order struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Lines       []OrderLine `json:"lines"`
	TotalAmount string      `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid owner id: "+req.OwnerID)
	}

	cartLines, err := parseCartLines(req.Items)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewPlaceOrderCommand(ownerID, cartLines)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			// Unknown owner or product is a bad request, not a missing resource.
			return errorJSON(ctx, http.StatusBadRequest, err.Error())
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to place order")
	}

	return ctx.JSON(http.StatusCreated, fromAggregate(placed))
}

// GetOwnerOrders handles GET /api/v1/orders/{ownerId} - lists an owner's orders,
// most recent first.
func (s *Server) GetOwnerOrders(ctx echo.Context) error {
	ownerID, err := kernel.UUIDFromString(ctx.Param("ownerId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid owner id: "+ctx.Param("ownerId"))
	}

	query, err := queries.NewGetOwnerOrdersQuery(ownerID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid owner id: "+err.Error())
	}

	orders, err := s.getOwnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, fromResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrderStatus handles PATCH /api/v1/orders/{orderId}/status - moves an
// order one step along its lifecycle or cancels it.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+ctx.Param("orderId"))
	}

	var req AdvanceOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid status: "+req.Status)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, next)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid transition data: "+err.Error())
	}

	updated, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		switch {
		case errors.As(err, &notFound):
			return errorJSON(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrInvalidStatusTransition):
			return errorJSON(ctx, http.StatusConflict, err.Error())
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to update order status")
		}
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// parseCartLines converts request items into command cart lines, validating
// ids and price strings along the way.
func parseCartLines(items []PlaceOrderItem) ([]commands.CartLine, error) {
	lines := make([]commands.CartLine, 0, len(items))
	for _, item := range items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoneyFromString(item.UnitPrice)
		if err != nil {
			return nil, err
		}

		line, err := commands.NewCartLine(productID, item.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// fromAggregate renders a domain order aggregate as an API order.
func fromAggregate(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLine{
			ProductID:   line.ProductID().String(),
			ProductName: line.ProductName(),
			UnitPrice:   line.UnitPrice().String(),
			Quantity:    line.Quantity(),
			LineTotal:   line.Total().String(),
		})
	}

	return Order{
		ID:          o.ID().String(),
		OwnerID:     o.OwnerID().String(),
		Lines:       lines,
		TotalAmount: o.TotalAmount().String(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

// fromResponse renders a read-side order response as an API order.
func fromResponse(o queries.OrderResponse) Order {
	lines := make([]OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLine{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.String(),
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal.String(),
		})
	}

	return Order{
		ID:          o.ID.String(),
		OwnerID:     o.OwnerID.String(),
		Lines:       lines,
		TotalAmount: o.TotalAmount.String(),
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
