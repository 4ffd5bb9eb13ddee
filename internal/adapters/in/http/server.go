// Package http exposes the order item lifecycle over a REST API using echo.
// Handlers translate between the wire format and the application layer; all
// business rules live in the domain, so this layer only maps errors to status
// codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/application/usecases/queries"
	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	addItemHandler      commands.AddOrderItemCommandHandler
	editItemHandler     commands.EditOrderItemCommandHandler
	sendItemsHandler    commands.SendOrderItemsCommandHandler
	sendItemNowHandler  commands.SendItemNowCommandHandler
	removeItemHandler   commands.RemoveOrderItemCommandHandler
	startPrepHandler    commands.StartPreparationCommandHandler
	completeItemHandler commands.CompleteOrderItemCommandHandler

	getOrderItemsHandler queries.GetOrderItemsQueryHandler
	getPrepQueueHandler  queries.GetPrepQueueQueryHandler

	defaultDelaySeconds int
}

// NewServer creates an HTTP server with the required command and query
// handlers. defaultDelaySeconds applies to new items whose request omits a
// delay.
func NewServer(
	addItemHandler commands.AddOrderItemCommandHandler,
	editItemHandler commands.EditOrderItemCommandHandler,
	sendItemsHandler commands.SendOrderItemsCommandHandler,
	sendItemNowHandler commands.SendItemNowCommandHandler,
	removeItemHandler commands.RemoveOrderItemCommandHandler,
	startPrepHandler commands.StartPreparationCommandHandler,
	completeItemHandler commands.CompleteOrderItemCommandHandler,
	getOrderItemsHandler queries.GetOrderItemsQueryHandler,
	getPrepQueueHandler queries.GetPrepQueueQueryHandler,
	defaultDelaySeconds int,
) *Server {
	return &Server{
		addItemHandler:       addItemHandler,
		editItemHandler:      editItemHandler,
		sendItemsHandler:     sendItemsHandler,
		sendItemNowHandler:   sendItemNowHandler,
		removeItemHandler:    removeItemHandler,
		startPrepHandler:     startPrepHandler,
		completeItemHandler:  completeItemHandler,
		getOrderItemsHandler: getOrderItemsHandler,
		getPrepQueueHandler:  getPrepQueueHandler,
		defaultDelaySeconds:  defaultDelaySeconds,
	}
}

// RegisterRoutes binds all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:orderId/items", s.AddOrderItem)
	api.GET("/orders/:orderId/items", s.GetOrderItems)
	api.POST("/orders/:orderId/send", s.SendOrderItems)

	api.PATCH("/items/:itemId", s.EditOrderItem)
	api.DELETE("/items/:itemId", s.RemoveOrderItem)
	api.POST("/items/:itemId/send-now", s.SendItemNow)
	api.POST("/items/:itemId/start", s.StartPreparation)
	api.POST("/items/:itemId/complete", s.CompleteOrderItem)

	api.GET("/prep-queue", s.GetPrepQueue)
}

// ErrorResponse is the wire format of every error this API returns.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItemRequest is the body for creating an item on an order.
type NewOrderItemRequest struct {
	MenuItemID   string `json:"menuItemId"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	Instructions string `json:"instructions"`
	DelaySeconds *int   `json:"delaySeconds"`
}

// EditOrderItemRequest is the body for a partial item update. Absent fields
// are left unchanged.
type EditOrderItemRequest struct {
	Quantity     *int    `json:"quantity"`
	Instructions *string `json:"instructions"`
	DelaySeconds *int    `json:"delaySeconds"`
}

// OrderItemResponse is the wire representation of an order item.
type OrderItemResponse struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"orderId"`
	MenuItemID   string     `json:"menuItemId"`
	Quantity     int        `json:"quantity"`
	UnitPrice    string     `json:"unitPrice"`
	Instructions string     `json:"instructions,omitempty"`
	DelaySeconds int        `json:"delaySeconds"`
	Status       string     `json:"status"`
	Locked       bool       `json:"locked"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// PrepQueueEntryResponse is one entry on the kitchen display feed.
type PrepQueueEntryResponse struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"orderId"`
	MenuItemID   string     `json:"menuItemId"`
	Quantity     int        `json:"quantity"`
	Instructions string     `json:"instructions,omitempty"`
	DispatchedAt time.Time  `json:"dispatchedAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
}

// AddOrderItem handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req NewOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return badRequest(ctx, "Invalid menu item id")
	}

	unitPrice, err := kernel.PriceFromString(req.UnitPrice)
	if err != nil {
		return badRequest(ctx, "Invalid unit price: "+err.Error())
	}

	delaySeconds := s.defaultDelaySeconds
	if req.DelaySeconds != nil {
		delaySeconds = *req.DelaySeconds
	}

	cmd, err := commands.NewAddOrderItemCommand(
		kernel.NewUUID(), orderID, menuItemID,
		req.Quantity, unitPrice, req.Instructions, delaySeconds,
	)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	item, err := s.addItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toItemResponse(item))
}

// GetOrderItems handles GET /api/v1/orders/:orderId/items.
func (s *Server) GetOrderItems(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderItemsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	items, err := s.getOrderItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve order items")
	}

	response := make([]OrderItemResponse, len(items))
	for i, item := range items {
		response[i] = OrderItemResponse{
			ID:           item.ID.String(),
			OrderID:      orderID.String(),
			MenuItemID:   item.MenuItemID.String(),
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.String(),
			Instructions: item.Instructions,
			DelaySeconds: item.DelaySeconds,
			Status:       item.Status.String(),
			Locked:       item.Locked,
			ExpiresAt:    item.ExpiresAt,
			StartedAt:    item.StartedAt,
			DispatchedAt: item.DispatchedAt,
			CompletedAt:  item.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SendOrderItems handles POST /api/v1/orders/:orderId/send.
func (s *Server) SendOrderItems(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewSendOrderItemsCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sent, err := s.sendItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]OrderItemResponse, len(sent))
	for i, item := range sent {
		response[i] = toItemResponse(item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// EditOrderItem handles PATCH /api/v1/items/:itemId.
func (s *Server) EditOrderItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req EditOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEditOrderItemCommand(itemID, orderitem.Changes{
		Quantity:     req.Quantity,
		Instructions: req.Instructions,
		DelaySeconds: req.DelaySeconds,
	})
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	item, err := s.editItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemResponse(item))
}

// RemoveOrderItem handles DELETE /api/v1/items/:itemId.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewRemoveOrderItemCommand(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	if err = s.removeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SendItemNow handles POST /api/v1/items/:itemId/send-now.
func (s *Server) SendItemNow(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewSendItemNowCommand(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	item, err := s.sendItemNowHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemResponse(item))
}

// StartPreparation handles POST /api/v1/items/:itemId/start.
func (s *Server) StartPreparation(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewStartPreparationCommand(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	item, err := s.startPrepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemResponse(item))
}

// CompleteOrderItem handles POST /api/v1/items/:itemId/complete.
func (s *Server) CompleteOrderItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewCompleteOrderItemCommand(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	item, err := s.completeItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemResponse(item))
}

// GetPrepQueue handles GET /api/v1/prep-queue.
func (s *Server) GetPrepQueue(ctx echo.Context) error {
	query := queries.NewGetPrepQueueQuery()

	entries, err := s.getPrepQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve prep queue")
	}

	response := make([]PrepQueueEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = PrepQueueEntryResponse{
			ID:           entry.ID.String(),
			OrderID:      entry.OrderID.String(),
			MenuItemID:   entry.MenuItemID.String(),
			Quantity:     entry.Quantity,
			Instructions: entry.Instructions,
			DispatchedAt: entry.DispatchedAt,
			StartedAt:    entry.StartedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toItemResponse(item *orderitem.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:           item.ID().String(),
		OrderID:      item.OrderID().String(),
		MenuItemID:   item.MenuItemID().String(),
		Quantity:     item.Quantity(),
		UnitPrice:    item.UnitPrice().String(),
		Instructions: item.Instructions(),
		DelaySeconds: item.DelaySeconds(),
		Status:       item.Status().String(),
		Locked:       item.IsLocked(),
		ExpiresAt:    item.ExpiresAt(),
		StartedAt:    item.StartedAt(),
		DispatchedAt: item.DispatchedAt(),
		CompletedAt:  item.CompletedAt(),
	}
}

// writeDomainError maps domain errors onto HTTP status codes:
//
//	locked item            -> 409 Conflict
//	missing record         -> 404 Not Found
//	illegal transition     -> 422 Unprocessable Entity
//	invalid value          -> 400 Bad Request
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, orderitem.ErrItemIsLocked):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Item is locked: it has already been sent to the preparation station",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Item not found",
		})
	case errors.Is(err, orderitem.ErrInvalidStatusTransition):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
