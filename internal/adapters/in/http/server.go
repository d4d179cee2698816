package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const requestIDHeader = "x-requestid"

type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd commands.Command, requestID kernel.UUID) (commands.CommandResult, error)
}

type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type OrdersForUserReader interface {
	Handle(ctx context.Context, query queries.GetOrdersForUserQuery) ([]queries.OrderSummary, error)
}

type CardTypesReader interface {
	Handle(ctx context.Context, query queries.GetCardTypesQuery) ([]queries.CardType, error)
}

// Server maps the orders API onto the command dispatcher and query handlers.
type Server struct {
	dispatcher CommandDispatcher

	getOrderHandler     OrderReader
	getOrdersHandler    OrdersForUserReader
	getCardTypesHandler CardTypesReader

	tradeGecko ports.TradeGeckoClient

	logger *slog.Logger
}

func NewServer(
	dispatcher CommandDispatcher,
	getOrderHandler OrderReader,
	getOrdersHandler OrdersForUserReader,
	getCardTypesHandler CardTypesReader,
	tradeGecko ports.TradeGeckoClient,
	logger *slog.Logger,
) *Server {
	return &Server{
		dispatcher:          dispatcher,
		getOrderHandler:     getOrderHandler,
		getOrdersHandler:    getOrdersHandler,
		getCardTypesHandler: getCardTypesHandler,
		tradeGecko:          tradeGecko,
		logger:              logger.With("component", "http"),
	}
}

// Register adds every route to e. Command routes are validated against doc.
func (s *Server) Register(e *echo.Echo, doc *openapi3.T) error {
	validate, err := NewRequestValidator(doc)
	if err != nil {
		return err
	}

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/orders")
	api.POST("", s.CreateOrder, validate)
	api.GET("", s.GetOrdersForUser)
	api.PUT("/cancel", s.CancelOrder, validate)
	api.PUT("/ship", s.ShipOrder, validate)
	api.POST("/draft", s.CreateOrderDraft, validate)
	api.GET("/cardtypes", s.GetCardTypes)
	api.GET("/:orderId", s.GetOrder)

	erp := api.Group("/tradegecko/orders")
	erp.GET("", s.GetTradeGeckoOrders, validate)
	erp.POST("", s.CreateTradeGeckoOrder, validate)
	erp.GET("/:tradeGeckoOrderId", s.GetTradeGeckoOrder)
	erp.PUT("/:tradeGeckoOrderId/status", s.UpdateTradeGeckoOrderStatus, validate)

	return nil
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	requestID, err := requestIDFrom(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(body.input())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	return s.dispatch(ctx, cmd, requestID)
}

// CancelOrder handles PUT /api/orders/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	requestID, err := requestIDFrom(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body OrderNumberRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(body.OrderNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.dispatch(ctx, cmd, requestID)
}

// ShipOrder handles PUT /api/orders/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	requestID, err := requestIDFrom(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body OrderNumberRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewShipOrderCommand(body.OrderNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.dispatch(ctx, cmd, requestID)
}

// CreateOrderDraft handles POST /api/orders/draft. Drafts carry no request id.
func (s *Server) CreateOrderDraft(ctx echo.Context) error {
	var body CreateOrderDraftRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderDraftCommand(body.BuyerID, orderItems(body.Items))
	if err != nil {
		return badRequest(ctx, "Invalid draft data: "+err.Error())
	}

	result, err := s.dispatcher.Dispatch(ctx.Request().Context(), cmd, kernel.UUID{})
	if err != nil {
		return s.dispatchFailed(ctx, cmd, err)
	}
	if !result.Succeeded {
		return badRequest(ctx, result.Reason)
	}

	return ctx.JSON(http.StatusOK, result.Draft)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	var orderID int64
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "orderId", runtime.ParamLocationPath, ctx.Param("orderId"), &orderID,
	); err != nil {
		return badRequest(ctx, "Invalid format for parameter orderId")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to read order", "order_id", orderID, "error", err)
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, view)
}

// GetOrdersForUser handles GET /api/orders?userId=.
func (s *Server) GetOrdersForUser(ctx echo.Context) error {
	var userID string
	if err := runtime.BindQueryParameter("form", true, true, "userId", ctx.QueryParams(), &userID); err != nil {
		return badRequest(ctx, "Invalid format for parameter userId")
	}

	query, err := queries.NewGetOrdersForUserQuery(userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to list orders", "user_id", userID, "error", err)
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCardTypes handles GET /api/orders/cardtypes.
func (s *Server) GetCardTypes(ctx echo.Context) error {
	cardTypes, err := s.getCardTypesHandler.Handle(ctx.Request().Context(), queries.NewGetCardTypesQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to list card types", "error", err)
		return internalError(ctx, "Failed to retrieve card types")
	}

	return ctx.JSON(http.StatusOK, cardTypes)
}

// GetTradeGeckoOrders handles GET /api/orders/tradegecko/orders.
func (s *Server) GetTradeGeckoOrders(ctx echo.Context) error {
	var page ports.TradeGeckoPage
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &page.Limit); err != nil {
		return badRequest(ctx, "Invalid format for parameter limit")
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &page.Page); err != nil {
		return badRequest(ctx, "Invalid format for parameter page")
	}

	orders, err := s.tradeGecko.ListOrders(ctx.Request().Context(), page)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to list TradeGecko orders", "error", err)
		return internalError(ctx, "Failed to retrieve TradeGecko orders")
	}

	out := make([]TradeGeckoOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, tradeGeckoOrderFrom(o))
	}
	return ctx.JSON(http.StatusOK, out)
}

// GetTradeGeckoOrder handles GET /api/orders/tradegecko/orders/{id}.
func (s *Server) GetTradeGeckoOrder(ctx echo.Context) error {
	id, err := tradeGeckoOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	order, err := s.tradeGecko.GetOrder(ctx.Request().Context(), id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to read TradeGecko order", "tradegecko_order_id", id, "error", err)
		return internalError(ctx, "Failed to retrieve TradeGecko order")
	}

	return ctx.JSON(http.StatusOK, tradeGeckoOrderFrom(order))
}

// CreateTradeGeckoOrder handles POST /api/orders/tradegecko/orders.
func (s *Server) CreateTradeGeckoOrder(ctx echo.Context) error {
	var body TradeGeckoOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	created, err := s.tradeGecko.CreateOrder(ctx.Request().Context(), body.toPort())
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "TradeGecko refused order", "company_id", body.CompanyID, "error", err)
		return badRequest(ctx, "Failed to create order in TradeGecko")
	}

	return ctx.JSON(http.StatusOK, tradeGeckoOrderFrom(created))
}

// UpdateTradeGeckoOrderStatus handles PUT /api/orders/tradegecko/orders/{id}/status.
func (s *Server) UpdateTradeGeckoOrderStatus(ctx echo.Context) error {
	id, err := tradeGeckoOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var paymentStatus, fulfillmentStatus string
	if err = runtime.BindQueryParameter("form", true, true, "financialStatus", ctx.QueryParams(), &paymentStatus); err != nil {
		return badRequest(ctx, "Invalid format for parameter financialStatus")
	}
	if err = runtime.BindQueryParameter("form", true, true, "fulfillmentStatus", ctx.QueryParams(), &fulfillmentStatus); err != nil {
		return badRequest(ctx, "Invalid format for parameter fulfillmentStatus")
	}

	err = s.tradeGecko.UpdateOrderStatus(ctx.Request().Context(), id, paymentStatus, fulfillmentStatus)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to update TradeGecko order", "tradegecko_order_id", id, "error", err)
		return internalError(ctx, "Failed to update TradeGecko order")
	}

	return ctx.JSON(http.StatusOK, true)
}

func tradeGeckoOrderID(ctx echo.Context) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "tradeGeckoOrderId", runtime.ParamLocationPath, ctx.Param("tradeGeckoOrderId"), &id,
	); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("tradeGeckoOrderId", err)
	}
	if id <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("tradeGeckoOrderId", id, 1, "max int64")
	}
	return id, nil
}

func (s *Server) dispatch(ctx echo.Context, cmd commands.Command, requestID kernel.UUID) error {
	result, err := s.dispatcher.Dispatch(ctx.Request().Context(), cmd, requestID)
	if err != nil {
		return s.dispatchFailed(ctx, cmd, err)
	}
	if !result.Succeeded {
		return badRequest(ctx, result.Reason)
	}

	return ctx.JSON(http.StatusOK, result)
}

func (s *Server) dispatchFailed(ctx echo.Context, cmd commands.Command, err error) error {
	if errors.Is(err, errs.ErrInvalidRequest) {
		return badRequest(ctx, err.Error())
	}

	s.logger.ErrorContext(ctx.Request().Context(), "Command failed", "command_type", cmd.Type(), "error", err)
	return internalError(ctx, "Failed to process "+string(cmd.Type()))
}

func requestIDFrom(ctx echo.Context) (kernel.UUID, error) {
	value := ctx.Request().Header.Get(requestIDHeader)
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(requestIDHeader)
	}

	var raw string
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, requestIDHeader, runtime.ParamLocationHeader, value, &raw,
	); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(requestIDHeader, err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(requestIDHeader, err)
	}
	return id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusNotFound, Error{
		Code:    http.StatusNotFound,
		Message: err.Error(),
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
