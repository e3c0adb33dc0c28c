package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Use case contracts consumed by the server. The concrete command and
// query handlers satisfy them; tests substitute stubs.
type (
	createOrderUseCase interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	startStepUseCase interface {
		Handle(ctx context.Context, cmd commands.StartStepCommand) (services.Result, error)
	}
	completeStepUseCase interface {
		Handle(ctx context.Context, cmd commands.CompleteStepCommand) (services.Result, error)
	}
	skipStepUseCase interface {
		Handle(ctx context.Context, cmd commands.SkipStepCommand) (services.Result, error)
	}
	cancelOrderUseCase interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}
	orderProgressUseCase interface {
		Handle(ctx context.Context, query queries.GetOrderProgressQuery) (queries.GetOrderProgressQueryResponse, error)
	}
	auditLogsUseCase interface {
		Handle(ctx context.Context, query queries.GetAuditLogsQuery) (queries.GetAuditLogsQueryResponse, error)
	}
	dashboardStatsUseCase interface {
		Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.GetDashboardStatsQueryResponse, error)
	}
)

// Server wires the JSON API to the application use cases.
type Server struct {
	createOrder    createOrderUseCase
	startStep      startStepUseCase
	completeStep   completeStepUseCase
	skipStep       skipStepUseCase
	cancelOrder    cancelOrderUseCase
	orderProgress  orderProgressUseCase
	auditLogs      auditLogsUseCase
	dashboardStats dashboardStatsUseCase
}

// NewServer creates the HTTP server over the given use cases.
func NewServer(
	createOrder createOrderUseCase,
	startStep startStepUseCase,
	completeStep completeStepUseCase,
	skipStep skipStepUseCase,
	cancelOrder cancelOrderUseCase,
	orderProgress orderProgressUseCase,
	auditLogs auditLogsUseCase,
	dashboardStats dashboardStatsUseCase,
) *Server {
	return &Server{
		createOrder:    createOrder,
		startStep:      startStep,
		completeStep:   completeStep,
		skipStep:       skipStep,
		cancelOrder:    cancelOrder,
		orderProgress:  orderProgress,
		auditLogs:      auditLogs,
		dashboardStats: dashboardStats,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/progress", s.GetOrderProgress)
	api.POST("/steps/:id/start", s.StartStep)
	api.POST("/steps/:id/complete", s.CompleteStep)
	api.POST("/steps/:id/skip", s.SkipStep)
	api.GET("/audit-logs", s.GetAuditLogs)
	api.GET("/dashboard/stats", s.GetDashboardStats)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderNo, err := kernel.NewOrderNo(req.OrderNo)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	printType, err := order.PrintTypeFromString(req.PrintType)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, orderNo, printType, req.CustomerName, req.DeliveryDate)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:      orderID.String(),
		OrderNo: orderNo.String(),
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderProgress handles GET /api/v1/orders/:id/progress.
func (s *Server) GetOrderProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.orderProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderProgressResponseFrom(resp))
}

// StartStep handles POST /api/v1/steps/:id/start.
func (s *Server) StartStep(ctx echo.Context) error {
	stepID, userID, req, err := s.bindStepOperation(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartStepCommand(stepID, userID, req.Acknowledged, requestOrigin(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.startStep.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepOperationResponseFrom(result))
}

// CompleteStep handles POST /api/v1/steps/:id/complete.
func (s *Server) CompleteStep(ctx echo.Context) error {
	stepID, userID, req, err := s.bindStepOperation(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteStepCommand(stepID, userID, req.Note, requestOrigin(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.completeStep.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepOperationResponseFrom(result))
}

// SkipStep handles POST /api/v1/steps/:id/skip.
func (s *Server) SkipStep(ctx echo.Context) error {
	stepID, userID, req, err := s.bindStepOperation(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSkipStepCommand(stepID, userID, req.Reason, requestOrigin(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.skipStep.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepOperationResponseFrom(result))
}

// GetAuditLogs handles GET /api/v1/audit-logs.
func (s *Server) GetAuditLogs(ctx echo.Context) error {
	filter, err := auditFilterFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetAuditLogsQuery(filter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.auditLogs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, auditLogsResponseFrom(resp))
}

// GetDashboardStats handles GET /api/v1/dashboard/stats.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	query, err := queries.NewGetDashboardStatsQuery(time.Now())
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.dashboardStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dashboardStatsResponseFrom(resp))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) bindStepOperation(ctx echo.Context) (kernel.UUID, kernel.UUID, StepOperationRequest, error) {
	var req StepOperationRequest

	stepID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, req, errors.New("invalid step id")
	}

	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, req, errors.New("invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, req, errors.New("invalid user id")
	}

	return stepID, userID, req, nil
}

func auditFilterFromQuery(ctx echo.Context) (ports.AuditLogFilter, error) {
	filter := ports.AuditLogFilter{
		OrderNo:      ctx.QueryParam("orderNo"),
		OperatorName: ctx.QueryParam("operator"),
		Operation:    ctx.QueryParam("operation"),
		StepName:     ctx.QueryParam("step"),
	}

	var err error
	if raw := ctx.QueryParam("offset"); raw != "" {
		if filter.Offset, err = strconv.Atoi(raw); err != nil {
			return ports.AuditLogFilter{}, errors.New("invalid offset")
		}
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		if filter.Limit, err = strconv.Atoi(raw); err != nil {
			return ports.AuditLogFilter{}, errors.New("invalid limit")
		}
	}

	return filter, nil
}

func requestOrigin(ctx echo.Context) audit.RequestOrigin {
	return audit.RequestOrigin{
		IP:        ctx.RealIP(),
		UserAgent: ctx.Request().UserAgent(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the workflow error taxonomy onto HTTP statuses. The
// acknowledgement stop travels as a 409 with the predecessor's note so
// the client can prompt and re-submit.
func writeError(ctx echo.Context, err error) error {
	var needsAck *services.NeedsAcknowledgementError
	if errors.As(err, &needsAck) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Previous step carries a note that must be acknowledged",
			Acknowledgement: &AcknowledgementPrompt{
				PreviousStepName: needsAck.PreviousStepName,
				Note:             needsAck.Note,
			},
		})
	}

	var preceding *services.PrecedingStepsIncompleteError
	if errors.As(err, &preceding) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:            http.StatusConflict,
			Message:         err.Error(),
			IncompleteSteps: preceding.IncompleteNames,
		})
	}

	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, services.ErrInvalidReference):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
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
			Message: "Internal server error",
		})
	}
}
