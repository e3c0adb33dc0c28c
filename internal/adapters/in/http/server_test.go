package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "printflow/internal/adapters/in/http"
	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCases struct {
	createOrderErr error

	startResult services.Result
	startErr    error
	startCmd    commands.StartStepCommand

	completeResult services.Result
	completeErr    error

	skipResult services.Result
	skipErr    error

	cancelErr error

	progressResp queries.GetOrderProgressQueryResponse
	progressErr  error

	auditResp  queries.GetAuditLogsQueryResponse
	auditQuery queries.GetAuditLogsQuery
	auditErr   error

	statsResp queries.GetDashboardStatsQueryResponse
	statsErr  error
}

func (s *stubUseCases) Handle(_ context.Context, _ commands.CreateOrderCommand) error {
	return s.createOrderErr
}

type startStub struct{ parent *stubUseCases }

func (s startStub) Handle(_ context.Context, cmd commands.StartStepCommand) (services.Result, error) {
	s.parent.startCmd = cmd
	return s.parent.startResult, s.parent.startErr
}

type completeStub struct{ parent *stubUseCases }

func (s completeStub) Handle(_ context.Context, _ commands.CompleteStepCommand) (services.Result, error) {
	return s.parent.completeResult, s.parent.completeErr
}

type skipStub struct{ parent *stubUseCases }

func (s skipStub) Handle(_ context.Context, _ commands.SkipStepCommand) (services.Result, error) {
	return s.parent.skipResult, s.parent.skipErr
}

type cancelStub struct{ parent *stubUseCases }

func (s cancelStub) Handle(_ context.Context, _ commands.CancelOrderCommand) error {
	return s.parent.cancelErr
}

type progressStub struct{ parent *stubUseCases }

func (s progressStub) Handle(_ context.Context, _ queries.GetOrderProgressQuery) (queries.GetOrderProgressQueryResponse, error) {
	return s.parent.progressResp, s.parent.progressErr
}

type auditStub struct{ parent *stubUseCases }

func (s auditStub) Handle(_ context.Context, query queries.GetAuditLogsQuery) (queries.GetAuditLogsQueryResponse, error) {
	s.parent.auditQuery = query
	return s.parent.auditResp, s.parent.auditErr
}

type statsStub struct{ parent *stubUseCases }

func (s statsStub) Handle(_ context.Context, _ queries.GetDashboardStatsQuery) (queries.GetDashboardStatsQueryResponse, error) {
	return s.parent.statsResp, s.parent.statsErr
}

func newTestServer(stubs *stubUseCases) *echo.Echo {
	server := apihttp.NewServer(
		stubs,
		startStub{stubs},
		completeStub{stubs},
		skipStub{stubs},
		cancelStub{stubs},
		progressStub{stubs},
		auditStub{stubs},
		statsStub{stubs},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder(t *testing.T) {
	t.Run("should create order and return identity", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodPost, "/api/v1/orders",
			`{"orderNo":"PO-2024-001","printType":"content","customerName":"新华书店"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp apihttp.CreateOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PO-2024-001", resp.OrderNo)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("should reject unknown print type", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodPost, "/api/v1/orders",
			`{"orderNo":"PO-2024-001","printType":"poster","customerName":"新华书店"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject blank order number", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodPost, "/api/v1/orders",
			`{"orderNo":"  ","printType":"content","customerName":"新华书店"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStartStep(t *testing.T) {
	stepID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("should return transition result", func(t *testing.T) {
		stubs := &stubUseCases{startResult: services.Result{
			StepID:         stepID,
			StepName:       "调图",
			OldStepStatus:  order.StepPending,
			NewStepStatus:  order.StepInProgress,
			OldOrderStatus: order.Pending,
			NewOrderStatus: order.Processing,
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/start",
			`{"userId":"`+userID.String()+`"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp apihttp.StepOperationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "调图", resp.StepName)
		assert.Equal(t, "in_progress", resp.NewStepStatus)
		assert.Equal(t, "processing", resp.NewOrderStatus)
		assert.False(t, resp.OrderCompleted)
	})

	t.Run("should return acknowledgement prompt on soft stop", func(t *testing.T) {
		stubs := &stubUseCases{startErr: &services.NeedsAcknowledgementError{
			StepName:         "印刷",
			PreviousStepName: "CTP",
			Note:             "版材更换,注意套准",
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/start",
			`{"userId":"`+userID.String()+`"}`)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp apihttp.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Acknowledgement)
		assert.Equal(t, "CTP", resp.Acknowledgement.PreviousStepName)
		assert.Equal(t, "版材更换,注意套准", resp.Acknowledgement.Note)
	})

	t.Run("should map permission denial to forbidden", func(t *testing.T) {
		stubs := &stubUseCases{startErr: &services.PermissionDeniedError{StepName: "印刷"}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/start",
			`{"userId":"`+userID.String()+`"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should list blocking steps on precedence conflict", func(t *testing.T) {
		stubs := &stubUseCases{startErr: &services.PrecedingStepsIncompleteError{
			StepName:        "印刷",
			IncompleteNames: []string{"调图", "CTP"},
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/start",
			`{"userId":"`+userID.String()+`"}`)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp apihttp.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"调图", "CTP"}, resp.IncompleteSteps)
	})

	t.Run("should map unknown step to not found", func(t *testing.T) {
		stubs := &stubUseCases{startErr: errs.NewObjectNotFoundError("step", stepID.String())}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/start",
			`{"userId":"`+userID.String()+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject malformed step id", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/not-a-uuid/start",
			`{"userId":"`+userID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCompleteStep(t *testing.T) {
	stepID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("should report order completion", func(t *testing.T) {
		stubs := &stubUseCases{completeResult: services.Result{
			StepID:         stepID,
			StepName:       "送货",
			StepNote:       "客户签收",
			OldStepStatus:  order.StepInProgress,
			NewStepStatus:  order.StepCompleted,
			OldOrderStatus: order.Processing,
			NewOrderStatus: order.Completed,
			OrderCompleted: true,
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/complete",
			`{"userId":"`+userID.String()+`","note":"客户签收"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp apihttp.StepOperationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OrderCompleted)
		assert.Equal(t, "客户签收", resp.Note)
	})

	t.Run("should map terminal step to conflict", func(t *testing.T) {
		stubs := &stubUseCases{completeErr: &services.InvalidStateTransitionError{
			StepName: "送货",
			From:     order.StepCompleted,
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/complete",
			`{"userId":"`+userID.String()+`"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestSkipStep(t *testing.T) {
	stepID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("should require a reason", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/skip",
			`{"userId":"`+userID.String()+`","reason":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return formatted skip note", func(t *testing.T) {
		stubs := &stubUseCases{skipResult: services.Result{
			StepID:        stepID,
			StepName:      "覆膜",
			StepNote:      "skip reason: 客户取消覆膜",
			OldStepStatus: order.StepPending,
			NewStepStatus: order.StepSkipped,
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodPost, "/api/v1/steps/"+stepID.String()+"/skip",
			`{"userId":"`+userID.String()+`","reason":"客户取消覆膜"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp apihttp.StepOperationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "skipped", resp.NewStepStatus)
		assert.Equal(t, "skip reason: 客户取消覆膜", resp.Note)
	})
}

func TestGetOrderProgress(t *testing.T) {
	t.Run("should return order header with steps", func(t *testing.T) {
		orderID := kernel.NewUUID()
		stubs := &stubUseCases{progressResp: queries.GetOrderProgressQueryResponse{
			OrderID:      orderID,
			OrderNo:      "PO-2024-001",
			PrintType:    "content",
			Status:       "processing",
			CustomerName: "新华书店",
			Steps: []queries.StepProgress{
				{ID: kernel.NewUUID(), Name: "调图", Category: "content", StepOrder: 1, Status: "completed"},
				{ID: kernel.NewUUID(), Name: "CTP", Category: "content", StepOrder: 2, Status: "pending", CanStart: true},
			},
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/progress", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp apihttp.OrderProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PO-2024-001", resp.OrderNo)
		require.Len(t, resp.Steps, 2)
		assert.True(t, resp.Steps[1].CanStart)
	})

	t.Run("should map missing order to not found", func(t *testing.T) {
		stubs := &stubUseCases{progressErr: errs.NewObjectNotFoundError("orderID", "x")}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/progress", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetAuditLogs(t *testing.T) {
	t.Run("should pass filter from query parameters", func(t *testing.T) {
		stubs := &stubUseCases{}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodGet,
			"/api/v1/audit-logs?orderNo=PO-2024-001&operator=%E5%BC%A0%E4%BC%9F&operation=start&offset=20&limit=10", "")

		require.Equal(t, http.StatusOK, rec.Code)

		filter := stubs.auditQuery.Filter()
		assert.Equal(t, "PO-2024-001", filter.OrderNo)
		assert.Equal(t, "张伟", filter.OperatorName)
		assert.Equal(t, "start", filter.Operation)
		assert.Equal(t, 20, filter.Offset)
		assert.Equal(t, 10, filter.Limit)
	})

	t.Run("should reject non-numeric offset", func(t *testing.T) {
		e := newTestServer(&stubUseCases{})

		rec := doJSON(e, http.MethodGet, "/api/v1/audit-logs?offset=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetDashboardStats(t *testing.T) {
	t.Run("should return counter snapshot", func(t *testing.T) {
		stubs := &stubUseCases{statsResp: queries.GetDashboardStatsQueryResponse{
			TotalOrders:     42,
			ProcessingCount: 7,
			UrgentCount:     3,
		}}
		e := newTestServer(stubs)

		rec := doJSON(e, http.MethodGet, "/api/v1/dashboard/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp apihttp.DashboardStatsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.TotalOrders)
		assert.Equal(t, int64(3), resp.UrgentCount)
	})
}

func TestHealth(t *testing.T) {
	e := newTestServer(&stubUseCases{})

	rec := doJSON(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
