// Package http exposes the workflow over a JSON API. Handlers translate
// between wire payloads and use cases; all business decisions stay
// behind the command and query handlers.
package http

import (
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/services"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// IncompleteSteps lists blocking same-pipeline steps on a
	// precedence conflict.
	IncompleteSteps []string `json:"incompleteSteps,omitempty"`

	// Acknowledgement carries the predecessor note on a soft stop. The
	// client re-submits with acknowledged=true to proceed.
	Acknowledgement *AcknowledgementPrompt `json:"acknowledgement,omitempty"`
}

// AcknowledgementPrompt tells the client which finished step left a note.
type AcknowledgementPrompt struct {
	PreviousStepName string `json:"previousStepName"`
	Note             string `json:"note"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderNo      string     `json:"orderNo"`
	PrintType    string     `json:"printType"`
	CustomerName string     `json:"customerName"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
}

// CreateOrderResponse returns the new order's identity.
type CreateOrderResponse struct {
	ID      string `json:"id"`
	OrderNo string `json:"orderNo"`
}

// StepOperationRequest is the body of the start, complete and skip
// endpoints. Note is read by complete, Reason by skip, Acknowledged by
// start; the other fields are ignored per operation.
type StepOperationRequest struct {
	UserID       string `json:"userId"`
	Acknowledged bool   `json:"acknowledged,omitempty"`
	Note         string `json:"note,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// StepOperationResponse reports a successful transition.
type StepOperationResponse struct {
	StepID         string `json:"stepId"`
	StepName       string `json:"stepName"`
	Note           string `json:"note,omitempty"`
	OldStepStatus  string `json:"oldStepStatus"`
	NewStepStatus  string `json:"newStepStatus"`
	OldOrderStatus string `json:"oldOrderStatus"`
	NewOrderStatus string `json:"newOrderStatus"`
	OrderCompleted bool   `json:"orderCompleted"`
}

func stepOperationResponseFrom(result services.Result) StepOperationResponse {
	return StepOperationResponse{
		StepID:         result.StepID.String(),
		StepName:       result.StepName,
		Note:           result.StepNote,
		OldStepStatus:  result.OldStepStatus.String(),
		NewStepStatus:  result.NewStepStatus.String(),
		OldOrderStatus: result.OldOrderStatus.String(),
		NewOrderStatus: result.NewOrderStatus.String(),
		OrderCompleted: result.OrderCompleted,
	}
}

// StepProgressPayload is one step row of the progress listing.
type StepProgressPayload struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	StepOrder       int        `json:"stepOrder"`
	Status          string     `json:"status"`
	Required        bool       `json:"required"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	OperatorName    string     `json:"operatorName,omitempty"`
	ConfirmUserName string     `json:"confirmUserName,omitempty"`
	Note            string     `json:"note,omitempty"`
	CanStart        bool       `json:"canStart"`
}

// OrderProgressResponse is the order header plus its steps.
type OrderProgressResponse struct {
	OrderID      string                `json:"orderId"`
	OrderNo      string                `json:"orderNo"`
	PrintType    string                `json:"printType"`
	Status       string                `json:"status"`
	CustomerName string                `json:"customerName"`
	DeliveryDate *time.Time            `json:"deliveryDate,omitempty"`
	Steps        []StepProgressPayload `json:"steps"`
}

func orderProgressResponseFrom(resp queries.GetOrderProgressQueryResponse) OrderProgressResponse {
	steps := make([]StepProgressPayload, 0, len(resp.Steps))
	for _, step := range resp.Steps {
		steps = append(steps, StepProgressPayload{
			ID:              step.ID.String(),
			Name:            step.Name,
			Category:        step.Category,
			StepOrder:       step.StepOrder,
			Status:          step.Status,
			Required:        step.Required,
			StartTime:       step.StartTime,
			EndTime:         step.EndTime,
			OperatorName:    step.OperatorName,
			ConfirmUserName: step.ConfirmUserName,
			Note:            step.Note,
			CanStart:        step.CanStart,
		})
	}

	return OrderProgressResponse{
		OrderID:      resp.OrderID.String(),
		OrderNo:      resp.OrderNo,
		PrintType:    resp.PrintType,
		Status:       resp.Status,
		CustomerName: resp.CustomerName,
		DeliveryDate: resp.DeliveryDate,
		Steps:        steps,
	}
}

// AuditLogPayload is one operation record row.
type AuditLogPayload struct {
	ID            string       `json:"id"`
	OrderNo       string       `json:"orderNo"`
	StepName      string       `json:"stepName"`
	PrintType     string       `json:"printType"`
	Operation     string       `json:"operation"`
	OperatorName  string       `json:"operatorName"`
	OperatorRoles []string     `json:"operatorRoles"`
	RuleUsed      string       `json:"ruleUsed,omitempty"`
	Granted       bool         `json:"granted"`
	Checks        []CheckEntry `json:"checks,omitempty"`
	Success       bool         `json:"success"`
	ErrorMessage  string       `json:"errorMessage,omitempty"`
	Note          string       `json:"note,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
	IP            string       `json:"ip,omitempty"`
}

// CheckEntry is one gate outcome of the recorded decision trail.
type CheckEntry struct {
	Rule   string `json:"rule"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// AuditLogsResponse is one page of operation records.
type AuditLogsResponse struct {
	Records []AuditLogPayload `json:"records"`
	Total   int64             `json:"total"`
	Offset  int               `json:"offset"`
	Limit   int               `json:"limit"`
}

func auditLogsResponseFrom(resp queries.GetAuditLogsQueryResponse) AuditLogsResponse {
	records := make([]AuditLogPayload, 0, len(resp.Records))
	for _, record := range resp.Records {
		records = append(records, auditLogPayloadFrom(record))
	}

	return AuditLogsResponse{
		Records: records,
		Total:   resp.Total,
		Offset:  resp.Offset,
		Limit:   resp.Limit,
	}
}

func auditLogPayloadFrom(record audit.OperationLog) AuditLogPayload {
	checks := make([]CheckEntry, 0, len(record.Checks))
	for _, check := range record.Checks {
		checks = append(checks, CheckEntry{
			Rule:   check.Rule,
			Name:   check.Name,
			Passed: check.Passed,
			Detail: check.Detail,
		})
	}

	return AuditLogPayload{
		ID:            record.ID.String(),
		OrderNo:       record.OrderNo,
		StepName:      record.StepName,
		PrintType:     record.PrintType,
		Operation:     record.Operation,
		OperatorName:  record.OperatorName,
		OperatorRoles: record.OperatorRoles,
		RuleUsed:      record.RuleUsed,
		Granted:       record.Granted,
		Checks:        checks,
		Success:       record.Success,
		ErrorMessage:  record.ErrorMessage,
		Note:          record.Note,
		Timestamp:     record.Timestamp,
		IP:            record.Origin.IP,
	}
}

// DashboardStatsResponse is the workshop counter snapshot.
type DashboardStatsResponse struct {
	TotalOrders       int64 `json:"totalOrders"`
	PendingCount      int64 `json:"pendingCount"`
	ProcessingCount   int64 `json:"processingCount"`
	CompletedCount    int64 `json:"completedCount"`
	UrgentCount       int64 `json:"urgentCount"`
	ActiveStepCount   int64 `json:"activeStepCount"`
	UpcomingStepCount int64 `json:"upcomingStepCount"`
}

func dashboardStatsResponseFrom(resp queries.GetDashboardStatsQueryResponse) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalOrders:       resp.TotalOrders,
		PendingCount:      resp.PendingCount,
		ProcessingCount:   resp.ProcessingCount,
		CompletedCount:    resp.CompletedCount,
		UrgentCount:       resp.UrgentCount,
		ActiveStepCount:   resp.ActiveStepCount,
		UpcomingStepCount: resp.UpcomingStepCount,
	}
}
