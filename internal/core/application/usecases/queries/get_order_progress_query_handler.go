package queries

import (
	"context"
	"database/sql"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderProgressQueryHandler reads an order's pipeline state straight
// from the database.
type GetOrderProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderProgressQueryHandler creates a handler for progress queries.
func NewGetOrderProgressQueryHandler(db *gorm.DB) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{db: db}
}

// Handle loads the order header and its steps, computing the CanStart
// flag per step from the same-category precedence rule.
func (h GetOrderProgressQueryHandler) Handle(ctx context.Context, query GetOrderProgressQuery) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	var resp GetOrderProgressQueryResponse
	var headerID uuid.UUID
	var deliveryDate sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_no,
			print_type,
			status,
			customer_name,
			delivery_date
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	if err := row.Scan(&headerID, &resp.OrderNo, &resp.PrintType, &resp.Status,
		&resp.CustomerName, &deliveryDate); err != nil {
		return GetOrderProgressQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID(), err)
	}

	orderID, err := kernel.UUIDFromBytes(headerID[:])
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}
	resp.OrderID = orderID
	if deliveryDate.Valid {
		t := deliveryDate.Time
		resp.DeliveryDate = &t
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			category,
			step_order,
			status,
			required,
			start_time,
			end_time,
			operator_name,
			confirm_user_name,
			note
		FROM workflow_steps
		WHERE order_id = ?
		ORDER BY category, step_order
	`, query.OrderID().String()).Rows()
	if err != nil {
		return resp, err
	}
	defer rows.Close()

	// open[category] flips once a non-terminal step was seen, closing
	// CanStart for everything after it in the same category
	open := map[string]bool{}

	for rows.Next() {
		var step StepProgress
		var id uuid.UUID
		var startTime, endTime sql.NullTime

		if err := rows.Scan(&id, &step.Name, &step.Category, &step.StepOrder, &step.Status,
			&step.Required, &startTime, &endTime, &step.OperatorName,
			&step.ConfirmUserName, &step.Note); err != nil {
			return resp, err
		}

		stepID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return resp, idErr
		}
		step.ID = stepID
		if startTime.Valid {
			t := startTime.Time
			step.StartTime = &t
		}
		if endTime.Valid {
			t := endTime.Time
			step.EndTime = &t
		}

		step.CanStart = step.Status == "pending" && !open[step.Category]
		if step.Status != "completed" && step.Status != "skipped" {
			open[step.Category] = true
		}

		resp.Steps = append(resp.Steps, step)
	}

	if err := rows.Err(); err != nil {
		return resp, err
	}

	return resp, nil
}
