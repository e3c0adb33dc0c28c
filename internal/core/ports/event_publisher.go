package ports

import (
	"context"
	"time"
)

// StepChangedEvent is emitted on every step transition.
type StepChangedEvent struct {
	OrderID      string
	OrderNo      string
	StepID       string
	StepName     string
	OldStatus    string
	NewStatus    string
	OperatorName string
	Timestamp    time.Time
}

// OrderChangedEvent is emitted whenever a transition changed the order's
// own status. Sinks derive dashboard snapshots from it.
type OrderChangedEvent struct {
	OrderID   string
	OrderNo   string
	OldStatus string
	NewStatus string
	Timestamp time.Time
}

// EventPublisher delivers workflow events to external sinks (dashboards,
// notification layers). Delivery is fire-and-forget: publishers must not
// block the calling operation, and the engine only guarantees emission,
// never delivery.
type EventPublisher interface {
	PublishStepChanged(ctx context.Context, event StepChangedEvent)
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent)
}
