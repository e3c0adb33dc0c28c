package ports

import (
	"printflow/internal/core/domain/model/order"
)

// StepTemplate is one entry of the fixed per-print-type step list used
// to materialize an order's steps at creation time.
type StepTemplate struct {
	Name        string
	Description string
	Category    order.StepCategory
	StepOrder   int
	Required    bool
}

// StepTemplateProvider supplies the fixed ordered step list for a print
// type. Templates are static configuration, not stored entities; the
// workflow engine itself only ever sees materialized steps.
type StepTemplateProvider interface {
	TemplateFor(printType order.PrintType) ([]StepTemplate, error)
}
