package services_test

import (
	"testing"
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, printType order.PrintType, steps []*order.Step) *order.Order {
	t.Helper()
	no, err := kernel.NewOrderNo("PO-2001")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), no, printType, "华文印务", nil, steps)
	require.NoError(t, err)
	return o
}

func contentSteps(t *testing.T, names ...string) []*order.Step {
	t.Helper()
	steps := make([]*order.Step, 0, len(names))
	for i, name := range names {
		step, err := order.NewStep(kernel.NewUUID(), name, "", i+1, order.CategoryContent, true)
		require.NoError(t, err)
		steps = append(steps, step)
	}
	return steps
}

// operator can do everything on every step at any time
func unrestricted(t *testing.T, name string) *access.Actor {
	t.Helper()
	rule, err := access.NewRule(kernel.NewUUID(), "车间全权", access.ScopeAll, nil,
		[]access.Operation{access.OperationStart, access.OperationComplete, access.OperationSkip},
		access.NewUnrestrictedWindow(), true, 0, true)
	require.NoError(t, err)
	role, err := access.NewRole(kernel.NewUUID(), "机长", []*access.Rule{rule})
	require.NoError(t, err)
	actor, err := access.NewActor(kernel.NewUUID(), name, []*access.Role{role})
	require.NoError(t, err)
	return actor
}

func powerless(t *testing.T, name string) *access.Actor {
	t.Helper()
	actor, err := access.NewActor(kernel.NewUUID(), name, nil)
	require.NoError(t, err)
	return actor
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.Local)
}

func TestWorkflowEngine_Start(t *testing.T) {
	engine := services.NewWorkflowEngine()

	t.Run("should start the first step and move the order to processing", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP", "印刷")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")

		result, err := engine.Start(o, steps[0].ID(), actor, false, at(10))

		require.NoError(t, err)
		assert.Equal(t, order.StepPending, result.OldStepStatus)
		assert.Equal(t, order.StepInProgress, result.NewStepStatus)
		assert.Equal(t, order.Pending, result.OldOrderStatus)
		assert.Equal(t, order.Processing, result.NewOrderStatus)
		assert.True(t, result.Decision.Granted)
		assert.Equal(t, "李娜", steps[0].OperatorName())
		require.NotNil(t, steps[0].StartTime())
	})

	t.Run("should reject a later step while predecessors are open", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP", "印刷")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")

		_, err := engine.Start(o, steps[2].ID(), actor, false, at(10))

		require.ErrorIs(t, err, services.ErrPrecedingStepsIncomplete)
		var precErr *services.PrecedingStepsIncompleteError
		require.ErrorAs(t, err, &precErr)
		assert.Equal(t, []string{"调图", "CTP"}, precErr.IncompleteNames)
		assert.Equal(t, order.StepPending, steps[2].Status())
	})

	t.Run("should reject a second start with an invalid transition", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")

		_, err := engine.Start(o, steps[0].ID(), actor, false, at(10))
		require.NoError(t, err)
		_, err = engine.Start(o, steps[0].ID(), actor, false, at(11))

		require.ErrorIs(t, err, services.ErrInvalidStateTransition)
	})

	t.Run("should deny an actor without a matching rule and keep the trail", func(t *testing.T) {
		steps := contentSteps(t, "调图")
		o := buildOrder(t, order.PrintTypeContent, steps)

		result, err := engine.Start(o, steps[0].ID(), powerless(t, "王强"), false, at(10))

		require.ErrorIs(t, err, services.ErrPermissionDenied)
		var denied *services.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.False(t, result.Decision.Granted)
		assert.Equal(t, order.StepPending, steps[0].Status())
	})

	t.Run("should check permission before status", func(t *testing.T) {
		steps := contentSteps(t, "调图")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")
		_, err := engine.Start(o, steps[0].ID(), actor, false, at(10))
		require.NoError(t, err)

		_, err = engine.Start(o, steps[0].ID(), powerless(t, "王强"), false, at(11))

		require.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("should fail with an unknown step reference", func(t *testing.T) {
		steps := contentSteps(t, "调图")
		o := buildOrder(t, order.PrintTypeContent, steps)

		_, err := engine.Start(o, kernel.NewUUID(), unrestricted(t, "李娜"), false, at(10))

		require.ErrorIs(t, err, services.ErrInvalidReference)
	})

	t.Run("should fail with a nil order", func(t *testing.T) {
		_, err := engine.Start(nil, kernel.NewUUID(), unrestricted(t, "李娜"), false, at(10))

		require.ErrorIs(t, err, services.ErrInvalidReference)
	})
}

func TestWorkflowEngine_Acknowledgement(t *testing.T) {
	engine := services.NewWorkflowEngine()

	t.Run("soft stop on a predecessor note, success after acknowledgement", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")
		_, err := engine.Complete(o, steps[0].ID(), actor, "watch the color profile", at(9))
		require.NoError(t, err)

		_, err = engine.Start(o, steps[1].ID(), actor, false, at(10))

		require.ErrorIs(t, err, services.ErrNeedsAcknowledgement)
		var ack *services.NeedsAcknowledgementError
		require.ErrorAs(t, err, &ack)
		assert.Equal(t, "调图", ack.PreviousStepName)
		assert.Equal(t, "watch the color profile", ack.Note)
		// the soft stop mutates nothing
		assert.Equal(t, order.StepPending, steps[1].Status())

		// a repeated unacknowledged call is the same soft stop
		_, err = engine.Start(o, steps[1].ID(), actor, false, at(10))
		require.ErrorIs(t, err, services.ErrNeedsAcknowledgement)

		result, err := engine.Start(o, steps[1].ID(), actor, true, at(11))
		require.NoError(t, err)
		assert.Equal(t, order.StepInProgress, result.NewStepStatus)
	})

	t.Run("acknowledged call still checks permission", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		_, err := engine.Complete(o, steps[0].ID(), unrestricted(t, "李娜"), "note", at(9))
		require.NoError(t, err)

		_, err = engine.Start(o, steps[1].ID(), powerless(t, "王强"), true, at(10))

		require.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("no soft stop when the predecessor left no note", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")
		_, err := engine.Complete(o, steps[0].ID(), actor, "", at(9))
		require.NoError(t, err)

		_, err = engine.Start(o, steps[1].ID(), actor, false, at(10))

		require.NoError(t, err)
	})

	t.Run("the note scan crosses categories by global step order", func(t *testing.T) {
		coverPrint, err := order.NewStep(kernel.NewUUID(), "封面印刷", "", 1, order.CategoryCover, true)
		require.NoError(t, err)
		contentPrep, err := order.NewStep(kernel.NewUUID(), "调图", "", 2, order.CategoryContent, true)
		require.NoError(t, err)
		o := buildOrder(t, order.PrintTypeCoverContent, []*order.Step{coverPrint, contentPrep})
		actor := unrestricted(t, "李娜")

		_, err = engine.Skip(o, coverPrint.ID(), actor, "supplied by customer", at(9))
		require.NoError(t, err)

		// 调图 has no open content predecessor, but the skipped cover
		// step is its global predecessor and carries a note
		_, err = engine.Start(o, contentPrep.ID(), actor, false, at(10))

		require.ErrorIs(t, err, services.ErrNeedsAcknowledgement)
		var ack *services.NeedsAcknowledgementError
		require.ErrorAs(t, err, &ack)
		assert.Equal(t, "封面印刷", ack.PreviousStepName)
	})
}

func TestWorkflowEngine_Complete(t *testing.T) {
	engine := services.NewWorkflowEngine()

	t.Run("should complete directly from pending", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")

		result, err := engine.Complete(o, steps[0].ID(), actor, "done early", at(9))

		require.NoError(t, err)
		assert.Equal(t, order.StepCompleted, result.NewStepStatus)
		assert.Equal(t, order.Processing, result.NewOrderStatus)
		assert.False(t, result.OrderCompleted)
		assert.Equal(t, "done early", steps[0].Note())
	})

	t.Run("should report completion of the whole order", func(t *testing.T) {
		steps := contentSteps(t, "调图", "CTP")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")
		_, err := engine.Complete(o, steps[0].ID(), actor, "", at(9))
		require.NoError(t, err)

		result, err := engine.Complete(o, steps[1].ID(), actor, "", at(10))

		require.NoError(t, err)
		assert.True(t, result.OrderCompleted)
		assert.Equal(t, order.Completed, result.NewOrderStatus)
	})

	t.Run("should not complete a terminal step", func(t *testing.T) {
		steps := contentSteps(t, "调图")
		o := buildOrder(t, order.PrintTypeContent, steps)
		actor := unrestricted(t, "李娜")
		_, err := engine.Complete(o, steps[0].ID(), actor, "", at(9))
		require.NoError(t, err)

		_, err = engine.Complete(o, steps[0].ID(), actor, "", at(10))

		require.ErrorIs(t, err, services.ErrInvalidStateTransition)
	})
}

func TestWorkflowEngine_Skip(t *testing.T) {
	engine := services.NewWorkflowEngine()

	t.Run("should format the skip annotation and cascade", func(t *testing.T) {
		steps := contentSteps(t, "调图")
		o := buildOrder(t, order.PrintTypeContent, steps)

		result, err := engine.Skip(o, steps[0].ID(), unrestricted(t, "王强"), "material defect", at(9))

		require.NoError(t, err)
		assert.Equal(t, order.StepSkipped, result.NewStepStatus)
		assert.Equal(t, "skip reason: material defect", steps[0].Note())
		assert.True(t, result.OrderCompleted)
	})
}

// end-to-end path through a three-step content order
func TestWorkflowEngine_Scenario(t *testing.T) {
	engine := services.NewWorkflowEngine()
	steps := contentSteps(t, "调图", "CTP", "印刷")
	o := buildOrder(t, order.PrintTypeContent, steps)
	actor := unrestricted(t, "李娜")

	result, err := engine.Complete(o, steps[0].ID(), actor, "", at(9))
	require.NoError(t, err)
	assert.Equal(t, order.Processing, result.NewOrderStatus)

	_, err = engine.Start(o, steps[1].ID(), actor, false, at(10))
	require.NoError(t, err)

	_, err = engine.Skip(o, steps[1].ID(), actor, "material defect", at(11))
	require.NoError(t, err)
	assert.Equal(t, "skip reason: material defect", steps[1].Note())
	assert.Equal(t, order.StepSkipped, steps[1].Status())

	// predecessors are finished but the skip left a note
	_, err = engine.Start(o, steps[2].ID(), actor, false, at(12))
	require.ErrorIs(t, err, services.ErrNeedsAcknowledgement)

	_, err = engine.Start(o, steps[2].ID(), actor, true, at(12))
	require.NoError(t, err)

	result, err = engine.Complete(o, steps[2].ID(), actor, "", at(13))
	require.NoError(t, err)
	assert.True(t, result.OrderCompleted)
	assert.Equal(t, order.Completed, o.Status())
}
