package queries_test

import (
	"testing"
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderProgressQuery(t *testing.T) {
	t.Run("should create query with valid order id", func(t *testing.T) {
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderProgressQuery(orderID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
	})

	t.Run("should reject zero order id", func(t *testing.T) {
		_, err := queries.NewGetOrderProgressQuery(kernel.UUID{})

		assert.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.GetOrderProgressQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderProgressQueryIsNotConstructed)
	})
}

func TestNewGetAuditLogsQuery(t *testing.T) {
	t.Run("should apply default limit when zero", func(t *testing.T) {
		query, err := queries.NewGetAuditLogsQuery(ports.AuditLogFilter{})

		require.NoError(t, err)
		assert.Equal(t, 20, query.Filter().Limit)
		assert.Equal(t, 0, query.Filter().Offset)
	})

	t.Run("should keep explicit filter fields", func(t *testing.T) {
		filter := ports.AuditLogFilter{
			OrderNo:      "PO-2024-001",
			OperatorName: "张伟",
			Operation:    "start",
			StepName:     "调图",
			Offset:       40,
			Limit:        50,
		}

		query, err := queries.NewGetAuditLogsQuery(filter)

		require.NoError(t, err)
		assert.Equal(t, filter, query.Filter())
	})

	t.Run("should reject negative offset", func(t *testing.T) {
		_, err := queries.NewGetAuditLogsQuery(ports.AuditLogFilter{Offset: -1})

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject limit above maximum", func(t *testing.T) {
		_, err := queries.NewGetAuditLogsQuery(ports.AuditLogFilter{Limit: 201})

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.GetAuditLogsQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetAuditLogsQueryIsNotConstructed)
	})
}

func TestNewGetDashboardStatsQuery(t *testing.T) {
	t.Run("should create query anchored at instant", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

		query, err := queries.NewGetDashboardStatsQuery(now)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Equal(t, now, query.Now())
	})

	t.Run("should reject zero instant", func(t *testing.T) {
		_, err := queries.NewGetDashboardStatsQuery(time.Time{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.GetDashboardStatsQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetDashboardStatsQueryIsNotConstructed)
	})
}
