package access_test

import (
	"testing"
	"time"

	"printflow/internal/core/domain/model/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(t *testing.T, hour, minute int) access.ClockTime {
	t.Helper()
	c, err := access.NewClockTime(hour, minute)
	require.NoError(t, err)
	return c
}

func instant(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, second, 0, time.Local)
}

func TestTimeWindow_Allows(t *testing.T) {
	t.Run("unrestricted window always passes", func(t *testing.T) {
		w := access.NewUnrestrictedWindow()

		assert.True(t, w.Allows(instant(3, 0, 0)))
		assert.True(t, w.Allows(instant(23, 59, 59)))
	})

	t.Run("working hours are inclusive at both ends", func(t *testing.T) {
		w := access.NewWorkingHoursWindow()

		assert.True(t, w.Allows(instant(8, 0, 0)))
		assert.True(t, w.Allows(instant(12, 30, 0)))
		assert.True(t, w.Allows(instant(18, 0, 0)))
		assert.False(t, w.Allows(instant(7, 59, 59)))
		assert.False(t, w.Allows(instant(18, 0, 1)))
	})

	t.Run("custom window is inclusive at both ends", func(t *testing.T) {
		start := clockAt(t, 22, 0)
		end := clockAt(t, 23, 30)
		w := access.NewCustomWindow(&start, &end)

		assert.True(t, w.Allows(instant(22, 0, 0)))
		assert.True(t, w.Allows(instant(23, 30, 0)))
		assert.False(t, w.Allows(instant(21, 59, 59)))
		assert.False(t, w.Allows(instant(23, 30, 1)))
	})

	t.Run("custom window with a missing bound passes", func(t *testing.T) {
		start := clockAt(t, 22, 0)

		assert.True(t, access.NewCustomWindow(&start, nil).Allows(instant(3, 0, 0)))
		assert.True(t, access.NewCustomWindow(nil, nil).Allows(instant(3, 0, 0)))
	})
}

func TestClockTime(t *testing.T) {
	t.Run("should reject out-of-range components", func(t *testing.T) {
		_, err := access.NewClockTime(24, 0)
		require.Error(t, err)

		_, err = access.NewClockTime(12, 60)
		require.Error(t, err)
	})

	t.Run("should parse and format HH:MM", func(t *testing.T) {
		c, err := access.ClockTimeFromString("09:05")
		require.NoError(t, err)
		assert.Equal(t, "09:05", c.String())

		_, err = access.ClockTimeFromString("9am")
		require.Error(t, err)
	})
}

func TestRestoreTimeWindow(t *testing.T) {
	t.Run("should drop bounds for non-custom kinds", func(t *testing.T) {
		start := clockAt(t, 8, 0)

		w, err := access.RestoreTimeWindow(access.WindowWorkingHours, &start, nil)

		require.NoError(t, err)
		assert.Nil(t, w.Start())
	})

	t.Run("should reject an invalid kind", func(t *testing.T) {
		_, err := access.RestoreTimeWindow(access.WindowUnknown, nil, nil)
		require.Error(t, err)
	})
}
