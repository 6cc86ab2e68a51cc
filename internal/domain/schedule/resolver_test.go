//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"hall-booking/internal/domain/hall"
	"hall-booking/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	t.Run("valid calendar date", func(t *testing.T) {
		got, err := schedule.ParseDate("2030-06-03", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, testDate, got)
	})

	t.Run("nil location defaults to UTC", func(t *testing.T) {
		got, err := schedule.ParseDate("2030-06-03", nil)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2030/06/03", "03-06-2030", "2030-13-01", "tomorrow"} {
			_, err := schedule.ParseDate(s, time.UTC)
			assert.ErrorIs(t, err, schedule.ErrInvalidDate, s)
		}
	})
}

func TestResolve(t *testing.T) {
	day := hall.WorkingDay{OpenMin: 9 * 60, CloseMin: 17 * 60}

	t.Run("partitions the open window without gaps", func(t *testing.T) {
		slots := schedule.Resolve(testDate, day, nil, time.Hour)
		require.Len(t, slots, 8)

		assert.Equal(t, testDate.Add(9*time.Hour), slots[0].Start)
		assert.Equal(t, testDate.Add(17*time.Hour), slots[len(slots)-1].End)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
		for _, s := range slots {
			assert.True(t, s.Free)
		}
	})

	t.Run("a booking marks every intersecting slot busy", func(t *testing.T) {
		busy := []schedule.Busy{{
			Start: testDate.Add(10*time.Hour + 30*time.Minute),
			End:   testDate.Add(12 * time.Hour),
		}}

		slots := schedule.Resolve(testDate, day, busy, time.Hour)
		require.Len(t, slots, 8)

		free := make([]bool, len(slots))
		for i, s := range slots {
			free[i] = s.Free
		}
		// 10:00-11:00 and 11:00-12:00 intersect; 12:00-13:00 does not.
		assert.Equal(t, []bool{true, false, false, true, true, true, true, true}, free)
	})

	t.Run("booking touching a slot boundary does not block it", func(t *testing.T) {
		busy := []schedule.Busy{{
			Start: testDate.Add(10 * time.Hour),
			End:   testDate.Add(11 * time.Hour),
		}}

		slots := schedule.Resolve(testDate, day, busy, time.Hour)
		assert.True(t, slots[0].Free)
		assert.False(t, slots[1].Free)
		assert.True(t, slots[2].Free)
	})

	t.Run("closed day resolves to one busy interval", func(t *testing.T) {
		slots := schedule.Resolve(testDate, hall.WorkingDay{Closed: true}, nil, time.Hour)
		require.Len(t, slots, 1)

		assert.Equal(t, testDate, slots[0].Start)
		assert.Equal(t, testDate.Add(24*time.Hour), slots[0].End)
		assert.False(t, slots[0].Free)
	})

	t.Run("inverted open window resolves to nothing", func(t *testing.T) {
		inverted := hall.WorkingDay{OpenMin: 17 * 60, CloseMin: 9 * 60}
		assert.Empty(t, schedule.Resolve(testDate, inverted, nil, time.Hour))
	})

	t.Run("final slot is shorter when granularity does not divide the window", func(t *testing.T) {
		short := hall.WorkingDay{OpenMin: 9 * 60, CloseMin: 10*60 + 30}

		slots := schedule.Resolve(testDate, short, nil, time.Hour)
		require.Len(t, slots, 2)

		assert.Equal(t, testDate.Add(10*time.Hour), slots[1].Start)
		assert.Equal(t, testDate.Add(10*time.Hour+30*time.Minute), slots[1].End)
	})

	t.Run("non-positive granularity falls back to one hour", func(t *testing.T) {
		slots := schedule.Resolve(testDate, day, nil, 0)
		assert.Len(t, slots, 8)
	})
}
