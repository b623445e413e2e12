//go:build unit

package booking_test

import (
	"testing"
	"time"

	"turfbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, open, close int) booking.Grid {
	t.Helper()
	g, err := booking.NewGrid(open, close)
	require.NoError(t, err)
	return g
}

func slotAt(day time.Time, hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func TestNewGrid(t *testing.T) {
	cases := []struct {
		name  string
		open  int
		close int
		errIs error
	}{
		{name: "full day", open: 0, close: 24},
		{name: "standard hours", open: 6, close: 24},
		{name: "negative open", open: -1, close: 24, errIs: booking.ErrInvalidGridBounds},
		{name: "close past midnight", open: 6, close: 25, errIs: booking.ErrInvalidGridBounds},
		{name: "open equals close", open: 10, close: 10, errIs: booking.ErrInvalidGridBounds},
		{name: "open after close", open: 20, close: 8, errIs: booking.ErrInvalidGridBounds},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := booking.NewGrid(c.open, c.close)
			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestGridSlotStarts(t *testing.T) {
	grid := mustGrid(t, 6, 24)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	starts := grid.SlotStarts(day)

	require.Len(t, starts, 18)
	assert.Equal(t, slotAt(day, 6), starts[0])
	assert.Equal(t, slotAt(day, 23), starts[len(starts)-1])
	for i := 1; i < len(starts); i++ {
		assert.Equal(t, time.Hour, starts[i].Sub(starts[i-1]))
	}
}

func TestGridContains(t *testing.T) {
	grid := mustGrid(t, 6, 24)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, grid.Contains(slotAt(day, 6)))
	assert.True(t, grid.Contains(slotAt(day, 23)))
	assert.False(t, grid.Contains(slotAt(day, 5)), "before opening")
	assert.False(t, grid.Contains(slotAt(day, 24)), "midnight is the close bound, not a slot")
	assert.False(t, grid.Contains(day.Add(9*time.Hour+30*time.Minute)), "not hour aligned")
}

func TestGridIsContiguous(t *testing.T) {
	grid := mustGrid(t, 6, 24)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		selected []time.Time
		want     bool
		errIs    error
	}{
		{
			name:     "single slot",
			selected: []time.Time{slotAt(day, 9)},
			want:     true,
		},
		{
			name:     "two adjacent slots",
			selected: []time.Time{slotAt(day, 9), slotAt(day, 10)},
			want:     true,
		},
		{
			name:     "gap between slots",
			selected: []time.Time{slotAt(day, 9), slotAt(day, 11)},
			want:     false,
		},
		{
			name:     "unsorted but contiguous",
			selected: []time.Time{slotAt(day, 11), slotAt(day, 9), slotAt(day, 10)},
			want:     true,
		},
		{
			name:     "last slot of the day included",
			selected: []time.Time{slotAt(day, 22), slotAt(day, 23)},
			want:     true,
		},
		{
			name:     "empty selection",
			selected: nil,
			errIs:    booking.ErrEmptySelection,
		},
		{
			name:     "slot off the grid",
			selected: []time.Time{slotAt(day, 5)},
			errIs:    booking.ErrOffGridSlot,
		},
		{
			name:     "slot from another day",
			selected: []time.Time{slotAt(day, 9), slotAt(day.AddDate(0, 0, 1), 10)},
			errIs:    booking.ErrOffGridSlot,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := grid.IsContiguous(c.selected)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGridToInterval(t *testing.T) {
	grid := mustGrid(t, 6, 24)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("contiguous selection folds to half-open interval", func(t *testing.T) {
		slot, err := grid.ToInterval([]time.Time{slotAt(day, 19), slotAt(day, 18)})
		require.NoError(t, err)

		assert.Equal(t, slotAt(day, 18), slot.Start())
		assert.Equal(t, slotAt(day, 20), slot.End())
	})

	t.Run("interval expands back to the same slots", func(t *testing.T) {
		slot, err := grid.ToInterval([]time.Time{slotAt(day, 18), slotAt(day, 19)})
		require.NoError(t, err)

		assert.Equal(t, []time.Time{slotAt(day, 18), slotAt(day, 19)}, slot.SlotStarts())
	})

	t.Run("non-contiguous selection is rejected", func(t *testing.T) {
		_, err := grid.ToInterval([]time.Time{slotAt(day, 9), slotAt(day, 11)})
		require.ErrorIs(t, err, booking.ErrNonContiguousSelection)
	})

	t.Run("last slot yields close-of-day end", func(t *testing.T) {
		slot, err := grid.ToInterval([]time.Time{slotAt(day, 23)})
		require.NoError(t, err)

		assert.Equal(t, slotAt(day, 24), slot.End())
	})
}

func TestGridContainsInterval(t *testing.T) {
	grid := mustGrid(t, 6, 24)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	mustSlot := func(startHour, endHour int) booking.TimeSlot {
		slot, err := booking.NewTimeSlot(slotAt(day, startHour), slotAt(day, endHour))
		require.NoError(t, err)
		return slot
	}

	assert.True(t, grid.ContainsInterval(mustSlot(6, 8)))
	assert.True(t, grid.ContainsInterval(mustSlot(23, 24)), "interval may end exactly at close")
	assert.False(t, grid.ContainsInterval(mustSlot(5, 7)), "starts before opening")

	crossesMidnight, err := booking.NewTimeSlot(slotAt(day, 23), slotAt(day, 25))
	require.NoError(t, err)
	assert.False(t, grid.ContainsInterval(crossesMidnight))
}
