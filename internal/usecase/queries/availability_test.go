//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"turfbook/internal/domain/booking"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/clock"
	"turfbook/internal/usecase/queries"
	queriesmock "turfbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type availabilityFixture struct {
	turfs    *queriesmock.MockTurfReadStore
	bookings *queriesmock.MockBookingReadStore
	clock    *clock.MockClock
	sut      queries.AvailabilityQueries
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	ctrl := gomock.NewController(t)
	turfs := queriesmock.NewMockTurfReadStore(ctrl)
	bookings := queriesmock.NewMockBookingReadStore(ctrl)

	grid, err := booking.NewGrid(6, 24)
	require.NoError(t, err)

	clk := clock.NewMockClock(time.Date(2030, 5, 9, 12, 0, 0, 0, time.UTC))

	return &availabilityFixture{
		turfs:    turfs,
		bookings: bookings,
		clock:    clk,
		sut:      queries.NewAvailabilityQueries(turfs, bookings, grid, clk),
	}
}

func activeTurf(id uuid.UUID) *queries.TurfView {
	return &queries.TurfView{
		ID:               id,
		VenueID:          uuid.New(),
		Name:             "Center Pitch",
		Sport:            "football",
		HourlyPriceCents: 200000,
		IsActive:         true,
	}
}

func slotStates(view *queries.AvailabilityView) map[int]queries.SlotState {
	states := make(map[int]queries.SlotState, len(view.Slots))
	for _, s := range view.Slots {
		states[s.Start.Hour()] = s.State
	}
	return states
}

func TestAvailabilityResolve(t *testing.T) {
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	turfID := uuid.New()

	t.Run("two-hour booking occupies exactly its two slot starts", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(activeTurf(turfID), nil)
		f.bookings.EXPECT().FindActiveIntervals(gomock.Any(), turfID, day).Return([]queries.BookedInterval{
			{Start: day.Add(18 * time.Hour), End: day.Add(20 * time.Hour)},
		}, nil)

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.NoError(t, err)

		assert.Equal(t, []time.Time{day.Add(18 * time.Hour), day.Add(19 * time.Hour)}, view.Occupied)

		states := slotStates(view)
		assert.Equal(t, queries.SlotBooked, states[18])
		assert.Equal(t, queries.SlotBooked, states[19])
		assert.Equal(t, queries.SlotFree, states[17])
		assert.Equal(t, queries.SlotFree, states[20], "slot at the interval end stays free")
	})

	t.Run("occupied set is the union over bookings, sorted ascending", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(activeTurf(turfID), nil)
		f.bookings.EXPECT().FindActiveIntervals(gomock.Any(), turfID, day).Return([]queries.BookedInterval{
			{Start: day.Add(20 * time.Hour), End: day.Add(21 * time.Hour)},
			{Start: day.Add(9 * time.Hour), End: day.Add(11 * time.Hour)},
		}, nil)

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.NoError(t, err)

		assert.Equal(t, []time.Time{
			day.Add(9 * time.Hour),
			day.Add(10 * time.Hour),
			day.Add(20 * time.Hour),
		}, view.Occupied)
	})

	t.Run("no bookings means all future slots free", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(activeTurf(turfID), nil)
		f.bookings.EXPECT().FindActiveIntervals(gomock.Any(), turfID, day).Return(nil, nil)

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.NoError(t, err)

		assert.Empty(t, view.Occupied)
		require.Len(t, view.Slots, 18)
		for _, s := range view.Slots {
			assert.Equal(t, queries.SlotFree, s.State)
		}
	})

	t.Run("elapsed free slots report as past, booked wins over past", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.clock.Set(day.Add(10*time.Hour + 30*time.Minute))
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(activeTurf(turfID), nil)
		f.bookings.EXPECT().FindActiveIntervals(gomock.Any(), turfID, day).Return([]queries.BookedInterval{
			{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		}, nil)

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.NoError(t, err)

		states := slotStates(view)
		assert.Equal(t, queries.SlotPast, states[6])
		assert.Equal(t, queries.SlotBooked, states[9], "booked takes precedence over past")
		assert.Equal(t, queries.SlotPast, states[10], "slot that already started is past")
		assert.Equal(t, queries.SlotFree, states[11])
	})

	t.Run("inactive turf reports the whole grid unavailable", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		inactive := activeTurf(turfID)
		inactive.IsActive = false
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(inactive, nil)

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.NoError(t, err)

		require.Len(t, view.Slots, 18)
		for _, s := range view.Slots {
			assert.Equal(t, queries.SlotUnavailable, s.State)
		}
		assert.Len(t, view.Occupied, 18)
	})

	t.Run("unknown turf", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).
			Return(nil, infra.WrapRepoErr("turf not found", assert.AnError, infra.KindNotFound))

		_, err := f.sut.Resolve(context.Background(), turfID, day)
		require.ErrorIs(t, err, queries.ErrTurfNotFound)
	})

	t.Run("store failure never degrades to all-free", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.turfs.EXPECT().FindByID(gomock.Any(), turfID).Return(activeTurf(turfID), nil)
		f.bookings.EXPECT().FindActiveIntervals(gomock.Any(), turfID, day).
			Return(nil, infra.WrapRepoErr("query failed", assert.AnError))

		view, err := f.sut.Resolve(context.Background(), turfID, day)
		require.ErrorIs(t, err, queries.ErrAvailabilityUnavailable)
		assert.Nil(t, view)
	})
}
