package queries

import (
	"context"
	"sort"
	"time"

	"turfbook/internal/domain/booking"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/clock"
	"turfbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTurfNotFound            = errs.New("turf not found")
	ErrAvailabilityUnavailable = errs.New("availability temporarily unavailable")
)

type SlotState string

const (
	// SlotFree is selectable.
	SlotFree SlotState = "free"
	// SlotBooked is covered by a non-cancelled booking.
	SlotBooked SlotState = "booked"
	// SlotPast is free but its start time has already passed. Reported
	// distinctly from booked: the rejection reason differs.
	SlotPast SlotState = "past"
	// SlotUnavailable covers the whole grid of an inactive turf.
	SlotUnavailable SlotState = "unavailable"
)

type SlotView struct {
	Start time.Time `json:"start"`
	State SlotState `json:"state"`
}

type AvailabilityView struct {
	TurfID   uuid.UUID   `json:"turf_id"`
	Date     time.Time   `json:"date"`
	Occupied []time.Time `json:"occupied"`
	Slots    []SlotView  `json:"slots"`
}

type AvailabilityQueries interface {
	// Resolve computes the occupied slot-start set for a turf and date from
	// committed non-cancelled bookings. The result is advisory: admission
	// re-derives occupancy on its own.
	Resolve(ctx context.Context, turfID uuid.UUID, date time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	turfs    TurfReadStore
	bookings BookingReadStore
	grid     booking.Grid
	clock    clock.Clock
}

func NewAvailabilityQueries(
	turfs TurfReadStore,
	bookings BookingReadStore,
	grid booking.Grid,
	clk clock.Clock,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		turfs:    turfs,
		bookings: bookings,
		grid:     grid,
		clock:    clk,
	}
}

func (q *availabilityQueriesImpl) Resolve(ctx context.Context, turfID uuid.UUID, date time.Time) (*AvailabilityView, error) {
	day := booking.DateOf(date)

	turfView, err := q.turfs.FindByID(ctx, turfID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTurfNotFound
		}
		// Never degrade to "all free" when the store cannot answer.
		return nil, errs.Mark(err, ErrAvailabilityUnavailable)
	}

	starts := q.grid.SlotStarts(day)

	if !turfView.IsActive {
		return q.inactiveView(turfID, day, starts), nil
	}

	intervals, err := q.bookings.FindActiveIntervals(ctx, turfID, day)
	if err != nil {
		return nil, errs.Mark(err, ErrAvailabilityUnavailable)
	}

	occupied := make(map[int64]struct{})
	for _, iv := range intervals {
		for s := iv.Start; s.Before(iv.End); s = s.Add(time.Hour) {
			if q.grid.Contains(s) {
				occupied[s.Unix()] = struct{}{}
			}
		}
	}

	now := q.clock.Now()
	slots := make([]SlotView, 0, len(starts))
	occupiedList := make([]time.Time, 0, len(occupied))
	for _, start := range starts {
		state := SlotFree
		if _, booked := occupied[start.Unix()]; booked {
			state = SlotBooked
			occupiedList = append(occupiedList, start)
		} else if !start.After(now) {
			state = SlotPast
		}
		slots = append(slots, SlotView{Start: start, State: state})
	}

	sort.Slice(occupiedList, func(i, j int) bool { return occupiedList[i].Before(occupiedList[j]) })

	return &AvailabilityView{
		TurfID:   turfID,
		Date:     day,
		Occupied: occupiedList,
		Slots:    slots,
	}, nil
}

// inactiveView marks the whole grid unavailable: an inactive turf never
// surfaces bookable slots.
func (q *availabilityQueriesImpl) inactiveView(turfID uuid.UUID, day time.Time, starts []time.Time) *AvailabilityView {
	slots := make([]SlotView, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, SlotView{Start: start, State: SlotUnavailable})
	}
	return &AvailabilityView{
		TurfID:   turfID,
		Date:     day,
		Occupied: append([]time.Time(nil), starts...),
		Slots:    slots,
	}
}
