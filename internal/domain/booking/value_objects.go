package booking

import (
	"errors"
	"time"
)

// TimeSlot is a half-open interval [start, end) aligned to the top of the
// hour on both sides.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidInterval
	}
	if !isHourAligned(start) || !isHourAligned(end) {
		return TimeSlot{}, ErrMisalignedTime
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from stored values without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func isHourAligned(t time.Time) bool {
	return t.Equal(t.Truncate(time.Hour))
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Hours() int {
	return int(ts.Duration() / time.Hour)
}

// Overlaps implements half-open interval overlap: [a,b) and [c,d) overlap
// iff a < d && c < b. Strict on both sides, so back-to-back slots
// (one ending exactly when the other starts) do not conflict.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// SlotStarts expands the interval into the start time of every hour cell it
// covers.
func (ts TimeSlot) SlotStarts() []time.Time {
	starts := make([]time.Time, 0, ts.Hours())
	for s := ts.start; s.Before(ts.end); s = s.Add(time.Hour) {
		starts = append(starts, s)
	}
	return starts
}

// PriceBreakdown records the monetary breakdown supplied with a booking
// request. The core records it; it never computes payment state.
type PriceBreakdown struct {
	baseCents       int64
	serviceFeeCents int64
	bookingFeeCents int64
	totalCents      int64
}

var (
	ErrNegativeAmount = errors.New("price amount cannot be negative")
	ErrPriceMismatch  = errors.New("total does not match base plus fees")
)

func NewPriceBreakdown(baseCents, serviceFeeCents, bookingFeeCents, totalCents int64) (PriceBreakdown, error) {
	if baseCents < 0 || serviceFeeCents < 0 || bookingFeeCents < 0 || totalCents < 0 {
		return PriceBreakdown{}, ErrNegativeAmount
	}
	if totalCents != baseCents+serviceFeeCents+bookingFeeCents {
		return PriceBreakdown{}, ErrPriceMismatch
	}
	return PriceBreakdown{
		baseCents:       baseCents,
		serviceFeeCents: serviceFeeCents,
		bookingFeeCents: bookingFeeCents,
		totalCents:      totalCents,
	}, nil
}

// ReconstructPriceBreakdown rebuilds a breakdown from stored values without
// validation.
func ReconstructPriceBreakdown(baseCents, serviceFeeCents, bookingFeeCents, totalCents int64) PriceBreakdown {
	return PriceBreakdown{
		baseCents:       baseCents,
		serviceFeeCents: serviceFeeCents,
		bookingFeeCents: bookingFeeCents,
		totalCents:      totalCents,
	}
}

func (p PriceBreakdown) BaseCents() int64       { return p.baseCents }
func (p PriceBreakdown) ServiceFeeCents() int64 { return p.serviceFeeCents }
func (p PriceBreakdown) BookingFeeCents() int64 { return p.bookingFeeCents }
func (p PriceBreakdown) TotalCents() int64      { return p.totalCents }
