package booking

import (
	"time"

	"turfbook/internal/domain/turf"
	"turfbook/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Grid  Grid
	Clock clock.Clock
}

func NewFactory(grid Grid, clk clock.Clock) *Factory {
	return &Factory{
		Grid:  grid,
		Clock: clk,
	}
}

// CreateBooking validates the requested interval against the slot grid and
// builds the booking entity. It performs shape checks only; conflict checks
// against committed state belong to the admission path.
func (f *Factory) CreateBooking(
	turfEntity *turf.Turf,
	userID uuid.UUID,
	date time.Time,
	slot TimeSlot,
	paymentStatus PaymentStatus,
	price PriceBreakdown,
) (*Booking, error) {
	if !f.Grid.ContainsInterval(slot) {
		return nil, ErrOutsideGrid
	}
	// Business rule, not overlap: a slot whose start has passed is free but
	// no longer bookable.
	if !slot.Start().After(f.Clock.Now()) {
		return nil, ErrSlotInPast
	}

	return NewBooking(turfEntity.ID(), userID, date, slot, paymentStatus, price)
}
