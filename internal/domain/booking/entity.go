package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval      = errors.New("start time must be before end time")
	ErrMisalignedTime       = errors.New("times must be aligned to the top of the hour")
	ErrOutsideGrid          = errors.New("interval is outside the booking grid")
	ErrDateMismatch         = errors.New("interval does not fall on the booking date")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrSlotInPast           = errors.New("requested slot has already started")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
)

// Booking reserves one turf for one calendar date over a half-open hour
// interval. Rows are never deleted; cancellation is a status change so the
// history survives.
type Booking struct {
	id            uuid.UUID
	turfID        uuid.UUID
	userID        uuid.UUID
	date          time.Time
	slot          TimeSlot
	status        Status
	paymentStatus PaymentStatus
	price         PriceBreakdown
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	turfID, userID uuid.UUID,
	date time.Time,
	slot TimeSlot,
	paymentStatus PaymentStatus,
	price PriceBreakdown,
) (*Booking, error) {
	if !paymentStatus.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}
	if !DateOf(slot.Start()).Equal(DateOf(date)) {
		return nil, ErrDateMismatch
	}

	return &Booking{
		id:            uuid.New(),
		turfID:        turfID,
		userID:        userID,
		date:          DateOf(date),
		slot:          slot,
		status:        StatusConfirmed,
		paymentStatus: paymentStatus,
		price:         price,
	}, nil
}

func ReconstructBooking(
	id, turfID, userID uuid.UUID,
	date time.Time,
	slot TimeSlot,
	status Status,
	paymentStatus PaymentStatus,
	price PriceBreakdown,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		turfID:        turfID,
		userID:        userID,
		date:          date,
		slot:          slot,
		status:        status,
		paymentStatus: paymentStatus,
		price:         price,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Cancel marks the booking cancelled. The row is preserved; only cancelled
// bookings stop blocking their slots.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) BlocksSlots() bool {
	return b.status.BlocksSlot()
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) TurfID() uuid.UUID            { return b.turfID }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) Date() time.Time              { return b.date }
func (b *Booking) Slot() TimeSlot               { return b.slot }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Price() PriceBreakdown        { return b.price }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
