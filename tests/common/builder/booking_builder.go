//go:build unit || e2e

package builder

import (
	"time"

	dombooking "turfbook/internal/domain/booking"
	reqdto "turfbook/internal/handler/dto/request"
	"turfbook/internal/usecase/commands"
	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder produces a two-hour evening booking on a fixed future date
// so tests stay deterministic.
type BookingBuilder struct {
	TurfID          uuid.UUID
	TurfName        string
	UserID          uuid.UUID
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	Status          string
	PaymentStatus   string
	BaseCents       int64
	ServiceFeeCents int64
	BookingFeeCents int64
	TotalCents      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	date := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	return &BookingBuilder{
		TurfID:          uuid.New(),
		TurfName:        "Center Pitch",
		UserID:          uuid.New(),
		Date:            date,
		StartTime:       date.Add(18 * time.Hour),
		EndTime:         date.Add(20 * time.Hour),
		Status:          "confirmed",
		PaymentStatus:   "paid",
		BaseCents:       400000,
		ServiceFeeCents: 20000,
		BookingFeeCents: 10000,
		TotalCents:      430000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	price, err := dombooking.NewPriceBreakdown(b.BaseCents, b.ServiceFeeCents, b.BookingFeeCents, b.TotalCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.TurfID, b.UserID, b.Date, slot, dombooking.PaymentStatus(b.PaymentStatus), price)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		TurfID:          b.TurfID,
		Date:            b.Date.Format("2006-01-02"),
		StartTime:       b.StartTime.Format("15:04"),
		EndTime:         b.EndTime.Format("15:04"),
		BaseCents:       b.BaseCents,
		ServiceFeeCents: b.ServiceFeeCents,
		BookingFeeCents: b.BookingFeeCents,
		TotalCents:      b.TotalCents,
		PaymentStatus:   b.PaymentStatus,
	}
}

func (b *BookingBuilder) BuildCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		TurfID:          b.TurfID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		BaseCents:       b.BaseCents,
		ServiceFeeCents: b.ServiceFeeCents,
		BookingFeeCents: b.BookingFeeCents,
		TotalCents:      b.TotalCents,
		PaymentStatus:   b.PaymentStatus,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		TurfID:          b.TurfID,
		TurfName:        b.TurfName,
		UserID:          b.UserID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		BaseCents:       b.BaseCents,
		ServiceFeeCents: b.ServiceFeeCents,
		BookingFeeCents: b.BookingFeeCents,
		TotalCents:      b.TotalCents,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:         uuid.New(),
		TurfID:     b.TurfID,
		TurfName:   b.TurfName,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		TotalCents: b.TotalCents,
		CreatedAt:  b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildTurfView() *queries.TurfView {
	return &queries.TurfView{
		ID:               b.TurfID,
		VenueID:          uuid.New(),
		Name:             b.TurfName,
		Sport:            "football",
		HourlyPriceCents: 200000,
		IsActive:         true,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithTurfID(turfID uuid.UUID) *BookingBuilder {
	b.TurfID = turfID
	return b
}

func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithSlot(startHour, endHour int) *BookingBuilder {
	b.StartTime = b.Date.Add(time.Duration(startHour) * time.Hour)
	b.EndTime = b.Date.Add(time.Duration(endHour) * time.Hour)
	return b
}

func (b *BookingBuilder) WithDate(date time.Time) *BookingBuilder {
	startHour := b.StartTime.Sub(b.Date)
	endHour := b.EndTime.Sub(b.Date)
	b.Date = date
	b.StartTime = date.Add(startHour)
	b.EndTime = date.Add(endHour)
	return b
}

func (b *BookingBuilder) WithPaymentStatus(status string) *BookingBuilder {
	b.PaymentStatus = status
	return b
}

func (b *BookingBuilder) WithPrice(base, serviceFee, bookingFee, total int64) *BookingBuilder {
	b.BaseCents = base
	b.ServiceFeeCents = serviceFee
	b.BookingFeeCents = bookingFee
	b.TotalCents = total
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}
