package request

import (
	"errors"
	"time"

	"turfbook/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format on the hour boundary")

type CreateBookingRequest struct {
	TurfID          uuid.UUID `json:"turf_id" binding:"required"`
	Date            string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime       string    `json:"start_time" binding:"required,datetime=15:04"`
	EndTime         string    `json:"end_time" binding:"required"`
	BaseCents       int64     `json:"base_cents" binding:"min=0"`
	ServiceFeeCents int64     `json:"service_fee_cents" binding:"min=0"`
	BookingFeeCents int64     `json:"booking_fee_cents" binding:"min=0"`
	TotalCents      int64     `json:"total_cents" binding:"min=0"`
	PaymentStatus   string    `json:"payment_status" binding:"required,oneof=paid pending"`
}

// ToParams composes the wall-clock date and times into UTC instants.
// "24:00" is accepted as an end time meaning midnight at the end of the date,
// which no plain time layout can express.
func (r CreateBookingRequest) ToParams() (commands.CreateBookingParams, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, time.UTC)
	if err != nil {
		return commands.CreateBookingParams{}, ErrInvalidTimeFormat
	}

	start, err := parseTimeOfDay(date, r.StartTime)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}

	end, err := parseTimeOfDay(date, r.EndTime)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}

	return commands.CreateBookingParams{
		TurfID:          r.TurfID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		BaseCents:       r.BaseCents,
		ServiceFeeCents: r.ServiceFeeCents,
		BookingFeeCents: r.BookingFeeCents,
		TotalCents:      r.TotalCents,
		PaymentStatus:   r.PaymentStatus,
	}, nil
}

func parseTimeOfDay(date time.Time, value string) (time.Time, error) {
	if value == "24:00" {
		return date.Add(24 * time.Hour), nil
	}

	t, err := time.ParseInLocation("15:04", value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}

	return date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
