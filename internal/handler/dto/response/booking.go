package response

import (
	"time"

	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	TurfID          uuid.UUID `json:"turfId"`
	TurfName        string    `json:"turfName"`
	UserID          uuid.UUID `json:"userId"`
	Date            string    `json:"date"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	BaseCents       int64     `json:"baseCents"`
	ServiceFeeCents int64     `json:"serviceFeeCents"`
	BookingFeeCents int64     `json:"bookingFeeCents"`
	TotalCents      int64     `json:"totalCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	TurfID     uuid.UUID `json:"turfId"`
	TurfName   string    `json:"turfName"`
	Date       string    `json:"date"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		TurfID:          rm.TurfID,
		TurfName:        rm.TurfName,
		UserID:          rm.UserID,
		Date:            rm.Date.Format("2006-01-02"),
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Status:          rm.Status,
		PaymentStatus:   rm.PaymentStatus,
		BaseCents:       rm.BaseCents,
		ServiceFeeCents: rm.ServiceFeeCents,
		BookingFeeCents: rm.BookingFeeCents,
		TotalCents:      rm.TotalCents,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		TurfID:     rm.TurfID,
		TurfName:   rm.TurfName,
		Date:       rm.Date.Format("2006-01-02"),
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		Status:     rm.Status,
		TotalCents: rm.TotalCents,
		CreatedAt:  rm.CreatedAt,
	}
}
