package queries

import (
	"context"
	"time"

	"turfbook/internal/domain/user"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrAccessDenied    = errs.New("access denied")
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	TurfID          uuid.UUID `json:"turf_id"`
	TurfName        string    `json:"turf_name"`
	UserID          uuid.UUID `json:"user_id"`
	Date            time.Time `json:"date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	BaseCents       int64     `json:"base_cents"`
	ServiceFeeCents int64     `json:"service_fee_cents"`
	BookingFeeCents int64     `json:"booking_fee_cents"`
	TotalCents      int64     `json:"total_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	TurfID     uuid.UUID `json:"turf_id"`
	TurfName   string    `json:"turf_name"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type TurfView struct {
	ID               uuid.UUID `json:"id"`
	VenueID          uuid.UUID `json:"venue_id"`
	Name             string    `json:"name"`
	Sport            string    `json:"sport"`
	HourlyPriceCents int64     `json:"hourly_price_cents"`
	IsActive         bool      `json:"is_active"`
}

// BookedInterval is the minimal projection of a booking the occupancy
// computation needs.
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// FindActiveIntervals returns the intervals of every non-cancelled
	// booking for the turf and date.
	FindActiveIntervals(ctx context.Context, turfID uuid.UUID, date time.Time) ([]BookedInterval, error)
}

type TurfReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TurfView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses the actor check for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrAccessDenied
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to find user bookings")
	}
	return items, nil
}
