package readstore

import (
	"context"
	"time"

	"turfbook/internal/infra"
	"turfbook/internal/pkg/pgconv"
	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.turf_id, t.name, b.user_id, b.booking_date,
		       b.start_time, b.end_time, b.status, b.payment_status,
		       b.base_cents, b.service_fee_cents, b.booking_fee_cents, b.total_cents,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN turfs t ON t.id = b.turf_id
		WHERE b.id = $1`

	var view queries.BookingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.TurfID, &view.TurfName, &view.UserID, &view.Date,
		&view.StartTime, &view.EndTime, &view.Status, &view.PaymentStatus,
		&view.BaseCents, &view.ServiceFeeCents, &view.BookingFeeCents, &view.TotalCents,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	normalizeBookingView(&view)
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.turf_id, t.name, b.booking_date,
		       b.start_time, b.end_time, b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN turfs t ON t.id = b.turf_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.TurfID, &item.TurfName, &item.Date,
			&item.StartTime, &item.EndTime, &item.Status, &item.TotalCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.Date = item.Date.UTC()
		item.StartTime = item.StartTime.UTC()
		item.EndTime = item.EndTime.UTC()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read user bookings", err)
	}

	return result, nil
}

// FindActiveIntervals feeds the occupancy computation. Cancelled bookings are
// filtered here so callers never see released slots.
func (r *BookingReadStore) FindActiveIntervals(ctx context.Context, turfID uuid.UUID, date time.Time) ([]queries.BookedInterval, error) {
	const query = `
		SELECT start_time, end_time
		FROM bookings
		WHERE turf_id = $1 AND booking_date = $2 AND status <> 'cancelled'
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, turfID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active intervals", err)
	}
	defer rows.Close()

	var intervals []queries.BookedInterval
	for rows.Next() {
		var iv queries.BookedInterval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked interval", err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active intervals", err)
	}

	return intervals, nil
}

func normalizeBookingView(view *queries.BookingView) {
	view.Date = view.Date.UTC()
	view.StartTime = view.StartTime.UTC()
	view.EndTime = view.EndTime.UTC()
}
