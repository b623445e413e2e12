package repository

import (
	"context"
	"time"

	"turfbook/internal/domain/booking"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// FindActiveForUpdate locks every non-cancelled booking row for the turf and
// date so the overlap check and the subsequent insert see the same state.
func (r *BookingRepository) FindActiveForUpdate(ctx context.Context, tx pgx.Tx, turfID uuid.UUID, date time.Time) ([]booking.TimeSlot, error) {
	const query = `
		SELECT start_time, end_time
		FROM bookings
		WHERE turf_id = $1 AND booking_date = $2 AND status <> 'cancelled'
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, turfID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active bookings", err)
	}
	defer rows.Close()

	var slots []booking.TimeSlot
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking interval", err)
		}
		slots = append(slots, booking.ReconstructTimeSlot(start.UTC(), end.UTC()))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active bookings", err)
	}

	return slots, nil
}

func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, turf_id, user_id, booking_date, start_time, end_time,
			status, payment_status,
			base_cents, service_fee_cents, booking_fee_cents, total_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	price := b.Price()

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		b.ID(),
		b.TurfID(),
		b.UserID(),
		pgconv.DateToPgtype(b.Date()),
		b.Slot().Start(),
		b.Slot().End(),
		string(b.Status()),
		string(b.PaymentStatus()),
		price.BaseCents(),
		price.ServiceFeeCents(),
		price.BookingFeeCents(),
		price.TotalCents(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, turf_id, user_id, booking_date, start_time, end_time,
		       status, payment_status,
		       base_cents, service_fee_cents, booking_fee_cents, total_cents,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	var (
		bookingID, turfID, userID                               uuid.UUID
		date, start, end, createdAt, updatedAt                  time.Time
		status, paymentStatus                                   string
		baseCents, serviceFeeCents, bookingFeeCents, totalCents int64
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&bookingID, &turfID, &userID, &date, &start, &end,
		&status, &paymentStatus,
		&baseCents, &serviceFeeCents, &bookingFeeCents, &totalCents,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return booking.ReconstructBooking(
		bookingID, turfID, userID,
		date.UTC(),
		booking.ReconstructTimeSlot(start.UTC(), end.UTC()),
		booking.Status(status),
		booking.PaymentStatus(paymentStatus),
		booking.ReconstructPriceBreakdown(baseCents, serviceFeeCents, bookingFeeCents, totalCents),
		createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status booking.Status) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}

	return nil
}
