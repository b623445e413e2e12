package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"turfbook/internal/domain/booking"
	"turfbook/internal/domain/turf"
	"turfbook/internal/domain/user"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/clock"
	"turfbook/internal/pkg/errs"
	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTurfNotFound           = errs.New("turf not found")
	ErrTurfInactive           = errs.New("turf is not accepting bookings")
	ErrInvalidBooking         = errs.New("invalid booking request")
	ErrSlotConflict           = errs.New("time slot conflict")
	ErrStoreUnavailable       = errs.New("booking store unavailable")
	ErrBookingNotFound        = errs.New("booking not found")
	ErrAccessDenied           = errs.New("access denied")
	ErrAlreadyCancelled       = errs.New("booking is already cancelled")
	ErrIdempotencyKeyRequired = errs.New("idempotency-key header required")
	ErrDuplicateBooking       = errs.New("duplicate booking request")
	ErrIdempotencyInProgress  = errs.New("booking request is being processed")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

type CreateBookingParams struct {
	TurfID          uuid.UUID `json:"turf_id"`
	Date            time.Time `json:"date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	BaseCents       int64     `json:"base_cents"`
	ServiceFeeCents int64     `json:"service_fee_cents"`
	BookingFeeCents int64     `json:"booking_fee_cents"`
	TotalCents      int64     `json:"total_cents"`
	PaymentStatus   string    `json:"payment_status"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BookingRepository interface {
	// FindActiveForUpdate locks and returns the intervals of every
	// non-cancelled booking for the turf and date inside tx.
	FindActiveForUpdate(ctx context.Context, tx pgx.Tx, turfID uuid.UUID, date time.Time) ([]booking.TimeSlot, error)
	Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error)
	FindForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status booking.Status) error
}

type TurfRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.TurfView, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key with a processing record and reports whether
	// this caller won the claim.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx pgx.Tx, key, userID uuid.UUID, resultBookingID uuid.UUID) error
}

type BookingCommands interface {
	// CreateBooking is the only path that creates a booking row. It
	// re-derives occupancy from committed state inside its own transaction;
	// any availability view the client used is treated as a hint only.
	CreateBooking(ctx context.Context, params CreateBookingParams, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo     BookingRepository
	turfRepo        TurfRepository
	idempotencyRepo IdempotencyRepository
	bookingQueries  queries.BookingQueries
	factory         *booking.Factory
	db              *pgxpool.Pool
	clock           clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	idempotencyRepo IdempotencyRepository,
	bookingQueries queries.BookingQueries,
	factory *booking.Factory,
	db *pgxpool.Pool,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:     bookingRepo,
		turfRepo:        turfRepo,
		idempotencyRepo: idempotencyRepo,
		bookingQueries:  bookingQueries,
		factory:         factory,
		db:              db,
		clock:           clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	// Shape checks run before any store access: a malformed interval must
	// never cost a round trip.
	slot, paymentStatus, price, err := c.validateShape(params)
	if err != nil {
		return nil, err
	}

	requestHash := c.calculateRequestHash(params)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	turfEntity, err := c.validateAndGetTurf(ctx, params.TurfID)
	if err != nil {
		return nil, err
	}

	bookingEntity, err := c.factory.CreateBooking(turfEntity, userID, params.Date, slot, paymentStatus, price)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}

	view, err := c.admit(ctx, bookingEntity, idempotencyKey, userID)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (c *bookingCommandsImpl) validateShape(params CreateBookingParams) (booking.TimeSlot, booking.PaymentStatus, booking.PriceBreakdown, error) {
	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return booking.TimeSlot{}, "", booking.PriceBreakdown{}, errs.Mark(err, ErrInvalidBooking)
	}

	paymentStatus, err := booking.NewPaymentStatus(params.PaymentStatus)
	if err != nil {
		return booking.TimeSlot{}, "", booking.PriceBreakdown{}, errs.Mark(err, ErrInvalidBooking)
	}

	price, err := booking.NewPriceBreakdown(params.BaseCents, params.ServiceFeeCents, params.BookingFeeCents, params.TotalCents)
	if err != nil {
		return booking.TimeSlot{}, "", booking.PriceBreakdown{}, errs.Mark(err, ErrInvalidBooking)
	}

	return slot, paymentStatus, price, nil
}

func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	claimed, err := c.idempotencyRepo.TryInsert(ctx, idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := c.idempotencyRepo.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	// A key reused with a different payload is a client bug, not a replay.
	if existing.RequestHash != requestHash {
		return nil, ErrDuplicateBooking
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		// The original request is still in flight; the client retried too
		// early. Admitting again here would race the in-flight attempt.
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) validateAndGetTurf(ctx context.Context, turfID uuid.UUID) (*turf.Turf, error) {
	turfView, err := c.turfRepo.FindByID(ctx, turfID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTurfNotFound
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	turfEntity, err := turf.NewTurf(
		turfView.ID,
		turfView.VenueID,
		turfView.Name,
		turfView.Sport,
		turfView.HourlyPriceCents,
		turfView.IsActive,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}

	if !turfEntity.IsActive() {
		return nil, ErrTurfInactive
	}

	return turfEntity, nil
}

// admit runs the conflict check and the insert as one serializable
// transaction so a racing admission for the same turf and date fails at
// commit rather than slipping past a stale check. The store's exclusion
// constraint backs this up.
func (c *bookingCommandsImpl) admit(
	ctx context.Context,
	bookingEntity *booking.Booking,
	idempotencyKey, userID uuid.UUID,
) (*queries.BookingView, error) {
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	existing, err := c.bookingRepo.FindActiveForUpdate(ctx, tx, bookingEntity.TurfID(), bookingEntity.Date())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	requested := bookingEntity.Slot()
	for _, taken := range existing {
		if requested.Overlaps(taken) {
			return nil, ErrSlotConflict
		}
	}

	bookingID, err := c.bookingRepo.Create(ctx, tx, bookingEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if err := c.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, bookingID); err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		wrapped := infra.WrapRepoErr("failed to commit booking", commitErr)
		if infra.IsKind(wrapped, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(wrapped, ErrStoreUnavailable)
	}

	// Read-after-write: return the full view from the read store.
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	return view, nil
}

func (c *bookingCommandsImpl) CancelBooking(
	ctx context.Context,
	id, actorID uuid.UUID,
	actorRole user.Role,
) (*queries.BookingView, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	bookingEntity, err := c.bookingRepo.FindForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if bookingEntity.UserID() != actorID && actorRole != user.RoleAdmin {
		return nil, ErrAccessDenied
	}

	if err := bookingEntity.Cancel(); err != nil {
		return nil, errs.Mark(err, ErrAlreadyCancelled)
	}

	if err := c.bookingRepo.UpdateStatus(ctx, tx, id, booking.StatusCancelled); err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrStoreUnavailable)
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) calculateRequestHash(params CreateBookingParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
