//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"turfbook/internal/domain/booking"
	"turfbook/internal/infra"
	"turfbook/internal/pkg/clock"
	"turfbook/internal/usecase/commands"
	"turfbook/internal/usecase/queries"
	"turfbook/tests/common/builder"
	commandsmock "turfbook/tests/mock/commands"
	queriesmock "turfbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixture wires the command service with strict mocks and no database pool.
// Any unexpected store call fails the test, which is exactly the point for
// the validation-ordering cases.
type commandsFixture struct {
	bookingRepo     *commandsmock.MockBookingRepository
	turfRepo        *commandsmock.MockTurfRepository
	idempotencyRepo *commandsmock.MockIdempotencyRepository
	bookingQueries  *queriesmock.MockBookingQueries
	clock           *clock.MockClock
	sut             commands.BookingCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	ctrl := gomock.NewController(t)
	bookingRepo := commandsmock.NewMockBookingRepository(ctrl)
	turfRepo := commandsmock.NewMockTurfRepository(ctrl)
	idempotencyRepo := commandsmock.NewMockIdempotencyRepository(ctrl)
	bookingQueries := queriesmock.NewMockBookingQueries(ctrl)

	grid, err := booking.NewGrid(6, 24)
	require.NoError(t, err)
	clk := clock.NewMockClock(time.Date(2030, 5, 9, 12, 0, 0, 0, time.UTC))
	factory := booking.NewFactory(grid, clk)

	return &commandsFixture{
		bookingRepo:     bookingRepo,
		turfRepo:        turfRepo,
		idempotencyRepo: idempotencyRepo,
		bookingQueries:  bookingQueries,
		clock:           clk,
		sut: commands.NewBookingCommands(
			bookingRepo, turfRepo, idempotencyRepo, bookingQueries, factory, nil, clk,
		),
	}
}

func TestCreateBookingShapeValidation(t *testing.T) {
	userID := uuid.New()
	key := uuid.New()

	cases := []struct {
		name   string
		mutate func(*builder.BookingBuilder)
	}{
		{
			name: "start equals end",
			mutate: func(b *builder.BookingBuilder) {
				b.WithSlot(18, 18)
			},
		},
		{
			name: "start after end",
			mutate: func(b *builder.BookingBuilder) {
				b.WithSlot(20, 18)
			},
		},
		{
			name: "misaligned start time",
			mutate: func(b *builder.BookingBuilder) {
				b.StartTime = b.StartTime.Add(30 * time.Minute)
			},
		},
		{
			name: "unknown payment status",
			mutate: func(b *builder.BookingBuilder) {
				b.WithPaymentStatus("refunded")
			},
		},
		{
			name: "price total mismatch",
			mutate: func(b *builder.BookingBuilder) {
				b.WithPrice(400000, 20000, 10000, 999)
			},
		},
		{
			name: "negative fee",
			mutate: func(b *builder.BookingBuilder) {
				b.WithPrice(400000, -1, 0, 399999)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// No EXPECT calls anywhere: a malformed request must be rejected
			// before the idempotency claim, the turf lookup, or any other
			// store access happens.
			f := newCommandsFixture(t)
			params := builder.NewBookingBuilder().With(c.mutate).BuildCreateParams()

			result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

			require.ErrorIs(t, err, commands.ErrInvalidBooking)
			assert.Nil(t, result)
		})
	}
}

func TestCreateBookingIdempotency(t *testing.T) {
	userID := uuid.New()
	key := uuid.New()

	t.Run("completed key replays the stored booking", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewBookingBuilder().WithUserID(userID)
		params := b.BuildCreateParams()
		storedView := b.BuildView()

		var capturedHash string
		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _, hash string, _ time.Time) (bool, error) {
				capturedHash = hash
				return false, nil
			})
		f.idempotencyRepo.EXPECT().Get(gomock.Any(), key, userID).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{
					Key:             key,
					UserID:          userID,
					Status:          "completed",
					RequestHash:     capturedHash,
					ResultBookingID: &storedView.ID,
				}, nil
			})
		f.bookingQueries.EXPECT().GetByIDSystem(gomock.Any(), storedView.ID).Return(storedView, nil)

		result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, storedView.ID, result.Booking.ID)
	})

	t.Run("completed key with different payload is a duplicate", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()
		storedID := uuid.New()

		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).Return(false, nil)
		f.idempotencyRepo.EXPECT().Get(gomock.Any(), key, userID).Return(&commands.IdempotencyRecord{
			Key:             key,
			UserID:          userID,
			Status:          "completed",
			RequestHash:     "some-other-request",
			ResultBookingID: &storedID,
		}, nil)

		result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

		require.ErrorIs(t, err, commands.ErrDuplicateBooking)
		assert.Nil(t, result)
	})

	t.Run("processing key with different payload is a duplicate", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()

		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).Return(false, nil)
		f.idempotencyRepo.EXPECT().Get(gomock.Any(), key, userID).Return(&commands.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			Status:      "processing",
			RequestHash: "some-other-request",
		}, nil)

		result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

		require.ErrorIs(t, err, commands.ErrDuplicateBooking)
		assert.Nil(t, result)
	})

	t.Run("lost claim with matching payload reports in progress", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()

		// The same request retried while the original is still processing
		// must not be admitted a second time.
		var capturedHash string
		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _, hash string, _ time.Time) (bool, error) {
				capturedHash = hash
				return false, nil
			})
		f.idempotencyRepo.EXPECT().Get(gomock.Any(), key, userID).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{
					Key:         key,
					UserID:      userID,
					Status:      "processing",
					RequestHash: capturedHash,
				}, nil
			})

		result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

		require.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
		assert.Nil(t, result)
	})

	t.Run("idempotency store failure is surfaced, not ignored", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()

		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, infra.WrapRepoErr("insert failed", assert.AnError))

		result, err := f.sut.CreateBooking(context.Background(), params, userID, key)

		require.ErrorIs(t, err, commands.ErrIdempotencyCheckFailed)
		assert.Nil(t, result)
	})
}

func TestCreateBookingTurfValidation(t *testing.T) {
	userID := uuid.New()
	key := uuid.New()

	expectFreshClaim := func(f *commandsFixture) {
		f.idempotencyRepo.EXPECT().TryInsert(gomock.Any(), key, userID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(true, nil)
	}

	t.Run("unknown turf", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()

		expectFreshClaim(f)
		f.turfRepo.EXPECT().FindByID(gomock.Any(), params.TurfID).
			Return(nil, infra.WrapRepoErr("turf not found", assert.AnError, infra.KindNotFound))

		_, err := f.sut.CreateBooking(context.Background(), params, userID, key)
		require.ErrorIs(t, err, commands.ErrTurfNotFound)
	})

	t.Run("inactive turf rejects admission", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewBookingBuilder()
		params := b.BuildCreateParams()
		turfView := b.BuildTurfView()
		turfView.IsActive = false

		expectFreshClaim(f)
		f.turfRepo.EXPECT().FindByID(gomock.Any(), params.TurfID).Return(turfView, nil)

		_, err := f.sut.CreateBooking(context.Background(), params, userID, key)
		require.ErrorIs(t, err, commands.ErrTurfInactive)
	})

	t.Run("turf store failure maps to unavailable", func(t *testing.T) {
		f := newCommandsFixture(t)
		params := builder.NewBookingBuilder().BuildCreateParams()

		expectFreshClaim(f)
		f.turfRepo.EXPECT().FindByID(gomock.Any(), params.TurfID).
			Return(nil, infra.WrapRepoErr("connection lost", assert.AnError))

		_, err := f.sut.CreateBooking(context.Background(), params, userID, key)
		require.ErrorIs(t, err, commands.ErrStoreUnavailable)
	})

	t.Run("slot in the past is invalid before any transaction", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewBookingBuilder()
		params := b.BuildCreateParams()
		turfView := b.BuildTurfView()

		f.clock.Set(params.StartTime.Add(time.Minute))
		expectFreshClaim(f)
		f.turfRepo.EXPECT().FindByID(gomock.Any(), params.TurfID).Return(turfView, nil)

		_, err := f.sut.CreateBooking(context.Background(), params, userID, key)
		require.ErrorIs(t, err, commands.ErrInvalidBooking)
	})
}

func TestCreateBookingContiguityProperty(t *testing.T) {
	// The request carries one half-open interval, so a booked block is
	// contiguous by construction; the grid utility confirms the expansion.
	grid, err := booking.NewGrid(6, 24)
	require.NoError(t, err)

	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	slot, err := booking.NewTimeSlot(day.Add(18*time.Hour), day.Add(20*time.Hour))
	require.NoError(t, err)

	contiguous, err := grid.IsContiguous(slot.SlotStarts())
	require.NoError(t, err)
	assert.True(t, contiguous)
}

func TestQueriesGetByIDAccessControl(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("owner can read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		view := builder.NewBookingBuilder().WithUserID(owner).BuildView()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		sut := queries.NewBookingQueries(store)
		got, err := sut.GetByID(context.Background(), owner, "player", view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		view := builder.NewBookingBuilder().WithUserID(owner).BuildView()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		sut := queries.NewBookingQueries(store)
		_, err := sut.GetByID(context.Background(), stranger, "player", view.ID)
		require.ErrorIs(t, err, queries.ErrAccessDenied)
	})

	t.Run("admin can read any booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		view := builder.NewBookingBuilder().WithUserID(owner).BuildView()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		sut := queries.NewBookingQueries(store)
		got, err := sut.GetByID(context.Background(), stranger, "admin", view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})
}
