package components

import (
	"turfbook/internal/infra/readstore"
	repo_impl "turfbook/internal/infra/repository"
	"turfbook/internal/usecase/commands"
	"turfbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewTurfReadStore,
			fx.As(new(queries.TurfReadStore)),
			fx.As(new(commands.TurfRepository)),
		),
	),
)
