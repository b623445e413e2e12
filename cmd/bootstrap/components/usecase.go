package components

import (
	"turfbook/internal/domain/booking"
	"turfbook/internal/pkg/clock"
	"turfbook/internal/pkg/config"
	"turfbook/internal/usecase"
	"turfbook/internal/usecase/commands"
	"turfbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewGrid,
	booking.NewFactory,
)

func NewGrid(cfg config.Config) (booking.Grid, error) {
	return booking.NewGrid(cfg.Booking.GridOpenHour, cfg.Booking.GridCloseHour)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
