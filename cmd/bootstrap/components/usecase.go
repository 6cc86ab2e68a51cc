package components

import (
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/config"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
	func(cfg config.Config) booking.HolidayCalendar {
		return booking.NewDateListCalendar(cfg.Booking.Holidays)
	},
	booking.NewPricingEngine,
	func(clk clock.Clock, engine *booking.PricingEngine, cfg config.Config) *booking.Factory {
		return booking.NewFactory(clk, engine, cfg.Booking.MaxDurationHours)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCouponDiscountResolver,
		commands.NewBookingCommands,
		commands.NewTicketCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewBookingQueries,
		queries.NewTicketQueries,
	),
)
