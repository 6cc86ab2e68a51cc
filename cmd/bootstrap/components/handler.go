package components

import (
	"hall-booking/internal/handler"
	"hall-booking/internal/handler/api"
	"hall-booking/internal/handler/middleware"
	"hall-booking/internal/pkg/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewBookingHandler,
		api.NewTicketHandler,
		api.NewFreeTicketHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(
		metrics.Register,
		handler.NewRouter,
	),
)
