package components

import (
	"secondhand-market/internal/handler"
	"secondhand-market/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
	),
	fx.Invoke(
		handler.NewRouter,
	),
)
