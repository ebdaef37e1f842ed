package components

import (
	"secondhand-market/internal/pkg/clock"
	"secondhand-market/internal/usecase/commands"
	"secondhand-market/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewTradeCommands,
		queries.NewTradeQueries,
	),
)
