package components

import (
	"secondhand-market/internal/infra/readstore"
	"secondhand-market/internal/infra/uow"
	"secondhand-market/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			newReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

func newReservationReadStore(pool *pgxpool.Pool) *readstore.ReservationReadStore {
	return readstore.NewReservationReadStore(pool)
}
