package components

import (
	"booking-board/internal/infra/readstore"
	"booking-board/internal/infra/uow"
	"booking-board/internal/usecase/queries"
	"booking-board/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork (command side)
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Read stores (query side, pool-backed)
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewLockReadStore,
			fx.As(new(queries.LockReadStore)),
		),
	),
)
