package components

import (
	"hall-booking/internal/infra"
	"hall-booking/internal/infra/cache"
	"hall-booking/internal/infra/readstore"
	"hall-booking/internal/infra/repository"
	"hall-booking/internal/infra/uow"
	"hall-booking/internal/pkg/config"
	"hall-booking/internal/usecase/queries"
	"hall-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Pool-backed repositories. Idempotency claims must commit
		// independently of the reservation transaction; notification
		// jobs are enqueued post-commit, best-effort.
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
		repository.NewNotificationRepository,
		// Read stores
		fx.Annotate(
			readstore.NewHallReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewTicketReadStore,
			fx.As(new(queries.TicketReadStore)),
		),
		// Slot cache
		fx.Annotate(
			NewSlotCache,
			fx.As(new(queries.SlotCache)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}

func NewSlotCache(client *redis.Client, cfg config.Config) *cache.SlotCache {
	return cache.NewSlotCache(client, cfg.Redis.SlotTTL)
}
