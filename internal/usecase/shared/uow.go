package shared

import (
	"context"
	"time"

	"booking-board/internal/domain/lock"
	"booking-board/internal/domain/reservation"
	"booking-board/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the single serialization point of the engine. Within runs fn
// in a serializable transaction and retries the whole decide-and-commit
// sequence on serialization failures, because the correct outcome may depend
// on the latest committed state.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: pool-backed reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Resources() ResourceRepository
	Locks() LockRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	MarkCanceled(ctx context.Context, id uuid.UUID, at time.Time) error
	// CompleteExpired flips every active reservation of the resource whose
	// interval has ended; returns the number of rows transitioned.
	CompleteExpired(ctx context.Context, resourceID uuid.UUID, now time.Time) (int64, error)
}

type ResourceRepository interface {
	// AcquireSerializationLock takes a row lock on the hierarchy root so
	// create, cancel and reconcile on the same tree run one at a time.
	AcquireSerializationLock(ctx context.Context, resourceID uuid.UUID) error
}

type LockRepository interface {
	Upsert(ctx context.Context, p lock.Projection) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
