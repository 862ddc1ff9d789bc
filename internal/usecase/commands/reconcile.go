package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-board/internal/domain/lock"
	"booking-board/internal/infra"
	"booking-board/internal/pkg/clock"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

// LockReconciler keeps the resource_locks projection consistent with the
// ledger as time passes. It is invoked synchronously after every ledger
// mutation (via syncLockProjection inside the same transaction) and
// periodically via Tick so interval boundaries are crossed without write
// traffic. Both paths are idempotent: re-running with no intervening
// mutation or clock advance yields the same projection.
type LockReconciler interface {
	SyncResource(ctx context.Context, resourceID uuid.UUID) error
	Tick(ctx context.Context) error
}

type lockReconcilerImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewLockReconciler(uow shared.UnitOfWork, clock clock.Clock) LockReconciler {
	return &lockReconcilerImpl{
		uow:   uow,
		clock: clock,
	}
}

func (r *lockReconcilerImpl) SyncResource(ctx context.Context, resourceID uuid.UUID) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ResourceByID(ctx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		// Serialize against create/cancel so a reconcile pass never locks a
		// resource to a reservation that was just canceled.
		if err := tx.Resources().AcquireSerializationLock(ctx, snapshotToResource(snap).SerializationRoot()); err != nil {
			return err
		}
		return syncLockProjection(ctx, tx, resourceID, r.clock.Now())
	})
}

// Tick reconciles every resource that could need a transition. Per-resource
// failures are logged and left for the next tick; a missed pass only delays
// the projection update, it never corrupts it.
func (r *lockReconcilerImpl) Tick(ctx context.Context) error {
	ids, err := r.uow.CommandReads().ResourceIDsNeedingReconcile(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, id := range ids {
		if err := r.SyncResource(ctx, id); err != nil {
			failed++
			slog.Error("lock reconcile failed for resource",
				"resource_id", id,
				"error", err.Error())
		}
	}
	if failed > 0 {
		slog.Warn("lock reconcile tick finished with failures",
			"resources", len(ids),
			"failed", failed)
	}

	return nil
}

// syncLockProjection is the shared projection pass: complete every active
// reservation whose interval has ended, then re-derive and store the lock
// row from what remains. Runs inside the caller's transaction.
func syncLockProjection(ctx context.Context, tx shared.Tx, resourceID uuid.UUID, now time.Time) error {
	if _, err := tx.Reservations().CompleteExpired(ctx, resourceID, now); err != nil {
		return err
	}

	snaps, err := tx.Reads().ActiveClaims(ctx, resourceID)
	if err != nil {
		return err
	}

	claims := make([]lock.Claim, len(snaps))
	for i, s := range snaps {
		claims[i] = lock.Claim{
			ReservationID: s.ID,
			RequesterID:   s.RequesterID,
			Start:         s.Start,
			End:           s.End,
		}
	}

	return tx.Locks().Upsert(ctx, lock.Derive(resourceID, claims, now))
}
