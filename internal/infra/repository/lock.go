package repository

import (
	"context"

	"booking-board/internal/domain/lock"
	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/pkg/pgconv"
)

type LockRepository struct {
	db db.DBTX
}

func NewLockRepository(db db.DBTX) *LockRepository {
	return &LockRepository{db: db}
}

// Upsert writes the derived projection. The row is pure cache: every write
// here happens inside the same transaction as the ledger mutation (or the
// reconcile pass) it was derived from.
func (r *LockRepository) Upsert(ctx context.Context, p lock.Projection) error {
	const q = `
		INSERT INTO resource_locks (resource_id, locked, holder_id, since, slot_start, slot_end, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (resource_id) DO UPDATE
		SET locked = EXCLUDED.locked,
		    holder_id = EXCLUDED.holder_id,
		    since = EXCLUDED.since,
		    slot_start = EXCLUDED.slot_start,
		    slot_end = EXCLUDED.slot_end,
		    updated_at = now()`

	_, err := r.db.Exec(ctx, q,
		p.ResourceID,
		p.Locked,
		pgconv.UUIDPtrToPgtype(p.HolderID),
		pgconv.TimePtrToPgtype(p.Since),
		pgconv.TimePtrToPgtype(p.SlotStart),
		pgconv.TimePtrToPgtype(p.SlotEnd),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert lock projection", err)
	}

	return nil
}
