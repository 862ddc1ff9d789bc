package readstore

import (
	"context"

	"booking-board/internal/domain/lock"
	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LockReadStore struct {
	db db.DBTX
}

func NewLockReadStore(db db.DBTX) *LockReadStore {
	return &LockReadStore{db: db}
}

// FindByResourceID reads the materialized projection row. A resource without
// a row has simply never been locked; that is the unlocked projection, not an
// error.
func (r *LockReadStore) FindByResourceID(ctx context.Context, resourceID uuid.UUID) (lock.Projection, error) {
	const q = `
		SELECT resource_id, locked, holder_id, since, slot_start, slot_end
		FROM resource_locks
		WHERE resource_id = $1`

	var (
		p        lock.Projection
		holderID pgtype.UUID
		since    pgtype.Timestamptz
		slotFrom pgtype.Timestamptz
		slotTo   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, resourceID).Scan(&p.ResourceID, &p.Locked, &holderID, &since, &slotFrom, &slotTo)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return lock.Unlocked(resourceID), nil
		}
		return lock.Projection{}, infra.WrapRepoErr("failed to find lock projection", err)
	}

	p.HolderID = pgconv.UUIDPtrFromPgtype(holderID)
	p.Since = pgconv.TimePtrFromPgtype(since)
	p.SlotStart = pgconv.TimePtrFromPgtype(slotFrom)
	p.SlotEnd = pgconv.TimePtrFromPgtype(slotTo)

	return p, nil
}
