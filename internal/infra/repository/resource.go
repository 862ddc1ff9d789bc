package repository

import (
	"context"

	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(db db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// AcquireSerializationLock row-locks the hierarchy root so that concurrent
// create/cancel/reconcile on the same resource tree execute one at a time.
// The lock is released when the surrounding transaction ends.
func (r *ResourceRepository) AcquireSerializationLock(ctx context.Context, resourceID uuid.UUID) error {
	const q = `SELECT id FROM resources WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, resourceID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock resource row", err)
	}

	return nil
}
