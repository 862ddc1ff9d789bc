package readstore

import (
	"context"

	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/pkg/pgconv"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ResourceReadStore reads the resource directory. The engine treats it as
// reference data; rows are written by external CRUD only.
type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(db db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: db}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	const q = `
		SELECT id, name, parent_id
		FROM resources
		WHERE id = $1`

	var (
		snap     shared.ResourceSnapshot
		parentID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Name, &parentID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	snap.ParentID = pgconv.UUIDPtrFromPgtype(parentID)

	return &snap, nil
}

func (r *ResourceReadStore) ChildrenOf(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT id
		FROM resources
		WHERE parent_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find child resources", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var childID uuid.UUID
		if err := rows.Scan(&childID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan child resource", err)
		}
		ids = append(ids, childID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate child resources", err)
	}

	return ids, nil
}
