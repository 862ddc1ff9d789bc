package readstore

import (
	"context"
	"time"

	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/pkg/pgconv"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

const reservationColumns = `id, resource_id, requester_id, start_at, end_at, status, created_at`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1`

	snap, err := scanReservation(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return snap, nil
}

// ActiveOverlapping implements the conflict predicate in SQL: two half-open
// intervals conflict iff s1 < e2 AND s2 < e1. Ordered by start then id so the
// first row is the one named in a Conflict error.
func (r *ReservationReadStore) ActiveOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*shared.ReservationSnapshot, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = $1
		  AND status = 'active'
		  AND start_at < $3
		  AND $2 < end_at
		ORDER BY start_at, id`

	return r.queryReservations(ctx, q, resourceID, start, end)
}

func (r *ReservationReadStore) ActiveClaims(ctx context.Context, resourceID uuid.UUID) ([]*shared.ReservationSnapshot, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = $1
		  AND status = 'active'
		ORDER BY start_at, id`

	return r.queryReservations(ctx, q, resourceID)
}

func (r *ReservationReadStore) ActiveCountForRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) (int, error) {
	const q = `
		SELECT count(*)
		FROM reservations
		WHERE requester_id = $1
		  AND status = 'active'
		  AND end_at > $2`

	var count int
	if err := r.db.QueryRow(ctx, q, requesterID, now).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}

	return count, nil
}

// Schedule returns every non-canceled reservation of the resource for
// conflict visualization, future and past alike.
func (r *ReservationReadStore) Schedule(ctx context.Context, resourceID uuid.UUID) ([]*shared.ReservationSnapshot, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = $1
		  AND status <> 'canceled'
		ORDER BY start_at, id`

	return r.queryReservations(ctx, q, resourceID)
}

// ResourceIDsNeedingReconcile feeds the periodic tick: resources with any
// active reservation, plus resources whose lock row still reads locked (a
// previously failed sync leaves one behind).
func (r *ReservationReadStore) ResourceIDsNeedingReconcile(ctx context.Context) ([]uuid.UUID, error) {
	const q = `
		SELECT DISTINCT resource_id FROM reservations WHERE status = 'active'
		UNION
		SELECT resource_id FROM resource_locks WHERE locked`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources needing reconcile", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource ids", err)
	}

	return ids, nil
}

func (r *ReservationReadStore) queryReservations(ctx context.Context, q string, args ...any) ([]*shared.ReservationSnapshot, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var result []*shared.ReservationSnapshot
	for rows.Next() {
		snap, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*shared.ReservationSnapshot, error) {
	var snap shared.ReservationSnapshot
	err := row.Scan(
		&snap.ID,
		&snap.ResourceID,
		&snap.RequesterID,
		&snap.Start,
		&snap.End,
		&snap.Status,
		&snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
