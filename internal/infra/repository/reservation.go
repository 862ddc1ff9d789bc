package repository

import (
	"context"
	"time"

	"booking-board/internal/domain/reservation"
	"booking-board/internal/infra"
	"booking-board/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const q = `
		INSERT INTO reservations (id, resource_id, requester_id, start_at, end_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, q,
		res.ID(),
		res.ResourceID(),
		res.RequesterID(),
		res.Slot().Start(),
		res.Slot().End(),
		res.Status().String(),
		res.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	return nil
}

func (r *ReservationRepository) MarkCanceled(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `
		UPDATE reservations
		SET status = 'canceled', canceled_at = $2
		WHERE id = $1 AND status = 'active'`

	tag, err := r.db.Exec(ctx, q, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		// canceled and completed are terminal; a zero-row update means the
		// reservation was already out of active
		return infra.WrapRepoErr("reservation is not active", nil, infra.KindConflict)
	}

	return nil
}

func (r *ReservationRepository) CompleteExpired(ctx context.Context, resourceID uuid.UUID, now time.Time) (int64, error) {
	const q = `
		UPDATE reservations
		SET status = 'completed', completed_at = $2
		WHERE resource_id = $1 AND status = 'active' AND end_at <= $2`

	tag, err := r.db.Exec(ctx, q, resourceID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete expired reservations", err)
	}

	return tag.RowsAffected(), nil
}
