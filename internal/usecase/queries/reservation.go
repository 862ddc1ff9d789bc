package queries

import (
	"context"
	"time"

	"booking-board/internal/domain/lock"
	"booking-board/internal/infra"
	"booking-board/internal/pkg/clock"
	"booking-board/internal/pkg/config"
	"booking-board/internal/pkg/errs"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrResourceNotFound = errs.New("resource not found")

// Read models (DTO for read side)
type LockProjectionView struct {
	ResourceID uuid.UUID  `json:"resource_id"`
	Locked     bool       `json:"locked"`
	HolderID   *uuid.UUID `json:"holder_id,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	SlotStart  *time.Time `json:"slot_start,omitempty"`
	SlotEnd    *time.Time `json:"slot_end,omitempty"`
}

type ScheduleItem struct {
	ID          uuid.UUID `json:"id"`
	ResourceID  uuid.UUID `json:"resource_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationQueries interface {
	LockProjection(ctx context.Context, resourceID uuid.UUID) (*LockProjectionView, error)
	// Schedule returns all non-canceled reservations for conflict
	// visualization; future reservations appear here but never as a lock.
	Schedule(ctx context.Context, resourceID uuid.UUID) ([]*ScheduleItem, error)
	RemainingSlots(ctx context.Context, requesterID uuid.UUID) (int, error)
}

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error)
}

type ReservationReadStore interface {
	Schedule(ctx context.Context, resourceID uuid.UUID) ([]*shared.ReservationSnapshot, error)
	ActiveCountForRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) (int, error)
}

type LockReadStore interface {
	FindByResourceID(ctx context.Context, resourceID uuid.UUID) (lock.Projection, error)
}

type reservationQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
	locks        LockReadStore
	clock        clock.Clock
	cfg          config.EngineConfig
}

func NewReservationQueries(
	resources ResourceReadStore,
	reservations ReservationReadStore,
	locks LockReadStore,
	clock clock.Clock,
	cfg config.EngineConfig,
) ReservationQueries {
	return &reservationQueriesImpl{
		resources:    resources,
		reservations: reservations,
		locks:        locks,
		clock:        clock,
		cfg:          cfg,
	}
}

func (q *reservationQueriesImpl) LockProjection(ctx context.Context, resourceID uuid.UUID) (*LockProjectionView, error) {
	if err := q.ensureResourceExists(ctx, resourceID); err != nil {
		return nil, err
	}

	p, err := q.locks.FindByResourceID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	return &LockProjectionView{
		ResourceID: p.ResourceID,
		Locked:     p.Locked,
		HolderID:   p.HolderID,
		Since:      p.Since,
		SlotStart:  p.SlotStart,
		SlotEnd:    p.SlotEnd,
	}, nil
}

func (q *reservationQueriesImpl) Schedule(ctx context.Context, resourceID uuid.UUID) ([]*ScheduleItem, error) {
	if err := q.ensureResourceExists(ctx, resourceID); err != nil {
		return nil, err
	}

	snaps, err := q.reservations.Schedule(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	items := make([]*ScheduleItem, len(snaps))
	for i, s := range snaps {
		items[i] = &ScheduleItem{
			ID:          s.ID,
			ResourceID:  s.ResourceID,
			RequesterID: s.RequesterID,
			Start:       s.Start,
			End:         s.End,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
		}
	}

	return items, nil
}

// RemainingSlots = max(0, cap - active reservations with end > now).
func (q *reservationQueriesImpl) RemainingSlots(ctx context.Context, requesterID uuid.UUID) (int, error) {
	count, err := q.reservations.ActiveCountForRequester(ctx, requesterID, q.clock.Now())
	if err != nil {
		return 0, err
	}

	remaining := q.cfg.MaxActivePerRequester - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (q *reservationQueriesImpl) ensureResourceExists(ctx context.Context, resourceID uuid.UUID) error {
	if _, err := q.resources.FindByID(ctx, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	return nil
}
