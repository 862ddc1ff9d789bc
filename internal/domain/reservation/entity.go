package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotActive     = errors.New("reservation is not active")
	ErrNotYetEnded   = errors.New("reservation interval has not ended")
	ErrNotCancelable = errors.New("caller may not cancel this reservation")
)

// Reservation is the ledger's unit of record. It is created active and moves
// to exactly one of the terminal states: canceled (explicit) or completed
// (the reconciler observed now >= end). Nothing outside the ledger paths
// mutates it.
type Reservation struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	requesterID uuid.UUID
	slot        TimeSlot
	status      Status
	createdAt   time.Time
}

func NewReservation(resourceID, requesterID uuid.UUID, slot TimeSlot, createdAt time.Time) *Reservation {
	return &Reservation{
		id:          uuid.New(),
		resourceID:  resourceID,
		requesterID: requesterID,
		slot:        slot,
		status:      StatusActive,
		createdAt:   createdAt,
	}
}

func ReconstructReservation(
	id, resourceID, requesterID uuid.UUID,
	slot TimeSlot,
	status Status,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		resourceID:  resourceID,
		requesterID: requesterID,
		slot:        slot,
		status:      status,
		createdAt:   createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) ResourceID() uuid.UUID  { return r.resourceID }
func (r *Reservation) RequesterID() uuid.UUID { return r.requesterID }
func (r *Reservation) Slot() TimeSlot         { return r.slot }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

// IsCurrent reports whether the reservation holds the lock at now.
func (r *Reservation) IsCurrent(now time.Time) bool {
	return r.status == StatusActive && r.slot.Contains(now)
}

// CancelableBy: the owning requester or a privileged caller may cancel.
func (r *Reservation) CancelableBy(requesterID uuid.UUID, privileged bool) bool {
	return privileged || r.requesterID == requesterID
}

func (r *Reservation) Cancel(requesterID uuid.UUID, privileged bool) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if !r.CancelableBy(requesterID, privileged) {
		return ErrNotCancelable
	}
	r.status = StatusCanceled
	return nil
}

// Complete is the time-driven transition; it requires the interval to be over.
func (r *Reservation) Complete(now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if !r.slot.HasEnded(now) {
		return ErrNotYetEnded
	}
	r.status = StatusCompleted
	return nil
}

// CountsAgainstQuota: active reservations still holding or awaiting their
// interval occupy a quota slot; completed and canceled ones never do.
func (r *Reservation) CountsAgainstQuota(now time.Time) bool {
	return r.status == StatusActive && r.slot.End().After(now)
}
