package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking-board/internal/domain/reservation"
	"booking-board/internal/domain/resource"
	"booking-board/internal/infra"
	"booking-board/internal/pkg/clock"
	"booking-board/internal/pkg/config"
	"booking-board/internal/pkg/errs"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound    = errs.New("resource not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidInterval     = errs.New("invalid reservation interval")
	ErrQuotaExceeded       = errs.New("reservation quota exceeded")
	ErrConflict            = errs.New("reservation conflict")
	ErrParentConflict      = errs.New("parent resource is reserved")
	ErrChildConflict       = errs.New("a sub-resource is reserved")
	ErrForbidden           = errs.New("forbidden")
)

// ConflictError carries the identity of the first conflicting holder for
// user-facing messaging. errors.Is matches the wrapped sentinel
// (ErrConflict, ErrParentConflict or ErrChildConflict).
type ConflictError struct {
	kind     error
	HolderID uuid.UUID
}

func NewConflictError(kind error, holderID uuid.UUID) *ConflictError {
	return &ConflictError{kind: kind, HolderID: holderID}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (held by %s)", e.kind.Error(), e.HolderID)
}

func (e *ConflictError) Unwrap() error {
	return e.kind
}

type CreateReservationInput struct {
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Start       time.Time
	End         time.Time
	Privileged  bool
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	// DisplacedRequesterIDs lists the owners whose reservations a privileged
	// override canceled, for the notification layer.
	DisplacedRequesterIDs []uuid.UUID
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	Cancel(ctx context.Context, reservationID, requesterID uuid.UUID, privileged bool) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.EngineConfig
}

func NewReservationCommands(uow shared.UnitOfWork, clock clock.Clock, cfg config.EngineConfig) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Create runs the whole admission pipeline in one serializable transaction:
// interval validation -> quota -> hierarchy check -> same-resource conflicts
// -> (privileged) cascade cancellation -> insert -> projection sync. Either
// the new reservation, every cascade cancellation and the projection update
// commit together, or none of them do.
func (r *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	slot, err := reservation.NewBoundedTimeSlot(in.Start, in.End, r.cfg.MaxDuration())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}

	var result *CreateReservationResult
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resSnap, err := tx.Reads().ResourceByID(ctx, in.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		res := snapshotToResource(resSnap)

		if err := tx.Resources().AcquireSerializationLock(ctx, res.SerializationRoot()); err != nil {
			return err
		}

		now := r.clock.Now()

		// Quota is absolute: it binds privileged requesters too and is never
		// subject to override.
		count, err := tx.Reads().ActiveCountForRequester(ctx, in.RequesterID, now)
		if err != nil {
			return err
		}
		if count >= r.cfg.MaxActivePerRequester {
			return ErrQuotaExceeded
		}

		conflicts, err := r.collectConflicts(ctx, tx, res, slot)
		if err != nil {
			return err
		}

		if !in.Privileged {
			if c := conflicts.firstViolation(); c != nil {
				return c
			}
		}

		newRes := reservation.NewReservation(res.ID(), in.RequesterID, slot, now)

		// Privileged path: cancel every conflicting reservation of other
		// requesters. The caller's own overlaps stay active; the projection
		// tie-break decides which one shows as the lock.
		displaced := conflicts.displacedBy(in.RequesterID)
		affected := []uuid.UUID{res.ID()}
		for _, hit := range displaced {
			if err := tx.Reservations().MarkCanceled(ctx, hit.ID, now); err != nil {
				return err
			}
			if err := r.enqueueDisplacedJob(ctx, tx, hit, newRes.ID(), in.RequesterID, now); err != nil {
				return err
			}
			affected = appendUnique(affected, hit.ResourceID)
		}

		if err := tx.Reservations().Create(ctx, newRes); err != nil {
			return err
		}

		for _, resourceID := range affected {
			if err := syncLockProjection(ctx, tx, resourceID, now); err != nil {
				return err
			}
		}

		result = &CreateReservationResult{
			ReservationID:         newRes.ID(),
			DisplacedRequesterIDs: requesterIDs(displaced),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, requesterID uuid.UUID, privileged bool) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		resSnap, err := tx.Reads().ResourceByID(ctx, snap.ResourceID)
		if err != nil {
			return err
		}
		res := snapshotToResource(resSnap)
		if err := tx.Resources().AcquireSerializationLock(ctx, res.SerializationRoot()); err != nil {
			return err
		}

		// Re-read under the lock: a concurrent reconcile pass may have
		// completed the reservation between the first read and the lock.
		snap, err = tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}

		entity := snapshotToReservation(snap)
		if err := entity.Cancel(requesterID, privileged); err != nil {
			if errors.Is(err, reservation.ErrNotCancelable) {
				return errs.Mark(err, ErrForbidden)
			}
			// Terminal states: there is no active reservation to cancel.
			return errs.Mark(err, ErrReservationNotFound)
		}

		now := r.clock.Now()
		if err := tx.Reservations().MarkCanceled(ctx, snap.ID, now); err != nil {
			return err
		}

		return syncLockProjection(ctx, tx, snap.ResourceID, now)
	})
}

// conflictSet groups overlapping active reservations by which rule found them.
type conflictSet struct {
	parent []*shared.ReservationSnapshot
	child  []*shared.ReservationSnapshot
	same   []*shared.ReservationSnapshot
}

// collectConflicts runs the hierarchy constraint check and the same-resource
// conflict detector. A sub-resource conflicts with its parent's reservations;
// a top-level resource conflicts with every sub-resource's reservations; both
// directions use the same overlap predicate.
func (r *reservationCommandsImpl) collectConflicts(ctx context.Context, tx shared.Tx, res *resource.Resource, slot reservation.TimeSlot) (*conflictSet, error) {
	set := &conflictSet{}
	reads := tx.Reads()

	if !res.IsTopLevel() {
		hits, err := reads.ActiveOverlapping(ctx, *res.ParentID(), slot.Start(), slot.End())
		if err != nil {
			return nil, err
		}
		set.parent = hits
	} else {
		children, err := reads.ChildrenOf(ctx, res.ID())
		if err != nil {
			return nil, err
		}
		for _, childID := range children {
			hits, err := reads.ActiveOverlapping(ctx, childID, slot.Start(), slot.End())
			if err != nil {
				return nil, err
			}
			set.child = append(set.child, hits...)
		}
	}

	hits, err := reads.ActiveOverlapping(ctx, res.ID(), slot.Start(), slot.End())
	if err != nil {
		return nil, err
	}
	set.same = hits

	return set, nil
}

// firstViolation maps the set to the error a non-privileged caller receives.
// Hierarchy violations outrank the same-resource conflict; each carries the
// earliest-starting holder.
func (s *conflictSet) firstViolation() *ConflictError {
	if len(s.parent) > 0 {
		return NewConflictError(ErrParentConflict, s.parent[0].RequesterID)
	}
	if len(s.child) > 0 {
		return NewConflictError(ErrChildConflict, s.child[0].RequesterID)
	}
	if len(s.same) > 0 {
		return NewConflictError(ErrConflict, s.same[0].RequesterID)
	}
	return nil
}

// displacedBy returns every conflicting reservation not owned by the
// requester. Future-dated conflicts are displaced too: anything left active
// must be non-overlapping with the new reservation.
func (s *conflictSet) displacedBy(requesterID uuid.UUID) []*shared.ReservationSnapshot {
	all := make([]*shared.ReservationSnapshot, 0, len(s.parent)+len(s.child)+len(s.same))
	all = append(all, s.parent...)
	all = append(all, s.child...)
	all = append(all, s.same...)

	displaced := all[:0]
	for _, hit := range all {
		if hit.RequesterID != requesterID {
			displaced = append(displaced, hit)
		}
	}
	return displaced
}

func (r *reservationCommandsImpl) enqueueDisplacedJob(
	ctx context.Context,
	tx shared.Tx,
	displaced *shared.ReservationSnapshot,
	newReservationID, displacedBy uuid.UUID,
	now time.Time,
) error {
	payload, err := json.Marshal(map[string]any{
		"type":           "reservation_displaced",
		"reservation_id": displaced.ID,
		"requester_id":   displaced.RequesterID,
		"resource_id":    displaced.ResourceID,
		"slot_start":     displaced.Start,
		"slot_end":       displaced.End,
		"displaced_by":   displacedBy,
		"replaced_with":  newReservationID,
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal displaced notification payload")
	}

	return tx.Notifications().CreateJob(ctx, "email", "reservation_displaced", payload, now)
}

func snapshotToResource(snap *shared.ResourceSnapshot) *resource.Resource {
	return resource.ReconstructResource(snap.ID, snap.Name, snap.ParentID)
}

func snapshotToReservation(snap *shared.ReservationSnapshot) *reservation.Reservation {
	slot, _ := reservation.NewTimeSlot(snap.Start, snap.End)
	return reservation.ReconstructReservation(
		snap.ID,
		snap.ResourceID,
		snap.RequesterID,
		slot,
		reservation.Status(snap.Status),
		snap.CreatedAt,
	)
}

func requesterIDs(snaps []*shared.ReservationSnapshot) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(snaps))
	ids := make([]uuid.UUID, 0, len(snaps))
	for _, s := range snaps {
		if _, ok := seen[s.RequesterID]; ok {
			continue
		}
		seen[s.RequesterID] = struct{}{}
		ids = append(ids, s.RequesterID)
	}
	return ids
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
