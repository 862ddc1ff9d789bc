package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep the command layer off the read-model query types.
type ResourceSnapshot struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Start       time.Time
	End         time.Time
	Status      string
	CreatedAt   time.Time
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	ChildrenOf(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	// ActiveOverlapping returns active reservations of the resource whose
	// interval conflicts with [start, end), ordered by start then id.
	ActiveOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*ReservationSnapshot, error)
	// ActiveClaims returns every active reservation of the resource,
	// regardless of interval, for projection derivation.
	ActiveClaims(ctx context.Context, resourceID uuid.UUID) ([]*ReservationSnapshot, error)
	// ActiveCountForRequester counts the requester's active reservations with
	// end > now across all resources (the quota counter).
	ActiveCountForRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) (int, error)
	// ResourceIDsNeedingReconcile lists resources with any active reservation
	// plus resources whose lock row still reads locked.
	ResourceIDsNeedingReconcile(ctx context.Context) ([]uuid.UUID, error)
}
