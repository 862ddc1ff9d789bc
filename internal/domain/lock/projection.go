// Package lock derives the materialized "is this resource locked" view from
// the reservation ledger. The projection is a cache, never a source of truth:
// it must always equal Derive(active claims, now).
package lock

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Claim is the slice of an active reservation the projector needs.
type Claim struct {
	ReservationID uuid.UUID
	RequesterID   uuid.UUID
	Start         time.Time
	End           time.Time
}

// Projection is the derived lock state of one resource at one instant.
// A future-dated reservation never shows up here; it is schedule data only.
type Projection struct {
	ResourceID uuid.UUID
	Locked     bool
	HolderID   *uuid.UUID
	Since      *time.Time
	SlotStart  *time.Time
	SlotEnd    *time.Time
}

func Unlocked(resourceID uuid.UUID) Projection {
	return Projection{ResourceID: resourceID}
}

// Derive computes the projection for a resource from its active claims.
// Exactly one claim wins when several contain now: earliest start first,
// ties broken by reservation id so repeated runs are deterministic.
// Claims whose interval has ended are ignored; the caller is responsible for
// transitioning them to completed.
func Derive(resourceID uuid.UUID, claims []Claim, now time.Time) Projection {
	current := make([]Claim, 0, len(claims))
	for _, c := range claims {
		if !now.Before(c.Start) && now.Before(c.End) {
			current = append(current, c)
		}
	}
	if len(current) == 0 {
		return Unlocked(resourceID)
	}

	sort.Slice(current, func(i, j int) bool {
		if !current[i].Start.Equal(current[j].Start) {
			return current[i].Start.Before(current[j].Start)
		}
		return bytes.Compare(current[i].ReservationID[:], current[j].ReservationID[:]) < 0
	})

	winner := current[0]
	holder := winner.RequesterID
	start := winner.Start
	end := winner.End
	return Projection{
		ResourceID: resourceID,
		Locked:     true,
		HolderID:   &holder,
		Since:      &start,
		SlotStart:  &start,
		SlotEnd:    &end,
	}
}

// Equal compares projections field by field; pointer fields compare by value.
func (p Projection) Equal(other Projection) bool {
	if p.ResourceID != other.ResourceID || p.Locked != other.Locked {
		return false
	}
	if !uuidPtrEqual(p.HolderID, other.HolderID) {
		return false
	}
	return timePtrEqual(p.Since, other.Since) &&
		timePtrEqual(p.SlotStart, other.SlotStart) &&
		timePtrEqual(p.SlotEnd, other.SlotEnd)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
