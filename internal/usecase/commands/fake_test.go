//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"sort"
	"time"

	"booking-board/internal/domain/lock"
	"booking-board/internal/domain/reservation"
	"booking-board/internal/infra"
	"booking-board/internal/infra/db"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres unit of work. It runs
// everything in process, so "transactions" are just direct mutations; the
// command layer's ordering guarantees are what the tests exercise.
type fakeStore struct {
	resources    map[uuid.UUID]*shared.ResourceSnapshot
	reservations map[uuid.UUID]*shared.ReservationSnapshot
	locks        map[uuid.UUID]lock.Projection
	jobs         []fakeJob

	// serialization lock acquisitions, in call order
	rootLocks []uuid.UUID
}

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resources:    make(map[uuid.UUID]*shared.ResourceSnapshot),
		reservations: make(map[uuid.UUID]*shared.ReservationSnapshot),
		locks:        make(map[uuid.UUID]lock.Projection),
	}
}

func (f *fakeStore) addResource(name string, parentID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.resources[id] = &shared.ResourceSnapshot{ID: id, Name: name, ParentID: parentID}
	return id
}

func (f *fakeStore) addReservation(resourceID, requesterID uuid.UUID, start, end time.Time, status reservation.Status) uuid.UUID {
	id := uuid.New()
	f.reservations[id] = &shared.ReservationSnapshot{
		ID:          id,
		ResourceID:  resourceID,
		RequesterID: requesterID,
		Start:       start,
		End:         end,
		Status:      string(status),
		CreatedAt:   start.Add(-time.Hour),
	}
	return id
}

// UnitOfWork

func (f *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f)
}

func (f *fakeStore) CommandReads() shared.CommandReads { return f }

// Tx

func (f *fakeStore) Reservations() shared.ReservationRepository   { return f }
func (f *fakeStore) Resources() shared.ResourceRepository         { return f }
func (f *fakeStore) Locks() shared.LockRepository                 { return f }
func (f *fakeStore) Notifications() shared.NotificationRepository { return f }
func (f *fakeStore) Reads() shared.CommandReads                   { return f }
func (f *fakeStore) DB() db.DBTX                                  { return nil }

// ReservationRepository

func (f *fakeStore) Create(_ context.Context, res *reservation.Reservation) error {
	f.reservations[res.ID()] = &shared.ReservationSnapshot{
		ID:          res.ID(),
		ResourceID:  res.ResourceID(),
		RequesterID: res.RequesterID(),
		Start:       res.Slot().Start(),
		End:         res.Slot().End(),
		Status:      string(res.Status()),
		CreatedAt:   res.CreatedAt(),
	}
	return nil
}

func (f *fakeStore) MarkCanceled(_ context.Context, id uuid.UUID, _ time.Time) error {
	snap, ok := f.reservations[id]
	if !ok || snap.Status != string(reservation.StatusActive) {
		return infra.WrapRepoErr("reservation is not active", nil, infra.KindConflict)
	}
	snap.Status = string(reservation.StatusCanceled)
	return nil
}

func (f *fakeStore) CompleteExpired(_ context.Context, resourceID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for _, snap := range f.reservations {
		if snap.ResourceID == resourceID &&
			snap.Status == string(reservation.StatusActive) &&
			!snap.End.After(now) {
			snap.Status = string(reservation.StatusCompleted)
			n++
		}
	}
	return n, nil
}

// ResourceRepository

func (f *fakeStore) AcquireSerializationLock(_ context.Context, resourceID uuid.UUID) error {
	f.rootLocks = append(f.rootLocks, resourceID)
	return nil
}

// LockRepository

func (f *fakeStore) Upsert(_ context.Context, p lock.Projection) error {
	f.locks[p.ResourceID] = p
	return nil
}

// NotificationRepository

func (f *fakeStore) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	f.jobs = append(f.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

// CommandReads

func (f *fakeStore) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (f *fakeStore) ChildrenOf(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var children []uuid.UUID
	for _, res := range f.resources {
		if res.ParentID != nil && *res.ParentID == id {
			children = append(children, res.ID)
		}
	}
	sortIDs(children)
	return children, nil
}

func (f *fakeStore) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, ok := f.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (f *fakeStore) ActiveOverlapping(_ context.Context, resourceID uuid.UUID, start, end time.Time) ([]*shared.ReservationSnapshot, error) {
	var hits []*shared.ReservationSnapshot
	for _, snap := range f.reservations {
		if snap.ResourceID == resourceID &&
			snap.Status == string(reservation.StatusActive) &&
			snap.Start.Before(end) && start.Before(snap.End) {
			hits = append(hits, snap)
		}
	}
	sortSnapshots(hits)
	return hits, nil
}

func (f *fakeStore) ActiveClaims(_ context.Context, resourceID uuid.UUID) ([]*shared.ReservationSnapshot, error) {
	var hits []*shared.ReservationSnapshot
	for _, snap := range f.reservations {
		if snap.ResourceID == resourceID && snap.Status == string(reservation.StatusActive) {
			hits = append(hits, snap)
		}
	}
	sortSnapshots(hits)
	return hits, nil
}

func (f *fakeStore) ActiveCountForRequester(_ context.Context, requesterID uuid.UUID, now time.Time) (int, error) {
	count := 0
	for _, snap := range f.reservations {
		if snap.RequesterID == requesterID &&
			snap.Status == string(reservation.StatusActive) &&
			snap.End.After(now) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ResourceIDsNeedingReconcile(_ context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	for _, snap := range f.reservations {
		if snap.Status == string(reservation.StatusActive) {
			seen[snap.ResourceID] = struct{}{}
		}
	}
	for id, p := range f.locks {
		if p.Locked {
			seen[id] = struct{}{}
		}
	}
	ids := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func sortSnapshots(snaps []*shared.ReservationSnapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].Start.Equal(snaps[j].Start) {
			return snaps[i].Start.Before(snaps[j].Start)
		}
		return bytes.Compare(snaps[i].ID[:], snaps[j].ID[:]) < 0
	})
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
