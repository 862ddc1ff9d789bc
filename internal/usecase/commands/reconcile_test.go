//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"booking-board/internal/domain/lock"
	"booking-board/internal/domain/reservation"
	"booking-board/internal/pkg/clock"
	"booking-board/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockReconcilerSyncResource(t *testing.T) {
	t.Run("expired reservation completes and unlocks", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		id := store.addReservation(resourceID, uuid.New(),
			testNow.Add(-2*time.Hour), testNow.Add(-time.Hour), reservation.StatusActive)
		holderID := store.reservations[id].RequesterID
		store.locks[resourceID] = lock.Projection{ResourceID: resourceID, Locked: true, HolderID: &holderID}

		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))
		require.NoError(t, reconciler.SyncResource(context.Background(), resourceID))

		assert.Equal(t, string(reservation.StatusCompleted), store.reservations[id].Status)
		assert.False(t, store.locks[resourceID].Locked)
	})

	t.Run("lock passes to the next current reservation", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		store.addReservation(resourceID, uuid.New(),
			testNow.Add(-2*time.Hour), testNow.Add(-time.Hour), reservation.StatusActive)
		nextHolder := uuid.New()
		store.addReservation(resourceID, nextHolder,
			testNow.Add(-time.Hour), testNow.Add(time.Hour), reservation.StatusActive)

		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))
		require.NoError(t, reconciler.SyncResource(context.Background(), resourceID))

		p := store.locks[resourceID]
		require.True(t, p.Locked)
		assert.Equal(t, nextHolder, *p.HolderID)
	})

	t.Run("sync is idempotent", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		store.addReservation(resourceID, uuid.New(),
			testNow.Add(-time.Hour), testNow.Add(time.Hour), reservation.StatusActive)

		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))
		require.NoError(t, reconciler.SyncResource(context.Background(), resourceID))
		first := store.locks[resourceID]

		require.NoError(t, reconciler.SyncResource(context.Background(), resourceID))
		second := store.locks[resourceID]

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("projection changed on repeated sync (-first +second):\n%s", diff)
		}
	})

	t.Run("unknown resource", func(t *testing.T) {
		store := newFakeStore()
		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))

		err := reconciler.SyncResource(context.Background(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrResourceNotFound)
	})
}

func TestLockReconcilerTick(t *testing.T) {
	t.Run("crossing an interval boundary flips the projection", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		clk := clock.NewMockClock(testNow)
		cmds := newCommands(store, clk)
		reconciler := commands.NewLockReconciler(store, clk)

		result, err := cmds.Create(context.Background(), createInput(resourceID, uuid.New(), 0, time.Hour))
		require.NoError(t, err)
		require.True(t, store.locks[resourceID].Locked)

		clk.Advance(time.Hour)
		require.NoError(t, reconciler.Tick(context.Background()))

		assert.Equal(t, string(reservation.StatusCompleted), store.reservations[result.ReservationID].Status)
		assert.False(t, store.locks[resourceID].Locked)
	})

	t.Run("future reservation becoming current locks on tick", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		holderID := uuid.New()
		store.addReservation(resourceID, holderID,
			testNow.Add(time.Hour), testNow.Add(2*time.Hour), reservation.StatusActive)
		clk := clock.NewMockClock(testNow)
		reconciler := commands.NewLockReconciler(store, clk)

		require.NoError(t, reconciler.Tick(context.Background()))
		assert.False(t, store.locks[resourceID].Locked)

		clk.Advance(time.Hour)
		require.NoError(t, reconciler.Tick(context.Background()))

		p := store.locks[resourceID]
		require.True(t, p.Locked)
		assert.Equal(t, holderID, *p.HolderID)
	})

	t.Run("stale locked row with no active reservation is cleared", func(t *testing.T) {
		store := newFakeStore()
		resourceID := store.addResource("Room A", nil)
		holderID := uuid.New()
		store.locks[resourceID] = lock.Projection{ResourceID: resourceID, Locked: true, HolderID: &holderID}
		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))

		require.NoError(t, reconciler.Tick(context.Background()))

		assert.False(t, store.locks[resourceID].Locked)
	})

	t.Run("tick with nothing to do succeeds", func(t *testing.T) {
		store := newFakeStore()
		reconciler := commands.NewLockReconciler(store, clock.NewMockClock(testNow))

		assert.NoError(t, reconciler.Tick(context.Background()))
	})
}
