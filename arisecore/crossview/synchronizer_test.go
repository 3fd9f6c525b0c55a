package crossview

import (
	"context"
	"testing"
	"time"

	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/nutrition"
	"github.com/arisehq/arise/arisecore/store"
	"github.com/arisehq/arise/arisecore/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentity(t *testing.T) *identity.Context {
	t.Helper()
	ctx := context.Background()

	id := identity.New(repositories.NewMemoryUserRepository(), store.NewMemory())
	require.NoError(t, id.Register(ctx, "jinwoo", "arise"))
	require.NoError(t, id.Login(ctx, "jinwoo", "arise"))
	return id
}

func TestSnapshotDefaultsWhenDocumentsAbsent(t *testing.T) {
	id := newTestIdentity(t)
	sync := NewSynchronizer(id, NewProcessManager(), time.Second)

	snap := sync.Snapshot(context.Background())
	assert.Zero(t, snap.Calories)
	assert.Zero(t, snap.Protein)
	assert.Empty(t, snap.NextWorkout)
}

func TestSnapshotDerivesFromStoredDocuments(t *testing.T) {
	ctx := context.Background()
	id := newTestIdentity(t)
	sync := NewSynchronizer(id, NewProcessManager(), time.Second)

	_, err := nutrition.NewService(id).Add(ctx, "Rice and chicken", 650, 45, nutrition.Lunch)
	require.NoError(t, err)

	require.NoError(t, workout.NewService(id).SetDayOutcome(ctx, 0, workout.OutcomeComplete))

	snap := sync.Snapshot(ctx)
	assert.Equal(t, 650, snap.Calories)
	assert.Equal(t, 45, snap.Protein)
	assert.Equal(t, "Pull Day", snap.NextWorkout)
}

func TestSubscribePublishesImmediatelyAndOnTicks(t *testing.T) {
	ctx := context.Background()
	id := newTestIdentity(t)
	manager := NewProcessManager()
	defer manager.Shutdown(time.Second)

	sync := NewSynchronizer(id, manager, 10*time.Millisecond)

	snaps := make(chan Snapshot, 64)
	sync.Subscribe("test-view", func(s Snapshot) {
		select {
		case snaps <- s:
		default:
		}
	})

	// First publish happens before the first tick.
	first := waitForSnapshot(t, snaps, func(Snapshot) bool { return true })
	assert.Zero(t, first.Calories)

	// A write through another view surfaces within one interval.
	_, err := nutrition.NewService(id).Add(ctx, "Shake", 200, 30, nutrition.Snack)
	require.NoError(t, err)

	updated := waitForSnapshot(t, snaps, func(s Snapshot) bool { return s.Calories == 200 })
	assert.Equal(t, 30, updated.Protein)
}

func TestUnsubscribeStopsPolling(t *testing.T) {
	id := newTestIdentity(t)
	manager := NewProcessManager()
	defer manager.Shutdown(time.Second)

	sync := NewSynchronizer(id, manager, 5*time.Millisecond)

	snaps := make(chan Snapshot, 64)
	sync.Subscribe("test-view", func(s Snapshot) {
		select {
		case snaps <- s:
		default:
		}
	})
	waitForSnapshot(t, snaps, func(Snapshot) bool { return true })
	require.Equal(t, 1, manager.ProcessCount())

	sync.Unsubscribe("test-view")
	assert.Zero(t, manager.ProcessCount())

	// Let any in-flight publish land, then confirm silence.
	time.Sleep(30 * time.Millisecond)
	drain(snaps)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, snaps)
}

func TestSubscribeSameNameReplaces(t *testing.T) {
	id := newTestIdentity(t)
	manager := NewProcessManager()
	defer manager.Shutdown(time.Second)

	sync := NewSynchronizer(id, manager, 10*time.Millisecond)

	sync.Subscribe("view", func(Snapshot) {})
	sync.Subscribe("view", func(Snapshot) {})
	assert.Equal(t, 1, manager.ProcessCount())
}

func waitForSnapshot(t *testing.T, snaps <-chan Snapshot, match func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-snaps:
			if match(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func drain(snaps <-chan Snapshot) {
	for {
		select {
		case <-snaps:
		default:
			return
		}
	}
}
