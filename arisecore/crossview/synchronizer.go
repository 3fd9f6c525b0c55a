// Package crossview mirrors one feature's persisted state into another
// view without coupling the two: subscribers re-read the durable store on
// a fixed interval and republish derived values. Staleness is bounded by
// one polling interval; there are no push notifications.
package crossview

import (
	"context"
	"time"

	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/nutrition"
	"github.com/arisehq/arise/arisecore/workout"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the derived bundle handed to subscribers each tick. Every
// field has a defined zero default when the backing document is missing.
type Snapshot struct {
	Calories    int
	Protein     int
	NextWorkout string
}

// Synchronizer polls the food-log and workout-schedule documents and
// derives display values for the daily-tasks view. It is strictly
// read-only over the keys it observes; it never writes back to them.
type Synchronizer struct {
	id       *identity.Context
	manager  *ProcessManager
	interval time.Duration
}

func NewSynchronizer(id *identity.Context, manager *ProcessManager, interval time.Duration) *Synchronizer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Synchronizer{id: id, manager: manager, interval: interval}
}

// Snapshot performs one poll: both documents are read concurrently and
// reduced to their derived values. Absent documents yield zero totals and
// an empty pointer, never an error.
func (s *Synchronizer) Snapshot(ctx context.Context) Snapshot {
	var (
		totals   nutrition.Totals
		schedule []workout.WorkoutDay
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var entries []nutrition.FoodEntry
		s.id.Load(gctx, nutrition.DocumentKey, &entries)
		totals = nutrition.TotalsForDay(entries, nutrition.DayKey(time.Now()))
		return nil
	})
	g.Go(func() error {
		s.id.Load(gctx, workout.DocumentKey, &schedule)
		return nil
	})
	_ = g.Wait()

	return Snapshot{
		Calories:    totals.Calories,
		Protein:     totals.Protein,
		NextWorkout: workout.NextWorkout(schedule),
	}
}

// Subscribe starts a polling loop under the given name and invokes fn
// with a fresh snapshot immediately and then once per interval. The loop
// runs until Unsubscribe (or manager shutdown); tearing down the owning
// view must unsubscribe so no timer dangles.
func (s *Synchronizer) Subscribe(name string, fn func(Snapshot)) {
	s.manager.StartProcess("crossview:"+name, "cross-view poll for "+name, func(ctx context.Context) {
		fn(s.Snapshot(ctx))

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(s.Snapshot(ctx))
			}
		}
	})
}

// Unsubscribe cancels the named polling loop.
func (s *Synchronizer) Unsubscribe(name string) {
	s.manager.StopProcess("crossview:" + name)
}
