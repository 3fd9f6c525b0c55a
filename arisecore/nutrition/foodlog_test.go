package nutrition

import (
	"context"
	"testing"
	"time"

	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	id := identity.New(repositories.NewMemoryUserRepository(), store.NewMemory())
	require.NoError(t, id.Register(ctx, "jinwoo", "arise"))
	require.NoError(t, id.Login(ctx, "jinwoo", "arise"))
	return NewService(id)
}

func TestTotalsDefaultToZero(t *testing.T) {
	svc := newTestService(t)

	totals := svc.TodayTotals(context.Background())
	assert.Zero(t, totals.Calories)
	assert.Zero(t, totals.Protein)
	assert.Empty(t, svc.Entries(context.Background()))
}

func TestAddAccumulatesTodayTotals(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, "Rice and chicken", 650, 45, Lunch)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Protein shake", 200, 30, Snack)
	require.NoError(t, err)

	totals := svc.TodayTotals(ctx)
	assert.Equal(t, 850, totals.Calories)
	assert.Equal(t, 75, totals.Protein)
}

func TestAddClampsNegativeValues(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	entry, err := svc.Add(ctx, "Mystery meal", -100, -5, Dinner)
	require.NoError(t, err)
	assert.Zero(t, entry.Calories)
	assert.Zero(t, entry.Protein)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	entry, err := svc.Add(ctx, "Oats", 300, 12, Breakfast)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Eggs", 220, 18, Breakfast)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))
	entries := svc.Entries(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, "Eggs", entries[0].Name)

	// Unknown ids are no-ops.
	require.NoError(t, svc.Delete(ctx, "nope"))
	assert.Len(t, svc.Entries(ctx), 1)
}

func TestTotalsForDayGroupsByDate(t *testing.T) {
	today := DayKey(time.Now())
	yesterday := DayKey(time.Now().AddDate(0, 0, -1))

	entries := []FoodEntry{
		{Name: "Oats", Calories: 300, Protein: 12, Date: today},
		{Name: "Steak", Calories: 700, Protein: 60, Date: yesterday},
		{Name: "Shake", Calories: 200, Protein: 30, Date: today},
	}

	totals := TotalsForDay(entries, today)
	assert.Equal(t, 500, totals.Calories)
	assert.Equal(t, 42, totals.Protein)

	totals = TotalsForDay(entries, yesterday)
	assert.Equal(t, 700, totals.Calories)

	assert.Zero(t, TotalsForDay(nil, today).Calories)
}
