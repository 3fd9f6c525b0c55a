// Package nutrition keeps the append-only food log. Daily calorie and
// protein totals are always derived from the entries, never stored.
package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arisehq/arise/arisecore/identity"
	"github.com/google/uuid"
)

// DocumentKey is the durable-store key of the per-user food log.
const DocumentKey = "food_log"

type TimeOfDay string

const (
	Breakfast TimeOfDay = "BREAKFAST"
	Lunch     TimeOfDay = "LUNCH"
	Dinner    TimeOfDay = "DINNER"
	Snack     TimeOfDay = "SNACK"
)

type FoodEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Date      string    `json:"date"`
}

type Totals struct {
	Calories int
	Protein  int
}

// DayKey formats a timestamp as the calendar-day key entries are grouped
// under.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// TotalsForDay sums calories and protein for one calendar day. Missing or
// empty logs simply total zero.
func TotalsForDay(entries []FoodEntry, date string) Totals {
	var totals Totals
	for _, e := range entries {
		if e.Date == date {
			totals.Calories += e.Calories
			totals.Protein += e.Protein
		}
	}
	return totals
}

type Service struct {
	id *identity.Context
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id}
}

// Entries returns the full log; absent or malformed documents yield an
// empty log.
func (s *Service) Entries(ctx context.Context) []FoodEntry {
	var entries []FoodEntry
	s.id.Load(ctx, DocumentKey, &entries)
	return entries
}

// Add appends a new entry dated today. Negative values are clamped to
// zero rather than rejected.
func (s *Service) Add(ctx context.Context, name string, calories, protein int, timeOfDay TimeOfDay) (*FoodEntry, error) {
	if calories < 0 {
		calories = 0
	}
	if protein < 0 {
		protein = 0
	}

	entry := FoodEntry{
		ID:        uuid.NewString(),
		Name:      name,
		Calories:  calories,
		Protein:   protein,
		TimeOfDay: timeOfDay,
		Date:      DayKey(time.Now()),
	}

	entries := append(s.Entries(ctx), entry)
	if err := s.id.Persist(ctx, DocumentKey, entries); err != nil {
		return nil, fmt.Errorf("failed to persist food log: %w", err)
	}

	slog.Debug("Food entry logged",
		slog.String("type", "engine"),
		slog.String("name", name),
		slog.Int("calories", calories))
	return &entry, nil
}

// Delete removes the entry with the given id. Unknown ids are no-ops.
func (s *Service) Delete(ctx context.Context, entryID string) error {
	entries := s.Entries(ctx)
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	return s.id.Persist(ctx, DocumentKey, kept)
}

// TodayTotals derives the current day's aggregates.
func (s *Service) TodayTotals(ctx context.Context) Totals {
	return TotalsForDay(s.Entries(ctx), DayKey(time.Now()))
}
