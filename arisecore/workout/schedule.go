// Package workout owns the weekly training schedule: per-day outcomes,
// per-exercise completion, and the derived "next workout" pointer consumed
// by other views.
package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arisehq/arise/arisecore/identity"
)

// DocumentKey is the durable-store key of the full schedule document.
const DocumentKey = "workout_schedule"

// RestartMarker prefixes the next-workout label once every active day has
// been resolved and the week effectively starts over.
const RestartMarker = "Restart: "

type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	MuscleGroup string `json:"muscle_group"`
	Completed   bool   `json:"completed"`
}

// WorkoutDay is one scheduled day. Rest days never carry exercises or
// outcome flags. IsCompleted and IsFailed are mutually exclusive; the
// setters enforce that structurally.
type WorkoutDay struct {
	Day         string     `json:"day"`
	Focus       string     `json:"focus"`
	IsRest      bool       `json:"is_rest"`
	Exercises   []Exercise `json:"exercises"`
	IsCompleted bool       `json:"is_completed"`
	IsFailed    bool       `json:"is_failed"`
}

type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomeFail     Outcome = "fail"
)

// DefaultSchedule is the stock weekly split used until the user's own
// document exists.
func DefaultSchedule() []WorkoutDay {
	return []WorkoutDay{
		{Day: "Monday", Focus: "Push Day", Exercises: []Exercise{
			{Name: "Bench Press", Sets: 4, MuscleGroup: "Chest"},
			{Name: "Overhead Press", Sets: 3, MuscleGroup: "Shoulders"},
			{Name: "Dips", Sets: 3, MuscleGroup: "Triceps"},
		}},
		{Day: "Tuesday", Focus: "Pull Day", Exercises: []Exercise{
			{Name: "Deadlift", Sets: 4, MuscleGroup: "Back"},
			{Name: "Pull-ups", Sets: 4, MuscleGroup: "Lats"},
			{Name: "Barbell Row", Sets: 3, MuscleGroup: "Back"},
		}},
		{Day: "Wednesday", Focus: "Recovery", IsRest: true},
		{Day: "Thursday", Focus: "Leg Day", Exercises: []Exercise{
			{Name: "Squat", Sets: 5, MuscleGroup: "Quads"},
			{Name: "Romanian Deadlift", Sets: 3, MuscleGroup: "Hamstrings"},
			{Name: "Calf Raises", Sets: 4, MuscleGroup: "Calves"},
		}},
		{Day: "Friday", Focus: "Upper Body", Exercises: []Exercise{
			{Name: "Incline Press", Sets: 4, MuscleGroup: "Chest"},
			{Name: "Lat Pulldown", Sets: 3, MuscleGroup: "Lats"},
			{Name: "Bicep Curls", Sets: 3, MuscleGroup: "Biceps"},
		}},
		{Day: "Saturday", Focus: "Conditioning", Exercises: []Exercise{
			{Name: "Sprints", Sets: 8, MuscleGroup: "Legs"},
			{Name: "Farmer Carries", Sets: 4, MuscleGroup: "Grip"},
		}},
		{Day: "Sunday", Focus: "Recovery", IsRest: true},
	}
}

type Service struct {
	id *identity.Context
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id}
}

// Schedule returns the persisted schedule, or the default split when the
// document is absent or malformed.
func (s *Service) Schedule(ctx context.Context) []WorkoutDay {
	var days []WorkoutDay
	if !s.id.Load(ctx, DocumentKey, &days) || len(days) == 0 {
		return DefaultSchedule()
	}
	return days
}

// SetDayOutcome toggles the targeted flag on a day; setting either flag
// always clears the other, so both can never be true, even transiently.
// Rest days and out-of-range indexes are silent no-ops.
func (s *Service) SetDayOutcome(ctx context.Context, dayIndex int, outcome Outcome) error {
	days := s.Schedule(ctx)
	if dayIndex < 0 || dayIndex >= len(days) || days[dayIndex].IsRest {
		return nil
	}

	day := &days[dayIndex]
	switch outcome {
	case OutcomeComplete:
		day.IsCompleted = !day.IsCompleted
		day.IsFailed = false
	case OutcomeFail:
		day.IsFailed = !day.IsFailed
		day.IsCompleted = false
	default:
		slog.Warn("Ignoring unknown day outcome",
			slog.String("type", "engine"),
			slog.String("outcome", string(outcome)))
		return nil
	}

	return s.persist(ctx, days)
}

// ToggleExercise flips a single exercise's completed flag. Rest days and
// bad indexes are silent no-ops.
func (s *Service) ToggleExercise(ctx context.Context, dayIndex, exerciseIndex int) error {
	days := s.Schedule(ctx)
	if dayIndex < 0 || dayIndex >= len(days) || days[dayIndex].IsRest {
		return nil
	}
	day := &days[dayIndex]
	if exerciseIndex < 0 || exerciseIndex >= len(day.Exercises) {
		return nil
	}

	day.Exercises[exerciseIndex].Completed = !day.Exercises[exerciseIndex].Completed
	return s.persist(ctx, days)
}

// CloseDayView runs the auto-promotion check when a day's detail view is
// dismissed: a non-rest day whose exercises are all complete becomes
// completed even if the user never set the outcome explicitly.
func (s *Service) CloseDayView(ctx context.Context, dayIndex int) error {
	days := s.Schedule(ctx)
	if dayIndex < 0 || dayIndex >= len(days) || days[dayIndex].IsRest {
		return nil
	}

	day := &days[dayIndex]
	if len(day.Exercises) == 0 || !allCompleted(day.Exercises) {
		return nil
	}
	if day.IsCompleted {
		return nil
	}

	day.IsCompleted = true
	day.IsFailed = false
	return s.persist(ctx, days)
}

func allCompleted(exercises []Exercise) bool {
	for _, ex := range exercises {
		if !ex.Completed {
			return false
		}
	}
	return true
}

func (s *Service) persist(ctx context.Context, days []WorkoutDay) error {
	if err := s.id.Persist(ctx, DocumentKey, days); err != nil {
		return fmt.Errorf("failed to persist schedule: %w", err)
	}
	return nil
}

// NextWorkout resolves the schedule's forward pointer: the first day that
// is neither resolved nor a rest day. When every active day is resolved it
// falls back to the first non-rest day with the restart marker, so the
// pointer always yields a label while at least one non-rest day exists.
func NextWorkout(days []WorkoutDay) string {
	for _, day := range days {
		if !day.IsCompleted && !day.IsFailed && !day.IsRest {
			return day.Focus
		}
	}
	for _, day := range days {
		if !day.IsRest {
			return RestartMarker + day.Focus
		}
	}
	return ""
}
