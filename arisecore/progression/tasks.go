package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arisehq/arise/arisecore/identity"
)

// DocumentKey is the durable-store key of the per-user task state document.
const DocumentKey = "daily_tasks"

// taskState is the persisted slice of a task: everything else comes from
// the static catalog.
type taskState struct {
	Completed              bool `json:"completed"`
	ConsecutiveCompletions int  `json:"consecutive_completions"`
}

type stateDoc map[string]taskState

type CompleteResult struct {
	TaskID       string
	Reward       int64
	WalletCredit int64
	Streak       int
	Balance      int64
}

// Service is the daily-task completion state machine. Tasks move
// PENDING -> COMPLETED once per cycle; there is no failed state and no
// automatic cycle reset (the original never resets completions at day
// boundaries, and that behavior is preserved).
type Service struct {
	id      *identity.Context
	catalog []Task
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id, catalog: DefaultCatalog()}
}

// Tasks returns the catalog with the current user's completion state
// merged in. A missing or malformed state document yields the pristine
// catalog.
func (s *Service) Tasks(ctx context.Context) []Task {
	doc := stateDoc{}
	s.id.Load(ctx, DocumentKey, &doc)

	tasks := make([]Task, len(s.catalog))
	copy(tasks, s.catalog)
	for i := range tasks {
		if st, ok := doc[tasks[i].ID]; ok {
			tasks[i].Completed = st.Completed
			tasks[i].ConsecutiveCompletions = st.ConsecutiveCompletions
		}
	}
	return tasks
}

// Complete marks the task done for the current cycle, pays out half of the
// streak-multiplied reward, and bumps the streak counter. Completing an
// already-completed task changes nothing and credits nothing. An unknown
// id is a logged no-op, never an error: a stale reference from a view must
// not take the session down.
func (s *Service) Complete(ctx context.Context, taskID string) (*CompleteResult, error) {
	task := s.lookup(taskID)
	if task == nil {
		slog.Warn("Ignoring completion of unknown task",
			slog.String("type", "engine"),
			slog.String("task_id", taskID))
		return nil, nil
	}

	doc := stateDoc{}
	s.id.Load(ctx, DocumentKey, &doc)

	st := doc[taskID]
	if st.Completed {
		return &CompleteResult{
			TaskID: taskID,
			Streak: st.ConsecutiveCompletions,
		}, nil
	}

	// The multiplier uses the streak as it stood before this completion.
	reward := ComputeReward(task.BaseReward, st.ConsecutiveCompletions)
	credit := WalletShare(reward)

	balance, err := s.id.CreditCurrency(ctx, credit)
	if err != nil {
		return nil, fmt.Errorf("failed to credit task reward: %w", err)
	}

	st.Completed = true
	st.ConsecutiveCompletions++
	doc[taskID] = st

	if err := s.id.Persist(ctx, DocumentKey, doc); err != nil {
		return nil, err
	}

	slog.Info("Task completed",
		slog.String("type", "engine"),
		slog.String("task_id", taskID),
		slog.Int64("reward", reward),
		slog.Int64("credited", credit),
		slog.Int("streak", st.ConsecutiveCompletions))

	return &CompleteResult{
		TaskID:       taskID,
		Reward:       reward,
		WalletCredit: credit,
		Streak:       st.ConsecutiveCompletions,
		Balance:      balance,
	}, nil
}

func (s *Service) lookup(taskID string) *Task {
	for i := range s.catalog {
		if s.catalog[i].ID == taskID {
			return &s.catalog[i]
		}
	}
	return nil
}
