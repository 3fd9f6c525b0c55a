package progression

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

type TaskType string

const (
	TypeFood    TaskType = "FOOD"
	TypeCombat  TaskType = "COMBAT"
	TypeStealth TaskType = "STEALTH"
	TypeTech    TaskType = "TECH"
)

// Task is one entry of the daily-task board. Catalog fields are static;
// Completed and ConsecutiveCompletions carry the per-user state merged in
// from the durable store.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BaseReward  int64     `json:"base_reward"`
	Risk        RiskLevel `json:"risk_level"`
	Type        TaskType  `json:"type"`
	Difficulty  int       `json:"difficulty"`

	Completed              bool `json:"completed"`
	ConsecutiveCompletions int  `json:"consecutive_completions"`
}

// DefaultCatalog is the fixed daily-task board. Tasks are never created or
// deleted at runtime; only their completion state changes.
func DefaultCatalog() []Task {
	return []Task{
		{
			ID:          "daily-meals",
			Title:       "Fuel Intake",
			Description: "Log every meal of the day in the nutrition tracker",
			BaseReward:  500,
			Risk:        RiskLow,
			Type:        TypeFood,
			Difficulty:  2,
		},
		{
			ID:          "daily-training",
			Title:       "Strength Training",
			Description: "Finish today's scheduled workout",
			BaseReward:  1000,
			Risk:        RiskMedium,
			Type:        TypeCombat,
			Difficulty:  5,
		},
		{
			ID:          "daily-run",
			Title:       "Shadow Run",
			Description: "Run 5km before sunset",
			BaseReward:  800,
			Risk:        RiskMedium,
			Type:        TypeStealth,
			Difficulty:  4,
		},
		{
			ID:          "daily-deep-work",
			Title:       "Deep Work Block",
			Description: "Two uninterrupted hours on the main project",
			BaseReward:  1200,
			Risk:        RiskHigh,
			Type:        TypeTech,
			Difficulty:  6,
		},
		{
			ID:          "daily-no-sugar",
			Title:       "Clean Fuel Only",
			Description: "No added sugar until midnight",
			BaseReward:  600,
			Risk:        RiskHigh,
			Type:        TypeFood,
			Difficulty:  5,
		},
		{
			ID:          "daily-cold-shower",
			Title:       "Ice Discipline",
			Description: "Cold shower, two minutes minimum",
			BaseReward:  400,
			Risk:        RiskCritical,
			Type:        TypeCombat,
			Difficulty:  7,
		},
		{
			ID:          "daily-journal",
			Title:       "Quiet Log",
			Description: "Write the evening journal entry",
			BaseReward:  300,
			Risk:        RiskLow,
			Type:        TypeStealth,
			Difficulty:  1,
		},
		{
			ID:          "daily-ship-commit",
			Title:       "Ship Something",
			Description: "Push at least one meaningful commit",
			BaseReward:  900,
			Risk:        RiskMedium,
			Type:        TypeTech,
			Difficulty:  3,
		},
	}
}
