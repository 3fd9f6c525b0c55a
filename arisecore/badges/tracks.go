// Package badges maps cumulative project counts onto discrete skill tiers.
// Tier is always derived from the counter, never stored on its own.
package badges

import (
	"context"
	"log/slog"
	"time"

	"github.com/arisehq/arise/arisecore/identity"
	"github.com/google/uuid"
)

// DocumentKey is the durable-store key of the per-user badge progress.
const DocumentKey = "badge_progress"

type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// TierRequirements holds the four ascending thresholds of a badge.
type TierRequirements struct {
	Bronze   int `json:"bronze"`
	Silver   int `json:"silver"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}

type Badge struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Icon         string           `json:"icon"`
	Requirements TierRequirements `json:"tier_requirements"`
}

type Track struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Badges []Badge `json:"badges"`
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// badgeProgress is the persisted, append-only side of a badge.
type badgeProgress struct {
	ProjectsCompleted int       `json:"projects_completed"`
	Projects          []Project `json:"projects"`
}

type progressDoc map[string]badgeProgress

// BadgeStatus is the full derived view of one badge.
type BadgeStatus struct {
	Badge             Badge
	ProjectsCompleted int
	Projects          []Project
	CurrentTier       Tier
	Unlocked          bool
}

// TierFor evaluates thresholds from PLATINUM down and returns the first
// satisfied tier. BRONZE is the floor: a badge reports BRONZE even below
// its own bronze threshold. Whether the badge is visually unlocked is a
// separate axis, see Unlocked.
func TierFor(req TierRequirements, projectsCompleted int) Tier {
	switch {
	case projectsCompleted >= req.Platinum:
		return TierPlatinum
	case projectsCompleted >= req.Gold:
		return TierGold
	case projectsCompleted >= req.Silver:
		return TierSilver
	default:
		return TierBronze
	}
}

// Unlocked reports whether the bronze threshold has been met. Independent
// of TierFor's label.
func Unlocked(req TierRequirements, projectsCompleted int) bool {
	return projectsCompleted >= req.Bronze
}

// DefaultTracks is the static skill-track catalog.
func DefaultTracks() []Track {
	return []Track{
		{
			ID:    "engineering",
			Title: "Engineering",
			Badges: []Badge{
				{ID: "backend", Name: "Backend Architect", Icon: "server",
					Requirements: TierRequirements{Bronze: 2, Silver: 5, Gold: 8, Platinum: 12}},
				{ID: "frontend", Name: "Interface Smith", Icon: "layout",
					Requirements: TierRequirements{Bronze: 2, Silver: 5, Gold: 8, Platinum: 12}},
				{ID: "automation", Name: "Automation Ghost", Icon: "bot",
					Requirements: TierRequirements{Bronze: 1, Silver: 3, Gold: 6, Platinum: 10}},
			},
		},
		{
			ID:    "creative",
			Title: "Creative",
			Badges: []Badge{
				{ID: "writing", Name: "Chronicle Keeper", Icon: "feather",
					Requirements: TierRequirements{Bronze: 3, Silver: 6, Gold: 10, Platinum: 15}},
				{ID: "design", Name: "Shape Bender", Icon: "pen-tool",
					Requirements: TierRequirements{Bronze: 2, Silver: 4, Gold: 7, Platinum: 11}},
			},
		},
	}
}

type Service struct {
	id     *identity.Context
	tracks []Track
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id, tracks: DefaultTracks()}
}

func (s *Service) Tracks() []Track {
	return s.tracks
}

// AddProject appends a project to the badge's log, bumps the counter, and
// re-derives the tier. Unknown track or badge ids are logged no-ops; the
// caller gets (nil, nil) and the session keeps running.
func (s *Service) AddProject(ctx context.Context, trackID, badgeID, projectName string) (*BadgeStatus, error) {
	badge := s.lookup(trackID, badgeID)
	if badge == nil {
		slog.Warn("Ignoring project for unknown badge",
			slog.String("type", "engine"),
			slog.String("track_id", trackID),
			slog.String("badge_id", badgeID))
		return nil, nil
	}

	doc := progressDoc{}
	s.id.Load(ctx, DocumentKey, &doc)

	progress := doc[badgeID]
	progress.Projects = append(progress.Projects, Project{
		ID:   uuid.NewString(),
		Name: projectName,
		Date: time.Now().Format("2006-01-02"),
	})
	progress.ProjectsCompleted++
	doc[badgeID] = progress

	if err := s.id.Persist(ctx, DocumentKey, doc); err != nil {
		return nil, err
	}

	status := s.status(*badge, progress)
	slog.Info("Project logged",
		slog.String("type", "engine"),
		slog.String("badge_id", badgeID),
		slog.String("project", projectName),
		slog.Int("projects_completed", status.ProjectsCompleted),
		slog.String("tier", string(status.CurrentTier)))
	return &status, nil
}

// Statuses returns the derived view of every badge in a track. Unknown
// track ids yield nil.
func (s *Service) Statuses(ctx context.Context, trackID string) []BadgeStatus {
	var track *Track
	for i := range s.tracks {
		if s.tracks[i].ID == trackID {
			track = &s.tracks[i]
			break
		}
	}
	if track == nil {
		return nil
	}

	doc := progressDoc{}
	s.id.Load(ctx, DocumentKey, &doc)

	statuses := make([]BadgeStatus, 0, len(track.Badges))
	for _, badge := range track.Badges {
		statuses = append(statuses, s.status(badge, doc[badge.ID]))
	}
	return statuses
}

func (s *Service) status(badge Badge, progress badgeProgress) BadgeStatus {
	return BadgeStatus{
		Badge:             badge,
		ProjectsCompleted: progress.ProjectsCompleted,
		Projects:          progress.Projects,
		CurrentTier:       TierFor(badge.Requirements, progress.ProjectsCompleted),
		Unlocked:          Unlocked(badge.Requirements, progress.ProjectsCompleted),
	}
}

func (s *Service) lookup(trackID, badgeID string) *Badge {
	for i := range s.tracks {
		if s.tracks[i].ID != trackID {
			continue
		}
		for j := range s.tracks[i].Badges {
			if s.tracks[i].Badges[j].ID == badgeID {
				return &s.tracks[i].Badges[j]
			}
		}
	}
	return nil
}
