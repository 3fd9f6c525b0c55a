package arisecore

import (
	"github.com/arisehq/arise/arisecore/badges"
	"github.com/arisehq/arise/arisecore/crossview"
	"github.com/arisehq/arise/arisecore/database"
	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/finance"
	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/market"
	"github.com/arisehq/arise/arisecore/nutrition"
	"github.com/arisehq/arise/arisecore/progression"
	"github.com/arisehq/arise/arisecore/store"
	"github.com/arisehq/arise/arisecore/workout"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// App wires the engine: the durable store and user registry at the
// bottom, the identity context as the injected state handle, and the
// feature state machines plus the cross-view poller on top.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB        *database.DB
	Users     repositories.UserRepository
	Documents store.Store

	Identity *identity.Context
	Tasks    *progression.Service
	Workout  *workout.Service
	Badges   *badges.Service
	Nutrition *nutrition.Service
	Finance  *finance.Service
	Market   *market.Service

	Processes    *crossview.ProcessManager
	Synchronizer *crossview.Synchronizer
}

// SetupWithDB wires every service on top of a connected database.
func (a *App) SetupWithDB(db *database.DB) {
	a.DB = db
	a.Users = repositories.NewUserRepository(db.BunDB())
	a.Documents = repositories.NewDocumentRepository(db.BunDB())
	a.setupServices()
}

// SetupInMemory wires the same engine over process-local storage, used by
// tests and database-less development runs.
func (a *App) SetupInMemory() {
	a.Users = repositories.NewMemoryUserRepository()
	a.Documents = store.NewMemory()
	a.setupServices()
}

func (a *App) setupServices() {
	a.Identity = identity.New(a.Users, a.Documents)
	a.Tasks = progression.NewService(a.Identity)
	a.Workout = workout.NewService(a.Identity)
	a.Badges = badges.NewService(a.Identity)
	a.Nutrition = nutrition.NewService(a.Identity)
	a.Finance = finance.NewService(a.Identity)
	a.Market = market.NewService(a.Identity)

	a.Processes = crossview.NewProcessManager()
	a.Synchronizer = crossview.NewSynchronizer(a.Identity, a.Processes, a.Cfg.Sync.PollInterval())
}
