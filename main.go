package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arisehq/arise/arisecore"
	"github.com/arisehq/arise/arisecore/crossview"
	"github.com/arisehq/arise/arisecore/database"
	"github.com/arisehq/arise/arisecore/logger"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Arise progression engine",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	inMemory := flag.Bool("in-memory", false, "run without a database, state is process-local")
	flag.Parse()

	// Optional .env for local secrets; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := arisecore.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	app := arisecore.New(*cfg, version, commit)

	if *inMemory {
		app.SetupInMemory()
		slog.Info("Running with in-memory storage")
	} else {
		slog.Info("Initializing database connection...")
		dbStartTime := time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		dbConfig := database.DBConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Database,
			PoolSize: cfg.DB.PoolSize,
		}

		db, err := database.New(ctx, dbConfig)
		if err != nil {
			slog.Error("Database connection failed",
				slog.String("error", err.Error()),
				slog.Duration("attempted_for", time.Since(dbStartTime)))
			os.Exit(-1)
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Failed to initialize database schema",
				slog.String("error", err.Error()))
			os.Exit(-1)
		}

		slog.Info("Database ready",
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(dbStartTime)))

		app.SetupWithDB(db)
	}

	// The daily-tasks view mirrors food totals and the next workout.
	app.Synchronizer.Subscribe("daily-tasks", func(s crossview.Snapshot) {
		slog.Debug("Cross-view snapshot",
			slog.String("type", "sync"),
			slog.Int("calories", s.Calories),
			slog.Int("protein", s.Protein),
			slog.String("next_workout", s.NextWorkout))
	})

	slog.Info("Engine is now ready",
		slog.String("version", version),
		slog.String("commit", commit))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("Shutting down...")
	if err := app.Processes.Shutdown(10 * time.Second); err != nil {
		slog.Warn("Background processes did not stop cleanly", slog.Any("error", err))
	}
}
