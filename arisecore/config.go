package arisecore

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	DB   DBConfig   `toml:"db"`
	Sync SyncConfig `toml:"sync"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type SyncConfig struct {
	// PollIntervalMS is the cross-view refresh interval in milliseconds.
	PollIntervalMS int `toml:"poll_interval_ms"`
}

// PollInterval returns the configured interval, defaulting to one second.
func (c SyncConfig) PollInterval() time.Duration {
	if c.PollIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// applyEnvOverrides lets deployment secrets win over the checked-in config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ARISE_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("ARISE_DB_USER"); v != "" {
		c.DB.User = v
	}
	if v := os.Getenv("ARISE_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("ARISE_DB_NAME"); v != "" {
		c.DB.Database = v
	}
}
