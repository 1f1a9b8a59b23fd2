package config

import (
	"fmt"
	"log/slog"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
)

// Store selects the save-state backend.
type Store string

const (
	StoreMemory   Store = "memory"
	StoreSQLite   Store = "sqlite"
	StorePostgres Store = "postgres"
)

// Settings are the process-level options of a randomizer host. Postgres
// connection settings live in db.NewConfigFromEnv.
type Settings struct {
	// CatalogPath is a JSON or YAML catalog; empty means the embedded reference catalog.
	CatalogPath string `env:"RANDOMIZER_CATALOG_PATH"`
	// Seed is "XXXX-XXXX"; empty draws a random seed.
	Seed        string      `env:"RANDOMIZER_SEED"`
	Mode        domain.Mode `env:"RANDOMIZER_MODE" envDefault:"casual"`
	Store       Store       `env:"RANDOMIZER_STORE" envDefault:"memory"`
	SQLitePath  string      `env:"RANDOMIZER_SQLITE_PATH" envDefault:"randomizer.db"`
	SaveSlot    string      `env:"RANDOMIZER_SAVE_SLOT" envDefault:"default"`
	LogLevel    slog.Level  `env:"RANDOMIZER_LOG_LEVEL" envDefault:"INFO"`
	// MaxAttempts caps generation attempts; 0 retries until a seed validates.
	MaxAttempts int `env:"RANDOMIZER_MAX_ATTEMPTS" envDefault:"0"`
}

// Load parses and validates Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values the env parser cannot.
func (s Settings) Validate() error {
	if !s.Mode.IsValid() {
		return fmt.Errorf("invalid RANDOMIZER_MODE %q: must be casual or hardcore", s.Mode)
	}
	switch s.Store {
	case StoreMemory, StorePostgres:
	case StoreSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("RANDOMIZER_SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("invalid RANDOMIZER_STORE %q: must be memory, sqlite or postgres", s.Store)
	}
	if s.SaveSlot == "" {
		return fmt.Errorf("RANDOMIZER_SAVE_SLOT cannot be empty")
	}
	if s.MaxAttempts < 0 {
		return fmt.Errorf("RANDOMIZER_MAX_ATTEMPTS cannot be negative: %d", s.MaxAttempts)
	}
	if _, err := s.ParsedSeed(); err != nil {
		return err
	}
	return nil
}

// ParsedSeed returns the configured seed, or nil for a random one.
func (s Settings) ParsedSeed() (*rng.Seed, error) {
	if s.Seed == "" {
		return nil, nil
	}
	seed, err := rng.ParseSeed(s.Seed)
	if err != nil {
		return nil, err
	}
	return &seed, nil
}
