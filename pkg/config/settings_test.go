package config

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
)

var settingsEnvVars = []string{
	"RANDOMIZER_CATALOG_PATH", "RANDOMIZER_SEED", "RANDOMIZER_MODE", "RANDOMIZER_STORE",
	"RANDOMIZER_SQLITE_PATH", "RANDOMIZER_SAVE_SLOT", "RANDOMIZER_LOG_LEVEL", "RANDOMIZER_MAX_ATTEMPTS",
}

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsEnvVars {
		t.Setenv(key, "")
	}
}

type envTestConfig struct {
	Port int `env:"RANDOMIZER_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("RANDOMIZER_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Empty(t, s.CatalogPath)
	assert.Empty(t, s.Seed)
	assert.Equal(t, domain.ModeCasual, s.Mode)
	assert.Equal(t, StoreMemory, s.Store)
	assert.Equal(t, "randomizer.db", s.SQLitePath)
	assert.Equal(t, "default", s.SaveSlot)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
	assert.Equal(t, 0, s.MaxAttempts)

	seed, err := s.ParsedSeed()
	require.NoError(t, err)
	assert.Nil(t, seed)
}

func TestLoad_CustomValues(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("RANDOMIZER_CATALOG_PATH", "/etc/randomizer/catalog.yaml")
	t.Setenv("RANDOMIZER_SEED", "abcd-1234")
	t.Setenv("RANDOMIZER_MODE", "hardcore")
	t.Setenv("RANDOMIZER_STORE", "sqlite")
	t.Setenv("RANDOMIZER_SQLITE_PATH", "/tmp/saves.db")
	t.Setenv("RANDOMIZER_SAVE_SLOT", "slot-2")
	t.Setenv("RANDOMIZER_LOG_LEVEL", "debug")
	t.Setenv("RANDOMIZER_MAX_ATTEMPTS", "500")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/randomizer/catalog.yaml", s.CatalogPath)
	assert.Equal(t, domain.ModeHardcore, s.Mode)
	assert.Equal(t, StoreSQLite, s.Store)
	assert.Equal(t, "/tmp/saves.db", s.SQLitePath)
	assert.Equal(t, "slot-2", s.SaveSlot)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.Equal(t, 500, s.MaxAttempts)

	seed, err := s.ParsedSeed()
	require.NoError(t, err)
	require.NotNil(t, seed)
	assert.Equal(t, rng.Seed(0xABCD1234), *seed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown mode", key: "RANDOMIZER_MODE", value: "nightmare", wantErr: "RANDOMIZER_MODE"},
		{name: "unknown store", key: "RANDOMIZER_STORE", value: "redis", wantErr: "RANDOMIZER_STORE"},
		{name: "negative attempts", key: "RANDOMIZER_MAX_ATTEMPTS", value: "-1", wantErr: "cannot be negative"},
		{name: "attempts not a number", key: "RANDOMIZER_MAX_ATTEMPTS", value: "many", wantErr: "parse env:"},
		{name: "bad log level", key: "RANDOMIZER_LOG_LEVEL", value: "loud", wantErr: "parse env:"},
		{name: "bad seed", key: "RANDOMIZER_SEED", value: "XYZ", wantErr: customerrors.ErrCodeInvalidSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSettingsEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	base := Settings{Mode: domain.ModeCasual, Store: StoreMemory, SaveSlot: "default"}
	assert.NoError(t, base.Validate())

	noSlot := base
	noSlot.SaveSlot = ""
	assert.Error(t, noSlot.Validate())

	sqliteNoPath := base
	sqliteNoPath.Store = StoreSQLite
	assert.Error(t, sqliteNoPath.Validate())
}
