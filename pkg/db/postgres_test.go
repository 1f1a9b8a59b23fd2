package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbEnvVars = []string{
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_SSLMODE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
}

// requirePostgres skips the test unless a database is configured.
func requirePostgres(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("Skipping integration test: DB_HOST not set")
	}
	db, err := Connect(NewConfigFromEnv())
	require.NoError(t, err)
	return db
}

func TestNewConfigFromEnv_AllDefaults(t *testing.T) {
	for _, key := range dbEnvVars {
		t.Setenv(key, "")
	}

	cfg := NewConfigFromEnv()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "randomizer", cfg.Database)
	assert.Equal(t, "postgres", cfg.User)
	assert.Equal(t, "", cfg.Password)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, 300*time.Second, cfg.ConnMaxLifetime)
	assert.Equal(t, 300*time.Second, cfg.ConnMaxIdleTime)
}

func TestNewConfigFromEnv_CustomValues(t *testing.T) {
	values := map[string]string{
		"DB_HOST":               "saves.example.com",
		"DB_PORT":               "5433",
		"DB_NAME":               "saves",
		"DB_USER":               "runner",
		"DB_PASSWORD":           "secret",
		"DB_SSLMODE":            "require",
		"DB_MAX_OPEN_CONNS":     "4",
		"DB_MAX_IDLE_CONNS":     "1",
		"DB_CONN_MAX_LIFETIME":  "600",
		"DB_CONN_MAX_IDLE_TIME": "120",
	}
	for k, v := range values {
		t.Setenv(k, v)
	}

	cfg := NewConfigFromEnv()

	assert.Equal(t, "saves.example.com", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "saves", cfg.Database)
	assert.Equal(t, "runner", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 1, cfg.MaxIdleConns)
	assert.Equal(t, 600*time.Second, cfg.ConnMaxLifetime)
	assert.Equal(t, 120*time.Second, cfg.ConnMaxIdleTime)
	assert.Equal(t, "host=saves.example.com port=5433 dbname=saves user=runner password=secret sslmode=require", cfg.DSN())
}

func TestNewConfigFromEnv_MalformedIntsFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "invalid")
	t.Setenv("DB_MAX_OPEN_CONNS", "not_a_number")

	cfg := NewConfigFromEnv()

	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, 10, cfg.MaxOpenConns)
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue string
		expected     string
	}{
		{name: "environment variable set", envValue: "custom", defaultValue: "default", expected: "custom"},
		{name: "environment variable empty", envValue: "", defaultValue: "default", expected: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RANDOMIZER_TEST_VAR", tt.envValue)
			assert.Equal(t, tt.expected, getEnv("RANDOMIZER_TEST_VAR", tt.defaultValue))
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{name: "valid integer", envValue: "200", expected: 200},
		{name: "invalid integer", envValue: "not_a_number", expected: 100},
		{name: "empty string", envValue: "", expected: 100},
		{name: "zero value", envValue: "0", expected: 0},
		{name: "negative value", envValue: "-50", expected: -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RANDOMIZER_TEST_INT", tt.envValue)
			if got := getEnvAsInt("RANDOMIZER_TEST_INT", 100); got != tt.expected {
				t.Errorf("getEnvAsInt() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConnect_UnreachableHost(t *testing.T) {
	cfg := &Config{
		Host:            "nonexistent.example.com",
		Port:            5432,
		Database:        "randomizer",
		User:            "test",
		Password:        "test",
		SSLMode:         "disable",
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}

	db, err := Connect(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping database")
}

func TestHealth_NilDB(t *testing.T) {
	err := Health(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unhealthy")
}

func TestHealth_Postgres(t *testing.T) {
	db := requirePostgres(t)

	assert.NoError(t, Health(db))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, db.PingContext(ctx))

	_ = db.Close()
	err := Health(db)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database unhealthy")
}

func TestConnect_PoolSettings(t *testing.T) {
	if os.Getenv("DB_HOST") == "" {
		t.Skip("Skipping integration test: DB_HOST not set")
	}

	cfg := NewConfigFromEnv()
	cfg.MaxOpenConns = 3
	db, err := Connect(cfg)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, Health(db))
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	_, err = db.Exec(`CREATE TABLE probe (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err, "database file created")
}

func TestOpenSQLite_InMemory(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE probe (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO probe (id) VALUES (1)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM probe`).Scan(&n))
	assert.Equal(t, 1, n)
}
