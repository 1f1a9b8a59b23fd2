package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// SQLiteSchema creates the save-state table. Lists are JSON text and
// saved_at is Unix microseconds.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS randomizer_save_state (
		slot TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		mode TEXT NOT NULL CHECK (mode IN ('casual', 'hardcore')),
		catalog_version TEXT NOT NULL,
		bijection TEXT NOT NULL,
		completed_objectives TEXT NOT NULL DEFAULT '[]',
		completed_unlocks TEXT NOT NULL DEFAULT '[]',
		saved_at INTEGER NOT NULL
	)
`

// SQLiteStateRepository implements StateRepository on an embedded SQLite
// database, for single-player installs without a server.
type SQLiteStateRepository struct {
	db *sql.DB
}

// NewSQLiteStateRepository creates a SQLite-backed state repository.
func NewSQLiteStateRepository(db *sql.DB) *SQLiteStateRepository {
	return &SQLiteStateRepository{db: db}
}

// Migrate applies SQLiteSchema.
func (r *SQLiteStateRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, SQLiteSchema); err != nil {
		return customerrors.ErrDatabaseError("migrate", err)
	}
	return nil
}

func (r *SQLiteStateRepository) LoadState(ctx context.Context, slot string) (*domain.SaveState, error) {
	query := `
		SELECT slot, run_id, seed, mode, catalog_version, bijection,
		       completed_objectives, completed_unlocks, saved_at
		FROM randomizer_save_state
		WHERE slot = ?
	`

	var (
		state      domain.SaveState
		seed       int64
		bijection  string
		objectives string
		unlocks    string
		savedAt    int64
	)
	err := r.db.QueryRowContext(ctx, query, slot).Scan(
		&state.Slot,
		&state.RunID,
		&seed,
		&state.Mode,
		&state.CatalogVersion,
		&bijection,
		&objectives,
		&unlocks,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customerrors.ErrDatabaseError("load state", err)
	}

	pairs, err := unmarshalPairs([]byte(bijection))
	if err != nil {
		return nil, customerrors.ErrStateCorrupted(slot, err)
	}
	var objectiveList, unlockList []string
	if err := json.Unmarshal([]byte(objectives), &objectiveList); err != nil {
		return nil, customerrors.ErrStateCorrupted(slot, err)
	}
	if err := json.Unmarshal([]byte(unlocks), &unlockList); err != nil {
		return nil, customerrors.ErrStateCorrupted(slot, err)
	}

	state.Seed = uint32(seed)
	state.Bijection = pairs
	state.CompletedObjectives = objectiveIDs(objectiveList)
	state.CompletedUnlocks = unlockIDs(unlockList)
	state.SavedAt = time.UnixMicro(savedAt).UTC()
	return &state, nil
}

func (r *SQLiteStateRepository) SaveState(ctx context.Context, state *domain.SaveState) error {
	if err := checkState(state); err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}
	bijection, err := marshalPairs(state.Bijection)
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}
	objectives, err := json.Marshal(objectiveStrings(state.CompletedObjectives))
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}
	unlocks, err := json.Marshal(unlockStrings(state.CompletedUnlocks))
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}

	query := `
		INSERT INTO randomizer_save_state (
			slot, run_id, seed, mode, catalog_version, bijection,
			completed_objectives, completed_unlocks, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			run_id = excluded.run_id,
			seed = excluded.seed,
			mode = excluded.mode,
			catalog_version = excluded.catalog_version,
			bijection = excluded.bijection,
			completed_objectives = excluded.completed_objectives,
			completed_unlocks = excluded.completed_unlocks,
			saved_at = excluded.saved_at
	`
	_, err = r.db.ExecContext(ctx, query,
		state.Slot,
		state.RunID,
		int64(state.Seed),
		string(state.Mode),
		state.CatalogVersion,
		string(bijection),
		string(objectives),
		string(unlocks),
		state.SavedAt.UnixMicro(),
	)
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}
	return nil
}

func (r *SQLiteStateRepository) DeleteState(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM randomizer_save_state WHERE slot = ?`, slot); err != nil {
		return customerrors.ErrDatabaseError("delete state", err)
	}
	return nil
}

func (r *SQLiteStateRepository) ListSlots(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot FROM randomizer_save_state ORDER BY slot ASC`)
	if err != nil {
		return nil, customerrors.ErrDatabaseError("list slots", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSlots(rows)
}
