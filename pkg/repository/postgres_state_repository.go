package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq" // PostgreSQL driver and array support

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// PostgresSchema creates the save-state table.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS randomizer_save_state (
		slot VARCHAR(100) PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		seed BIGINT NOT NULL,
		mode VARCHAR(20) NOT NULL,
		catalog_version VARCHAR(100) NOT NULL,
		bijection JSONB NOT NULL,
		completed_objectives TEXT[] NOT NULL DEFAULT '{}',
		completed_unlocks TEXT[] NOT NULL DEFAULT '{}',
		saved_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT check_mode CHECK (mode IN ('casual', 'hardcore')),
		CONSTRAINT check_completion_lengths CHECK (
			cardinality(completed_objectives) = cardinality(completed_unlocks)
		)
	)
`

// PostgresStateRepository implements StateRepository using PostgreSQL. The
// bijection is stored as JSONB and the completion lists as text arrays.
type PostgresStateRepository struct {
	db *sql.DB
}

// NewPostgresStateRepository creates a new PostgreSQL-backed state repository.
func NewPostgresStateRepository(db *sql.DB) *PostgresStateRepository {
	return &PostgresStateRepository{
		db: db,
	}
}

// Migrate applies PostgresSchema.
func (r *PostgresStateRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, PostgresSchema); err != nil {
		return customerrors.ErrDatabaseError("migrate", err)
	}
	return nil
}

// LoadState retrieves the state saved in slot.
func (r *PostgresStateRepository) LoadState(ctx context.Context, slot string) (*domain.SaveState, error) {
	query := `
		SELECT slot, run_id, seed, mode, catalog_version, bijection,
		       completed_objectives, completed_unlocks, saved_at
		FROM randomizer_save_state
		WHERE slot = $1
	`

	var (
		state      domain.SaveState
		seed       int64
		bijection  []byte
		objectives []string
		unlocks    []string
	)
	err := r.db.QueryRowContext(ctx, query, slot).Scan(
		&state.Slot,
		&state.RunID,
		&seed,
		&state.Mode,
		&state.CatalogVersion,
		&bijection,
		pq.Array(&objectives),
		pq.Array(&unlocks),
		&state.SavedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Slot is empty
	}

	if err != nil {
		return nil, customerrors.ErrDatabaseError("load state", err)
	}

	pairs, err := unmarshalPairs(bijection)
	if err != nil {
		return nil, customerrors.ErrStateCorrupted(slot, err)
	}
	state.Seed = uint32(seed)
	state.Bijection = pairs
	state.CompletedObjectives = objectiveIDs(objectives)
	state.CompletedUnlocks = unlockIDs(unlocks)
	state.SavedAt = state.SavedAt.UTC()

	return &state, nil
}

// SaveState upserts state by slot.
func (r *PostgresStateRepository) SaveState(ctx context.Context, state *domain.SaveState) error {
	if err := checkState(state); err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}
	bijection, err := marshalPairs(state.Bijection)
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}

	query := `
		INSERT INTO randomizer_save_state (
			slot, run_id, seed, mode, catalog_version, bijection,
			completed_objectives, completed_unlocks, saved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (slot) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			seed = EXCLUDED.seed,
			mode = EXCLUDED.mode,
			catalog_version = EXCLUDED.catalog_version,
			bijection = EXCLUDED.bijection,
			completed_objectives = EXCLUDED.completed_objectives,
			completed_unlocks = EXCLUDED.completed_unlocks,
			saved_at = EXCLUDED.saved_at
	`

	_, err = r.db.ExecContext(ctx, query,
		state.Slot,
		state.RunID,
		int64(state.Seed),
		state.Mode,
		state.CatalogVersion,
		bijection,
		pq.Array(objectiveStrings(state.CompletedObjectives)),
		pq.Array(unlockStrings(state.CompletedUnlocks)),
		state.SavedAt.UTC(),
	)
	if err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}

	return nil
}

// DeleteState removes the state in slot.
func (r *PostgresStateRepository) DeleteState(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM randomizer_save_state WHERE slot = $1`, slot); err != nil {
		return customerrors.ErrDatabaseError("delete state", err)
	}
	return nil
}

// ListSlots returns the occupied slots.
func (r *PostgresStateRepository) ListSlots(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot FROM randomizer_save_state ORDER BY slot ASC`)
	if err != nil {
		return nil, customerrors.ErrDatabaseError("list slots", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSlots(rows)
}

func scanSlots(rows *sql.Rows) ([]string, error) {
	slots := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, customerrors.ErrDatabaseError("scan slot", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, customerrors.ErrDatabaseError("iterate slots", err)
	}
	return slots, nil
}
