package randomizer

import (
	"context"
	"fmt"

	"github.com/unlock-randomizer/randomizer-common/pkg/common"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/repository"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
	"github.com/unlock-randomizer/randomizer-common/pkg/tracker"
)

// Save writes the active state to slot.
func (r *Randomizer) Save(ctx context.Context, repo repository.StateRepository, slot string) error {
	state, err := r.tracker.Snapshot()
	if err != nil {
		return err
	}
	state.Slot = slot
	state.SavedAt = common.NowUTC()

	if err := repo.SaveState(ctx, &state); err != nil {
		r.logger.Error("Failed to save randomizer state", "slot", slot, "run_id", state.RunID, "error", err)
		return err
	}
	r.logger.Info("Randomizer state saved",
		"slot", slot,
		"seed", rng.Seed(state.Seed).String(),
		"completed", len(state.CompletedObjectives),
	)
	return nil
}

// Load restores the state saved in slot and reports whether there was one.
// Every saved ID must still exist in the current catalog and the saved
// bijection must cover the catalog exactly.
func (r *Randomizer) Load(ctx context.Context, repo repository.StateRepository, slot string) (bool, error) {
	state, err := repo.LoadState(ctx, slot)
	if err != nil {
		return false, err
	}
	if state == nil {
		return false, nil
	}

	commit, unlocks, err := r.decode(state)
	if err != nil {
		r.logger.Error("Saved state does not match the catalog", "slot", slot, "run_id", state.RunID, "error", err)
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = nil
	if err := r.tracker.Restore(commit, state.CompletedObjectives, unlocks); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Randomizer) decode(state *domain.SaveState) (tracker.Commit, []domain.Unlock, error) {
	if !state.Mode.IsValid() {
		return tracker.Commit{}, nil, customerrors.ErrStateCorrupted(state.Slot, fmt.Errorf("invalid mode %q", state.Mode))
	}

	cat := r.cache.GetCatalog()
	if state.CatalogVersion != cat.Version {
		r.logger.Warn("Saved state was made with another catalog version",
			"slot", state.Slot,
			"saved_version", state.CatalogVersion,
			"catalog_version", cat.Version,
		)
	}

	for _, p := range state.Bijection {
		if r.cache.GetObjectiveByID(p.Objective) == nil {
			return tracker.Commit{}, nil, customerrors.ErrCatalogMismatch("unknown objective " + string(p.Objective))
		}
		if r.cache.GetUnlockByID(p.Unlock) == nil {
			return tracker.Commit{}, nil, customerrors.ErrCatalogMismatch("unknown unlock " + string(p.Unlock))
		}
	}

	b, err := domain.NewBijectionFromPairs(state.Bijection)
	if err != nil {
		return tracker.Commit{}, nil, customerrors.ErrStateCorrupted(state.Slot, err)
	}
	if err := b.Covers(r.cache.GetAllObjectives(), r.cache.GetAllUnlocks()); err != nil {
		return tracker.Commit{}, nil, customerrors.ErrCatalogMismatch(err.Error())
	}

	unlocks := make([]domain.Unlock, 0, len(state.CompletedUnlocks))
	for _, id := range state.CompletedUnlocks {
		u := r.cache.GetUnlockByID(id)
		if u == nil {
			return tracker.Commit{}, nil, customerrors.ErrCatalogMismatch("unknown completed unlock " + string(id))
		}
		unlocks = append(unlocks, u)
	}

	return tracker.Commit{
		Seed:           rng.Seed(state.Seed),
		Mode:           state.Mode,
		RunID:          state.RunID,
		CatalogVersion: state.CatalogVersion,
		Bijection:      b,
	}, unlocks, nil
}
