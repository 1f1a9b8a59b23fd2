package cache

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// CatalogCache provides O(1) in-memory lookups over a validated catalog.
// It is built once at startup and is the only place persisted IDs are
// decoded against the current catalog.
// All lookups are read-only and thread-safe.
type CatalogCache interface {
	// GetObjectiveByID retrieves an objective by its canonical ID.
	// Returns nil if the objective is not part of the catalog.
	// Time complexity: O(1)
	GetObjectiveByID(id domain.ObjectiveID) domain.Objective

	// GetUnlockByID retrieves an unlock by its canonical ID.
	// Returns nil if the unlock is not part of the catalog.
	// Time complexity: O(1)
	GetUnlockByID(id domain.UnlockID) domain.Unlock

	// GetAllObjectives returns every objective in catalog order.
	GetAllObjectives() []domain.Objective

	// GetAllUnlocks returns every unlock in catalog order.
	GetAllUnlocks() []domain.Unlock

	// GetObjectivesByCharacter returns the character objectives of one
	// character, kinds in catalog order. Returns an empty slice for unknown characters.
	GetObjectivesByCharacter(character domain.Character) []domain.CharacterObjective

	// GetChallenge retrieves a challenge definition by name.
	// Returns nil if the challenge does not exist.
	GetChallenge(name domain.Challenge) *catalog.ChallengeEntry

	// GetCatalog returns the catalog the cache was built from.
	GetCatalog() *catalog.Catalog

	// Reload reloads the cache from the catalog file, or from the built-in
	// reference catalog when the cache was built without a path.
	// Returns error if the catalog cannot be read or is invalid.
	Reload() error
}
