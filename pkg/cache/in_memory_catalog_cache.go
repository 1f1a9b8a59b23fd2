package cache

import (
	"log/slog"
	"sync"

	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// InMemoryCatalogCache provides O(1) in-memory lookups over a catalog.
// All maps are rebuilt together on reload and guarded by one RWMutex.
type InMemoryCatalogCache struct {
	catalog          *catalog.Catalog
	objectives       []domain.Objective                                // catalog order
	unlocks          []domain.Unlock                                   // catalog order
	objectivesByID   map[domain.ObjectiveID]domain.Objective           // "boss:hush" -> Objective
	unlocksByID      map[domain.UnlockID]domain.Unlock                 // "card:sun" -> Unlock
	byCharacter      map[domain.Character][]domain.CharacterObjective // "isaac" -> [Objectives]
	challengesByName map[domain.Challenge]*catalog.ChallengeEntry
	catalogPath      string // empty means the reference catalog
	mu               sync.RWMutex
	logger           *slog.Logger
}

// NewInMemoryCatalogCache creates a new cache from a validated catalog.
// The cache is immediately built and ready for lookups.
//
// Parameters:
//   - c: Validated catalog
//   - catalogPath: Path to the catalog file (used for reload); empty for the reference catalog
//   - logger: Structured logger for operational logging
func NewInMemoryCatalogCache(c *catalog.Catalog, catalogPath string, logger *slog.Logger) (*InMemoryCatalogCache, error) {
	cache := &InMemoryCatalogCache{
		catalogPath: catalogPath,
		logger:      logger,
	}
	if err := cache.buildCache(c); err != nil {
		return nil, err
	}
	return cache, nil
}

// buildCache constructs all indexes and swaps them in under the write lock.
func (c *InMemoryCatalogCache) buildCache(cat *catalog.Catalog) error {
	unlocks, err := cat.ParseUnlocks()
	if err != nil {
		return err
	}
	objectives := cat.Objectives()

	objectivesByID := make(map[domain.ObjectiveID]domain.Objective, len(objectives))
	byCharacter := make(map[domain.Character][]domain.CharacterObjective)
	for _, o := range objectives {
		objectivesByID[o.ID()] = o
		if co, ok := o.(domain.CharacterObjective); ok {
			byCharacter[co.Character] = append(byCharacter[co.Character], co)
		}
	}

	unlocksByID := make(map[domain.UnlockID]domain.Unlock, len(unlocks))
	for _, u := range unlocks {
		unlocksByID[u.ID()] = u
	}

	challengesByName := make(map[domain.Challenge]*catalog.ChallengeEntry, len(cat.Challenges))
	for i := range cat.Challenges {
		challengesByName[cat.Challenges[i].Name] = &cat.Challenges[i]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = cat
	c.objectives = objectives
	c.unlocks = unlocks
	c.objectivesByID = objectivesByID
	c.unlocksByID = unlocksByID
	c.byCharacter = byCharacter
	c.challengesByName = challengesByName

	c.logger.Info("Catalog cache built successfully",
		"version", cat.Version,
		"objectives", len(objectives),
		"unlocks", len(unlocks),
		"characters", len(byCharacter),
	)
	return nil
}

// GetObjectiveByID retrieves an objective by its canonical ID.
// Returns nil if the objective does not exist.
// Time complexity: O(1)
func (c *InMemoryCatalogCache) GetObjectiveByID(id domain.ObjectiveID) domain.Objective {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.objectivesByID[id]
}

// GetUnlockByID retrieves an unlock by its canonical ID.
// Returns nil if the unlock does not exist.
// Time complexity: O(1)
func (c *InMemoryCatalogCache) GetUnlockByID(id domain.UnlockID) domain.Unlock {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.unlocksByID[id]
}

// GetAllObjectives returns every objective in catalog order.
func (c *InMemoryCatalogCache) GetAllObjectives() []domain.Objective {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Callers shuffle and pick from this slice, so hand out a copy.
	return append([]domain.Objective(nil), c.objectives...)
}

// GetAllUnlocks returns every unlock in catalog order.
func (c *InMemoryCatalogCache) GetAllUnlocks() []domain.Unlock {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Unlock(nil), c.unlocks...)
}

// GetObjectivesByCharacter returns the objectives of one character.
func (c *InMemoryCatalogCache) GetObjectivesByCharacter(character domain.Character) []domain.CharacterObjective {
	c.mu.RLock()
	defer c.mu.RUnlock()

	objectives := c.byCharacter[character]
	if objectives == nil {
		return []domain.CharacterObjective{}
	}
	return append([]domain.CharacterObjective(nil), objectives...)
}

// GetChallenge retrieves a challenge definition by name.
func (c *InMemoryCatalogCache) GetChallenge(name domain.Challenge) *catalog.ChallengeEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.challengesByName[name]
}

// GetCatalog returns the catalog the cache was built from.
func (c *InMemoryCatalogCache) GetCatalog() *catalog.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.catalog
}

// Reload reloads the cache from the catalog file.
//
// Returns:
//   - error: If the catalog cannot be read or validation fails
func (c *InMemoryCatalogCache) Reload() error {
	var (
		cat *catalog.Catalog
		err error
	)
	if c.catalogPath == "" {
		cat, err = catalog.Reference()
	} else {
		cat, err = catalog.NewCatalogLoader(c.catalogPath, c.logger).LoadCatalog()
	}
	if err != nil {
		return err
	}

	if err := c.buildCache(cat); err != nil {
		return err
	}

	c.logger.Info("Catalog cache reloaded successfully")
	return nil
}
