package randomizer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unlock-randomizer/randomizer-common/pkg/cache"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/generator"
	"github.com/unlock-randomizer/randomizer-common/pkg/notifier"
	"github.com/unlock-randomizer/randomizer-common/pkg/reachability"
	"github.com/unlock-randomizer/randomizer-common/pkg/resolver"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
	"github.com/unlock-randomizer/randomizer-common/pkg/tracker"
	"github.com/unlock-randomizer/randomizer-common/pkg/validator"
)

// progressEvery is how many failed attempts pass between Info progress lines.
const progressEvery = 100

// Option configures a Randomizer.
type Option func(*Randomizer)

// WithMaxAttempts stops generation after n failed attempts. Zero, the
// default, retries until a candidate validates.
func WithMaxAttempts(n int) Option {
	return func(r *Randomizer) { r.maxAttempts = n }
}

// WithOracle replaces the catalog's reachability oracle.
func WithOracle(o reachability.Oracle) Option {
	return func(r *Randomizer) { r.oracle = o }
}

// Randomizer is the host-facing entry point. It owns the tracker and drives
// seed generation one attempt at a time.
type Randomizer struct {
	mu          sync.Mutex
	cache       cache.CatalogCache
	generator   *generator.Generator
	validator   *validator.Validator
	oracle      reachability.Oracle
	resolver    *resolver.Resolver
	tracker     *tracker.Tracker
	logger      *slog.Logger
	maxAttempts int

	pending *pendingGeneration // nil unless a seed is being generated
}

// pendingGeneration is an in-flight seed. All attempts for one seed draw
// from the same stream.
type pendingGeneration struct {
	seed     rng.Seed
	mode     domain.Mode
	stream   *rng.Stream
	attempts int
}

// NewRandomizer wires the engine for the catalog held by c. n receives one
// callback per live grant and may be nil.
func NewRandomizer(c cache.CatalogCache, n notifier.UnlockNotifier, logger *slog.Logger, opts ...Option) (*Randomizer, error) {
	cat := c.GetCatalog()
	table, err := resolver.NewPrerequisiteTableFromCatalog(cat)
	if err != nil {
		return nil, fmt.Errorf("build prerequisite table: %w", err)
	}

	r := &Randomizer{
		cache:     c,
		generator: generator.NewGenerator(generator.RulesFromCatalog(cat), logger),
		oracle:    reachability.NewCatalogOracle(cat),
		resolver:  resolver.NewResolver(table, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.validator = validator.NewValidator(r.oracle, r.resolver, c.GetAllObjectives(), logger)
	r.tracker = tracker.NewTracker(r.resolver, n, logger)
	return r, nil
}

// Tracker returns the live tracker for objective events and unlock queries.
func (r *Randomizer) Tracker() *tracker.Tracker {
	return r.tracker
}

// StartRandomizer begins generating a new seed. A nil seed draws a random
// one. Any active randomizer and any in-flight generation are discarded.
func (r *Randomizer) StartRandomizer(seed *rng.Seed, mode domain.Mode) (rng.Seed, error) {
	if !mode.IsValid() {
		return 0, fmt.Errorf("invalid mode %q", mode)
	}
	chosen := rng.RandomSeed()
	if seed != nil {
		chosen = *seed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracker.Deactivate()
	if r.pending != nil {
		r.logger.Info("Discarding in-flight generation",
			"seed", r.pending.seed.String(),
			"attempts", r.pending.attempts,
		)
	}
	r.pending = &pendingGeneration{seed: chosen, mode: mode, stream: rng.NewStream(chosen)}
	r.logger.Info("Randomizer started", "seed", chosen.String(), "mode", mode)
	return chosen, nil
}

// TryOneGeneration runs a single generate-and-validate attempt for the
// pending seed. It returns true once a candidate has been committed to the
// tracker. Hosts call it once per tick until it succeeds.
func (r *Randomizer) TryOneGeneration() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.pending
	if p == nil {
		return false, customerrors.ErrNoPendingSeed()
	}
	p.attempts++

	candidate, err := r.generator.Generate(p.stream, r.cache.GetAllObjectives(), r.cache.GetAllUnlocks())
	if err != nil {
		r.pending = nil
		r.logger.Error("Generation failed", "seed", p.seed.String(), "attempt", p.attempts, "error", err)
		return false, err
	}

	beatable, err := r.validator.IsBeatable(candidate, p.mode)
	if err != nil {
		r.pending = nil
		r.logger.Error("Validation failed", "seed", p.seed.String(), "attempt", p.attempts, "error", err)
		return false, err
	}

	if !beatable {
		r.logger.Debug("Candidate rejected", "seed", p.seed.String(), "attempt", p.attempts)
		if p.attempts%progressEvery == 0 {
			r.logger.Info("Still generating", "seed", p.seed.String(), "attempts", p.attempts)
		}
		if r.maxAttempts > 0 && p.attempts >= r.maxAttempts {
			r.pending = nil
			return false, customerrors.ErrGenerationFailed("validate",
				fmt.Sprintf("no beatable bijection for seed %s after %d attempts", p.seed, p.attempts))
		}
		return false, nil
	}

	// The validator worked on a clone; the tracker gets the unswapped candidate.
	runID := uuid.NewString()
	r.tracker.Activate(tracker.Commit{
		Seed:           p.seed,
		Mode:           p.mode,
		RunID:          runID,
		CatalogVersion: r.cache.GetCatalog().Version,
		Bijection:      candidate,
	})
	r.pending = nil
	r.logger.Info("Seed accepted",
		"seed", p.seed.String(),
		"run_id", runID,
		"attempts", p.attempts,
		"draws", p.stream.Draws(),
	)
	return true, nil
}

// GenerateUntilBeatable calls TryOneGeneration until it succeeds, fails, or
// ctx is done.
func (r *Randomizer) GenerateUntilBeatable(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := r.TryOneGeneration()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// EndRandomizer deactivates the tracker and drops any in-flight generation.
func (r *Randomizer) EndRandomizer() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = nil
	r.tracker.Deactivate()
}

// IsRandomizerEnabled reports whether a seed is committed.
func (r *Randomizer) IsRandomizerEnabled() bool {
	return r.tracker.IsActive()
}

// IsGenerating reports whether a seed is waiting for a beatable candidate.
func (r *Randomizer) IsGenerating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// Attempts returns the attempt count of the in-flight generation.
func (r *Randomizer) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return 0
	}
	return r.pending.attempts
}
