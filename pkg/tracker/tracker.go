package tracker

import (
	"log/slog"
	"sync"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/notifier"
	"github.com/unlock-randomizer/randomizer-common/pkg/resolver"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
)

// Tracker owns the live randomizer state. It is either inactive (no seed,
// nothing unlocked) or active with a committed bijection.
type Tracker struct {
	mu       sync.RWMutex
	active   *activeState // nil while inactive
	resolver *resolver.Resolver
	notifier notifier.UnlockNotifier
	logger   *slog.Logger
}

type activeState struct {
	seed           rng.Seed
	runID          string
	catalogVersion string
	session        *Session
	challenge      domain.Challenge // empty outside a challenge run
}

// Commit is everything needed to activate a tracker.
type Commit struct {
	Seed           rng.Seed
	Mode           domain.Mode
	RunID          string
	CatalogVersion string
	Bijection      *domain.Bijection
}

// NewTracker creates an inactive tracker.
func NewTracker(r *resolver.Resolver, n notifier.UnlockNotifier, logger *slog.Logger) *Tracker {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Tracker{resolver: r, notifier: n, logger: logger}
}

// Activate replaces any current state with a fresh session over c.Bijection.
func (t *Tracker) Activate(c Commit) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = &activeState{
		seed:           c.Seed,
		runID:          c.RunID,
		catalogVersion: c.CatalogVersion,
		session:        NewSession(c.Bijection, c.Mode, t.resolver, t.logger),
	}
	t.logger.Info("Randomizer activated",
		"seed", c.Seed.String(),
		"mode", c.Mode,
		"run_id", c.RunID,
		"entries", c.Bijection.Len(),
	)
}

// Restore activates the tracker with previously saved completion state.
func (t *Tracker) Restore(c Commit, objectives []domain.ObjectiveID, unlocks []domain.Unlock) error {
	session, err := RestoreSession(c.Bijection, c.Mode, t.resolver, t.logger, objectives, unlocks)
	if err != nil {
		t.logger.Error("Failed to restore randomizer state",
			"seed", c.Seed.String(),
			"run_id", c.RunID,
			"error", err,
		)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = &activeState{
		seed:           c.Seed,
		runID:          c.RunID,
		catalogVersion: c.CatalogVersion,
		session:        session,
	}
	t.logger.Info("Randomizer restored",
		"seed", c.Seed.String(),
		"mode", c.Mode,
		"run_id", c.RunID,
		"completed", len(objectives),
	)
	return nil
}

// Deactivate discards all state.
func (t *Tracker) Deactivate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		t.logger.Info("Randomizer deactivated", "seed", t.active.seed.String(), "run_id", t.active.runID)
	}
	t.active = nil
}

// IsActive reports whether a seed is committed.
func (t *Tracker) IsActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active != nil
}

// Seed returns the active seed.
func (t *Tracker) Seed() (rng.Seed, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return 0, false
	}
	return t.active.seed, true
}

// Mode returns the active mode.
func (t *Tracker) Mode() (domain.Mode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return "", false
	}
	return t.active.session.Mode(), true
}

// RunID returns the identifier of the committed seed.
func (t *Tracker) RunID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return ""
	}
	return t.active.runID
}

// StartRun begins a new gameplay attempt. challenge is empty for a normal
// run. Unlocks granted during the previous run take effect from now on.
func (t *Tracker) StartRun(challenge domain.Challenge) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return
	}
	t.active.session.StartRun()
	t.active.challenge = challenge
}

// AddObjective records a live objective completion and returns the unlock
// it granted, or nil if nothing was granted.
//
// Nothing happens while inactive, for an objective already completed, or
// when the objective does not match the run: challenge objectives only count
// during a challenge run and all others only outside one.
func (t *Tracker) AddObjective(objective domain.Objective) (domain.Unlock, error) {
	t.mu.Lock()
	granted, err := t.addObjectiveLocked(objective)
	t.mu.Unlock()

	if granted != nil {
		t.notifier.NotifyUnlock(objective, granted)
	}
	return granted, err
}

func (t *Tracker) addObjectiveLocked(objective domain.Objective) (domain.Unlock, error) {
	if t.active == nil {
		return nil, nil
	}
	inChallenge := t.active.challenge != ""
	if _, isChallenge := objective.(domain.ChallengeObjective); isChallenge != inChallenge {
		t.logger.Debug("Objective ignored outside its run context",
			"objective", objective.ID(),
			"challenge", t.active.challenge,
		)
		return nil, nil
	}

	granted, err := t.active.session.AddObjective(objective, false)
	if err != nil {
		t.logInvariant("add objective", err, "objective", objective.ID())
		return nil, err
	}
	if granted == nil {
		return nil, nil
	}

	t.logger.Info("Objective completed",
		"objective", objective.ID(),
		"unlock", granted.ID(),
		"completed", len(t.active.session.completedObjectives),
		"total", t.active.session.bijection.Len(),
	)
	return granted, nil
}

// ForceUnlock grants unlock immediately by completing the objective bound to
// it, bypassing run gating and swap resolution. Intended for debug tooling.
func (t *Tracker) ForceUnlock(unlock domain.Unlock) error {
	t.mu.Lock()
	if t.active == nil {
		t.mu.Unlock()
		return customerrors.ErrRandomizerInactive("force unlock")
	}
	objectiveID, err := t.active.session.Force(unlock.ID())
	if err != nil {
		t.logInvariant("force unlock", err, "unlock", unlock.ID())
		t.mu.Unlock()
		return err
	}
	t.mu.Unlock()

	if objectiveID == "" {
		return nil
	}

	t.logger.Warn("Unlock forced", "unlock", unlock.ID(), "objective", objectiveID)
	if objective, err := domain.ParseObjectiveID(objectiveID); err == nil {
		t.notifier.NotifyUnlock(objective, unlock)
	}
	return nil
}

// logInvariant logs err at Error when it signals corrupted state.
func (t *Tracker) logInvariant(op string, err error, args ...any) {
	if !customerrors.IsInvariantViolation(err) {
		return
	}
	attrs := append([]any{"operation", op, "error", err}, args...)
	if t.active != nil {
		attrs = append(attrs, "seed", t.active.seed.String(), "run_id", t.active.runID)
	}
	t.logger.Error("Randomizer invariant violated", attrs...)
}

// IsObjectiveCompleted reports whether objective has been completed.
func (t *Tracker) IsObjectiveCompleted(id domain.ObjectiveID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active != nil && t.active.session.IsObjectiveCompleted(id)
}

// CompletedObjectives returns completed objectives in completion order.
func (t *Tracker) CompletedObjectives() []domain.ObjectiveID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return nil
	}
	return t.active.session.CompletedObjectives()
}

// CompletedUnlocks returns granted unlocks in grant order.
func (t *Tracker) CompletedUnlocks() []domain.Unlock {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return nil
	}
	return t.active.session.CompletedUnlocks()
}

// CompletedUnlocksForRun returns unlocks granted during the current run.
func (t *Tracker) CompletedUnlocksForRun() []domain.Unlock {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return nil
	}
	return t.active.session.CompletedUnlocksForRun()
}

// Snapshot returns the persistable state. Slot and SavedAt are left for the
// caller to fill in.
func (t *Tracker) Snapshot() (domain.SaveState, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return domain.SaveState{}, customerrors.ErrRandomizerInactive("snapshot")
	}

	s := t.active.session
	unlocks := make([]domain.UnlockID, 0, len(s.completedUnlocks))
	for _, u := range s.completedUnlocks {
		unlocks = append(unlocks, u.ID())
	}
	return domain.SaveState{
		RunID:               t.active.runID,
		Seed:                uint32(t.active.seed),
		Mode:                s.Mode(),
		CatalogVersion:      t.active.catalogVersion,
		Bijection:           s.bijection.Pairs(),
		CompletedObjectives: s.CompletedObjectives(),
		CompletedUnlocks:    unlocks,
	}, nil
}
