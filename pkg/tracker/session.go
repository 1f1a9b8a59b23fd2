package tracker

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/resolver"
)

// Session is one bijection together with its completion state. It is the
// unit the tracker owns for live play and the validator drives in emulate
// mode. A Session is not safe for concurrent use.
type Session struct {
	bijection *domain.Bijection
	mode      domain.Mode
	resolver  *resolver.Resolver
	logger    *slog.Logger

	completedObjectives    []domain.ObjectiveID
	completedUnlocks       []domain.Unlock
	completedUnlocksForRun []domain.Unlock

	objectiveIndex mapset.Set[domain.ObjectiveID]
	unlockIndex    mapset.Set[domain.UnlockID]
	runIndex       mapset.Set[domain.UnlockID]
}

// NewSession starts an empty completion state over b. The session takes
// ownership of b; pass a clone to keep the original untouched.
func NewSession(b *domain.Bijection, mode domain.Mode, r *resolver.Resolver, logger *slog.Logger) *Session {
	return &Session{
		bijection:      b,
		mode:           mode,
		resolver:       r,
		logger:         logger,
		objectiveIndex: mapset.New[domain.ObjectiveID](),
		unlockIndex:    mapset.New[domain.UnlockID](),
		runIndex:       mapset.New[domain.UnlockID](),
	}
}

// RestoreSession rebuilds a session from persisted completion lists. Each
// completed objective must still be bound to the unlock recorded for it,
// since swaps never touch completed objectives.
func RestoreSession(b *domain.Bijection, mode domain.Mode, r *resolver.Resolver, logger *slog.Logger,
	objectives []domain.ObjectiveID, unlocks []domain.Unlock) (*Session, error) {
	if len(objectives) != len(unlocks) {
		return nil, customerrors.ErrBijectionCorrupt("completed objectives and unlocks differ in length")
	}

	s := NewSession(b, mode, r, logger)
	for i, objective := range objectives {
		bound, ok := b.UnlockFor(objective)
		if !ok {
			return nil, customerrors.ErrObjectiveNotBound(string(objective))
		}
		if bound.ID() != unlocks[i].ID() {
			return nil, customerrors.ErrBindingOutOfSync(string(objective), string(bound.ID()), string(unlocks[i].ID()))
		}
		if s.objectiveIndex.Has(objective) {
			return nil, customerrors.ErrBijectionCorrupt("objective " + string(objective) + " completed twice")
		}
		s.completedObjectives = append(s.completedObjectives, objective)
		s.objectiveIndex.Put(objective)
		s.completedUnlocks = append(s.completedUnlocks, bound)
		s.unlockIndex.Put(bound.ID())
	}
	return s, nil
}

// AddObjective completes objective and returns the unlock it granted. It
// returns nil when the objective was already completed.
//
// In casual mode the bound unlock first goes through the swap resolver. When
// emulating, swaps are not logged and the run-scoped list is left alone.
func (s *Session) AddObjective(objective domain.Objective, emulating bool) (domain.Unlock, error) {
	id := objective.ID()
	if s.objectiveIndex.Has(id) {
		return nil, nil
	}

	candidate, ok := s.bijection.UnlockFor(id)
	if !ok {
		return nil, customerrors.ErrObjectiveNotBound(string(id))
	}

	s.completedObjectives = append(s.completedObjectives, id)
	s.objectiveIndex.Put(id)

	granted := candidate
	if s.mode != domain.ModeHardcore {
		resolved, err := s.resolver.Resolve(s.bijection, s, id, candidate, emulating)
		if err != nil {
			// Leave completion as it was before the call.
			s.completedObjectives = s.completedObjectives[:len(s.completedObjectives)-1]
			s.objectiveIndex.Remove(id)
			return nil, err
		}
		granted = resolved
	}

	s.grant(granted, emulating)
	return granted, nil
}

// Force completes the objective bound to unlock without swap resolution.
// It returns the objective, or nil when the unlock was already granted.
func (s *Session) Force(unlock domain.UnlockID) (domain.ObjectiveID, error) {
	if s.unlockIndex.Has(unlock) {
		return "", nil
	}
	objective, ok := s.bijection.ObjectiveFor(unlock)
	if !ok {
		return "", customerrors.ErrUnlockNotBound(string(unlock))
	}
	bound, _ := s.bijection.UnlockFor(objective)

	s.completedObjectives = append(s.completedObjectives, objective)
	s.objectiveIndex.Put(objective)
	s.grant(bound, false)
	return objective, nil
}

func (s *Session) grant(u domain.Unlock, emulating bool) {
	s.completedUnlocks = append(s.completedUnlocks, u)
	s.unlockIndex.Put(u.ID())
	if !emulating {
		s.completedUnlocksForRun = append(s.completedUnlocksForRun, u)
		s.runIndex.Put(u.ID())
	}
}

// StartRun clears the run-scoped unlock list.
func (s *Session) StartRun() {
	s.completedUnlocksForRun = nil
	s.runIndex = mapset.New[domain.UnlockID]()
}

// IsUnlocked implements domain.UnlockState. An unlock outside the bijection
// is not randomized and always available. forRun excludes unlocks obtained
// during the current run; they take effect from the next run on.
func (s *Session) IsUnlocked(id domain.UnlockID, forRun bool) bool {
	if !s.bijection.HasUnlock(id) {
		return true
	}
	if !s.unlockIndex.Has(id) {
		return false
	}
	return !forRun || !s.runIndex.Has(id)
}

// IsObjectiveCompleted reports whether objective has been completed.
func (s *Session) IsObjectiveCompleted(id domain.ObjectiveID) bool {
	return s.objectiveIndex.Has(id)
}

// IsComplete reports whether every unlock has been granted.
func (s *Session) IsComplete() bool {
	return len(s.completedUnlocks) == s.bijection.Len()
}

// Mode returns the grant mode.
func (s *Session) Mode() domain.Mode {
	return s.mode
}

// Bijection returns the live bijection. Callers must not modify it.
func (s *Session) Bijection() *domain.Bijection {
	return s.bijection
}

// CompletedObjectives returns completed objectives in completion order.
func (s *Session) CompletedObjectives() []domain.ObjectiveID {
	return append([]domain.ObjectiveID(nil), s.completedObjectives...)
}

// CompletedUnlocks returns granted unlocks in grant order.
func (s *Session) CompletedUnlocks() []domain.Unlock {
	return append([]domain.Unlock(nil), s.completedUnlocks...)
}

// CompletedUnlocksForRun returns the unlocks granted during the current run.
func (s *Session) CompletedUnlocksForRun() []domain.Unlock {
	return append([]domain.Unlock(nil), s.completedUnlocksForRun...)
}
