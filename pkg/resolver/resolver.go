// Package resolver repairs a bijection at grant time so that a freshly
// earned unlock is never useless.
package resolver

import (
	"log/slog"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// Ledger is the completion state the resolver consults. Unlock queries are
// ever-scoped.
type Ledger interface {
	domain.UnlockState
	IsObjectiveCompleted(id domain.ObjectiveID) bool
}

// Resolver swaps useless unlocks for their prerequisites.
type Resolver struct {
	table  *PrerequisiteTable
	logger *slog.Logger
}

// NewResolver creates a resolver over table.
func NewResolver(table *PrerequisiteTable, logger *slog.Logger) *Resolver {
	return &Resolver{table: table, logger: logger}
}

// Table returns the prerequisite table.
func (r *Resolver) Table() *PrerequisiteTable {
	return r.table
}

// Substitute reports the unlock that should be granted instead of u, if u
// would be useless now. ok is false when u is fine as it is.
//
// The preferred substitute is the best candidate that is still to be earned
// and whose own prerequisites are met; otherwise the best candidate still to
// be earned.
func (r *Resolver) Substitute(b *domain.Bijection, ledger Ledger, u domain.Unlock) (domain.Unlock, bool) {
	candidates := r.table.Candidates(u)
	if len(candidates) == 0 {
		return nil, false
	}
	for _, c := range candidates {
		if ledger.IsUnlocked(c.ID(), false) {
			return nil, false
		}
	}

	var fallback domain.Unlock
	for _, c := range candidates {
		if !r.pending(b, ledger, c) {
			continue
		}
		if r.satisfied(ledger, c) {
			return c, true
		}
		if fallback == nil {
			fallback = c
		}
	}
	if fallback == nil {
		return nil, false
	}
	return fallback, true
}

// pending reports whether c is bound to an objective not yet completed.
func (r *Resolver) pending(b *domain.Bijection, ledger Ledger, c domain.Unlock) bool {
	objective, ok := b.ObjectiveFor(c.ID())
	return ok && !ledger.IsObjectiveCompleted(objective)
}

// satisfied reports whether c has no unmet prerequisite of its own.
func (r *Resolver) satisfied(ledger Ledger, c domain.Unlock) bool {
	own := r.table.Candidates(c)
	if len(own) == 0 {
		return true
	}
	for _, p := range own {
		if ledger.IsUnlocked(p.ID(), false) {
			return true
		}
	}
	return false
}

// Resolve returns the unlock objective should grant, swapping bijection
// entries until the unlock in objective's slot is useful. candidate must be
// the unlock currently bound to objective.
//
// The loop is capped at the bijection size; hitting the cap means the
// prerequisite table has a cycle.
func (r *Resolver) Resolve(b *domain.Bijection, ledger Ledger, objective domain.ObjectiveID, candidate domain.Unlock, emulating bool) (domain.Unlock, error) {
	bound, ok := b.UnlockFor(objective)
	if !ok {
		return nil, customerrors.ErrObjectiveNotBound(string(objective))
	}
	if bound.ID() != candidate.ID() {
		return nil, customerrors.ErrBindingOutOfSync(string(objective), string(bound.ID()), string(candidate.ID()))
	}

	limit := b.Len()
	current := candidate
	for swaps := 0; ; swaps++ {
		substitute, ok := r.Substitute(b, ledger, current)
		if !ok || substitute.ID() == current.ID() {
			return current, nil
		}
		if swaps >= limit {
			return nil, customerrors.ErrSwapLimitExceeded(string(objective), limit)
		}

		other, ok := b.ObjectiveFor(substitute.ID())
		if !ok {
			return nil, customerrors.ErrUnlockNotBound(string(substitute.ID()))
		}
		if err := b.Swap(objective, other); err != nil {
			return nil, err
		}

		if !emulating {
			r.logger.Info("Swapped unlock to satisfy prerequisite",
				"objective_1", objective,
				"objective_2", other,
				"useless", current.ID(),
				"granted", substitute.ID(),
			)
		}
		current = substitute
	}
}
