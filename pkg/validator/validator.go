package validator

import (
	"log/slog"
	"slices"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	"github.com/unlock-randomizer/randomizer-common/pkg/reachability"
	"github.com/unlock-randomizer/randomizer-common/pkg/resolver"
	"github.com/unlock-randomizer/randomizer-common/pkg/tracker"
)

// Playthrough is the emulated completion order found for a bijection.
type Playthrough struct {
	Beatable bool
	// Order lists objectives in the order they were completed.
	Order []domain.ObjectiveID
	// Grants[i] is the unlock granted for Order[i], after swap resolution.
	Grants []domain.Unlock
	// Passes is the number of sweeps over the objective list.
	Passes int
}

// Validator decides whether a candidate bijection can be completed. It runs
// an assumed-fill search: sweep every uncompleted objective, complete the
// ones the oracle says can be attempted, and repeat until everything is
// unlocked or a sweep makes no progress.
type Validator struct {
	oracle     reachability.Oracle
	resolver   *resolver.Resolver
	objectives []domain.Objective
	logger     *slog.Logger
}

// NewValidator creates a validator sweeping objectives in the given order.
func NewValidator(oracle reachability.Oracle, r *resolver.Resolver, objectives []domain.Objective, logger *slog.Logger) *Validator {
	return &Validator{
		oracle:     oracle,
		resolver:   r,
		objectives: slices.Clone(objectives),
		logger:     logger,
	}
}

// IsBeatable reports whether every unlock in b can be obtained. b itself is
// never modified.
func (v *Validator) IsBeatable(b *domain.Bijection, mode domain.Mode) (bool, error) {
	p, err := v.Simulate(b, mode)
	if err != nil {
		return false, err
	}
	return p.Beatable, nil
}

// Simulate runs the search on a clone of b and returns the playthrough it
// found. The error is non-nil only for invariant violations.
func (v *Validator) Simulate(b *domain.Bijection, mode domain.Mode) (Playthrough, error) {
	session := tracker.NewSession(b.Clone(), mode, v.resolver, v.logger)
	var p Playthrough

	for !session.IsComplete() {
		p.Passes++
		progressed := false
		for _, o := range v.objectives {
			if session.IsObjectiveCompleted(o.ID()) || !v.oracle.CanAttempt(o, session) {
				continue
			}
			granted, err := session.AddObjective(o, true)
			if err != nil {
				return Playthrough{}, err
			}
			if granted == nil {
				continue
			}
			p.Order = append(p.Order, o.ID())
			p.Grants = append(p.Grants, granted)
			progressed = true
		}
		if !progressed {
			v.logger.Debug("Bijection rejected",
				"completed", len(p.Order),
				"total", b.Len(),
				"passes", p.Passes,
			)
			return p, nil
		}
	}

	p.Beatable = true
	return p, nil
}
