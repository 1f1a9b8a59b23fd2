package domain

import (
	"fmt"
	"sort"

	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// Pair is one persisted bijection entry.
type Pair struct {
	Objective ObjectiveID `json:"objective_id" yaml:"objective_id"`
	Unlock    UnlockID    `json:"unlock_id" yaml:"unlock_id"`
}

// Bijection is the one-to-one assignment between objectives and unlocks.
// The two maps are inverses of each other after every exported operation.
type Bijection struct {
	unlockByObjective map[ObjectiveID]Unlock
	objectiveByUnlock map[UnlockID]ObjectiveID
}

// NewBijection creates an empty bijection sized for n entries.
func NewBijection(n int) *Bijection {
	return &Bijection{
		unlockByObjective: make(map[ObjectiveID]Unlock, n),
		objectiveByUnlock: make(map[UnlockID]ObjectiveID, n),
	}
}

// NewBijectionFromPairs rebuilds a bijection from persisted pairs.
func NewBijectionFromPairs(pairs []Pair) (*Bijection, error) {
	b := NewBijection(len(pairs))
	for _, p := range pairs {
		u, err := ParseUnlockID(p.Unlock)
		if err != nil {
			return nil, err
		}
		if _, err := ParseObjectiveID(p.Objective); err != nil {
			return nil, err
		}
		if err := b.Bind(p.Objective, u); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Bind maps objective to unlock. Neither side may already be bound.
func (b *Bijection) Bind(objective ObjectiveID, unlock Unlock) error {
	if _, taken := b.unlockByObjective[objective]; taken {
		return customerrors.ErrBijectionConflict(string(objective), string(unlock.ID()))
	}
	if _, taken := b.objectiveByUnlock[unlock.ID()]; taken {
		return customerrors.ErrBijectionConflict(string(objective), string(unlock.ID()))
	}
	b.unlockByObjective[objective] = unlock
	b.objectiveByUnlock[unlock.ID()] = objective
	return nil
}

// UnlockFor returns the unlock currently bound to objective.
func (b *Bijection) UnlockFor(objective ObjectiveID) (Unlock, bool) {
	u, ok := b.unlockByObjective[objective]
	return u, ok
}

// ObjectiveFor returns the objective currently bound to unlock.
func (b *Bijection) ObjectiveFor(unlock UnlockID) (ObjectiveID, bool) {
	o, ok := b.objectiveByUnlock[unlock]
	return o, ok
}

// HasUnlock reports whether unlock takes part in the bijection at all.
func (b *Bijection) HasUnlock(unlock UnlockID) bool {
	_, ok := b.objectiveByUnlock[unlock]
	return ok
}

// Swap exchanges the unlocks bound to objectives first and second.
func (b *Bijection) Swap(first, second ObjectiveID) error {
	u1, ok := b.unlockByObjective[first]
	if !ok {
		return customerrors.ErrObjectiveNotBound(string(first))
	}
	u2, ok := b.unlockByObjective[second]
	if !ok {
		return customerrors.ErrObjectiveNotBound(string(second))
	}
	b.unlockByObjective[first] = u2
	b.unlockByObjective[second] = u1
	b.objectiveByUnlock[u2.ID()] = first
	b.objectiveByUnlock[u1.ID()] = second
	return nil
}

// Len returns the number of entries.
func (b *Bijection) Len() int {
	return len(b.unlockByObjective)
}

// Clone returns an independent copy.
func (b *Bijection) Clone() *Bijection {
	c := NewBijection(b.Len())
	for o, u := range b.unlockByObjective {
		c.unlockByObjective[o] = u
	}
	for u, o := range b.objectiveByUnlock {
		c.objectiveByUnlock[u] = o
	}
	return c
}

// Pairs returns every entry sorted by objective ID.
func (b *Bijection) Pairs() []Pair {
	pairs := make([]Pair, 0, b.Len())
	for o, u := range b.unlockByObjective {
		pairs = append(pairs, Pair{Objective: o, Unlock: u.ID()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Objective < pairs[j].Objective })
	return pairs
}

// Verify checks that both maps have the same size and are inverses.
func (b *Bijection) Verify() error {
	if len(b.unlockByObjective) != len(b.objectiveByUnlock) {
		return customerrors.ErrBijectionCorrupt(fmt.Sprintf("%d objectives but %d unlocks",
			len(b.unlockByObjective), len(b.objectiveByUnlock)))
	}
	for o, u := range b.unlockByObjective {
		back, ok := b.objectiveByUnlock[u.ID()]
		if !ok || back != o {
			return customerrors.ErrBijectionCorrupt(fmt.Sprintf("%s -> %s has no inverse", o, u.ID()))
		}
	}
	return nil
}

// Covers verifies that the bijection maps exactly the given objectives and unlocks.
func (b *Bijection) Covers(objectives []Objective, unlocks []Unlock) error {
	if err := b.Verify(); err != nil {
		return err
	}
	if len(objectives) != b.Len() || len(unlocks) != b.Len() {
		return customerrors.ErrBijectionCorrupt(fmt.Sprintf("size %d does not match %d objectives / %d unlocks",
			b.Len(), len(objectives), len(unlocks)))
	}
	for _, o := range objectives {
		if _, ok := b.unlockByObjective[o.ID()]; !ok {
			return customerrors.ErrObjectiveNotBound(string(o.ID()))
		}
	}
	for _, u := range unlocks {
		if _, ok := b.objectiveByUnlock[u.ID()]; !ok {
			return customerrors.ErrUnlockNotBound(string(u.ID()))
		}
	}
	return nil
}
