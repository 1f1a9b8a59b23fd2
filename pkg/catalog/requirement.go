package catalog

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// Requirement is a boolean expression over unlocks. A requirement holds when
// Unlock (if set) is unlocked, every All child holds, and at least one Any
// child holds (if any are given). A nil requirement always holds.
//
//	requires: {all: [{unlock: path:chest}, {unlock: path:dark-room}]}
//	requires: {any: [{unlock: path:chest}, {unlock: path:dark-room}]}
type Requirement struct {
	Unlock domain.UnlockID `json:"unlock,omitempty" yaml:"unlock,omitempty"`
	All    []*Requirement  `json:"all,omitempty" yaml:"all,omitempty"`
	Any    []*Requirement  `json:"any,omitempty" yaml:"any,omitempty"`
}

// Satisfied evaluates the requirement against state.
func (r *Requirement) Satisfied(state domain.UnlockState, forRun bool) bool {
	if r == nil {
		return true
	}
	if r.Unlock != "" && !state.IsUnlocked(r.Unlock, forRun) {
		return false
	}
	for _, child := range r.All {
		if !child.Satisfied(state, forRun) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, child := range r.Any {
		if child.Satisfied(state, forRun) {
			return true
		}
	}
	return false
}

// UnlockIDs returns every unlock the requirement mentions, depth first.
func (r *Requirement) UnlockIDs() []domain.UnlockID {
	if r == nil {
		return nil
	}
	var ids []domain.UnlockID
	if r.Unlock != "" {
		ids = append(ids, r.Unlock)
	}
	for _, child := range r.All {
		ids = append(ids, child.UnlockIDs()...)
	}
	for _, child := range r.Any {
		ids = append(ids, child.UnlockIDs()...)
	}
	return ids
}

// isEmpty reports whether the requirement has no terms at all.
func (r *Requirement) isEmpty() bool {
	return r.Unlock == "" && len(r.All) == 0 && len(r.Any) == 0
}
