package catalog

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// Catalog is the static description of everything a seed can randomize.
// Objectives are derived from characters, kinds, challenges and bosses;
// unlocks are listed explicitly by ID.
type Catalog struct {
	Version           string              `json:"version" yaml:"version"`
	StartingCharacter domain.Character    `json:"starting_character" yaml:"starting_character"`
	Characters        []CharacterEntry    `json:"characters" yaml:"characters"`
	ObjectiveKinds    []KindEntry         `json:"objective_kinds" yaml:"objective_kinds"`
	HardModeRequires  *Requirement        `json:"hard_mode_requires,omitempty" yaml:"hard_mode_requires,omitempty"`
	Challenges        []ChallengeEntry    `json:"challenges" yaml:"challenges"`
	Bosses            []BossEntry         `json:"bosses" yaml:"bosses"`
	Unlocks           []domain.UnlockID   `json:"unlocks" yaml:"unlocks"`
	Generation        GenerationRules     `json:"generation" yaml:"generation"`
	Prerequisites     []PrerequisiteEntry `json:"prerequisites" yaml:"prerequisites"`
}

// CharacterEntry is an unlockable character. Hard characters must appear in
// the second half of the character chain.
type CharacterEntry struct {
	Name domain.Character `json:"name" yaml:"name"`
	Hard bool             `json:"hard,omitempty" yaml:"hard,omitempty"`
}

// KindEntry is a per-character objective kind. Excluded kinds are never used
// to chain one character to the next.
type KindEntry struct {
	Name     domain.ObjectiveKind `json:"name" yaml:"name"`
	Excluded bool                 `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Requires *Requirement         `json:"requires,omitempty" yaml:"requires,omitempty"`
}

type ChallengeEntry struct {
	Name      domain.Challenge `json:"name" yaml:"name"`
	Character domain.Character `json:"character" yaml:"character"`
	Requires  *Requirement     `json:"requires,omitempty" yaml:"requires,omitempty"`
}

type BossEntry struct {
	Name     domain.Boss  `json:"name" yaml:"name"`
	Requires *Requirement `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// GenerationRules holds the guaranteed-early bindings.
type GenerationRules struct {
	EarlyUnlocks   []domain.UnlockID    `json:"early_unlocks" yaml:"early_unlocks"`
	EasyObjectives []domain.ObjectiveID `json:"easy_objectives" yaml:"easy_objectives"`
}

// PrerequisiteEntry declares what must be unlocked for Unlock to be useful.
// RequiresAny lists candidates best first; RequiresAnyOf expands to every
// catalog unlock of that type in catalog order.
type PrerequisiteEntry struct {
	Unlock        domain.UnlockID   `json:"unlock" yaml:"unlock"`
	RequiresAny   []domain.UnlockID `json:"requires_any,omitempty" yaml:"requires_any,omitempty"`
	RequiresAnyOf domain.UnlockType `json:"requires_any_of,omitempty" yaml:"requires_any_of,omitempty"`
}

// AllCharacters returns the starting character followed by the listed ones.
func (c *Catalog) AllCharacters() []domain.Character {
	chars := make([]domain.Character, 0, len(c.Characters)+1)
	chars = append(chars, c.StartingCharacter)
	for _, ch := range c.Characters {
		chars = append(chars, ch.Name)
	}
	return chars
}

// HardCharacters returns the set of characters flagged hard.
func (c *Catalog) HardCharacters() map[domain.Character]bool {
	hard := make(map[domain.Character]bool)
	for _, ch := range c.Characters {
		if ch.Hard {
			hard[ch.Name] = true
		}
	}
	return hard
}

// ExcludedKinds returns the set of kinds that are not basic.
func (c *Catalog) ExcludedKinds() map[domain.ObjectiveKind]bool {
	excluded := make(map[domain.ObjectiveKind]bool)
	for _, k := range c.ObjectiveKinds {
		if k.Excluded {
			excluded[k.Name] = true
		}
	}
	return excluded
}

// Objectives derives every objective in a fixed order: characters x kinds x
// difficulties, then challenges, then bosses.
func (c *Catalog) Objectives() []domain.Objective {
	chars := c.AllCharacters()
	difficulties := domain.Difficulties()
	objectives := make([]domain.Objective, 0,
		len(chars)*len(c.ObjectiveKinds)*len(difficulties)+len(c.Challenges)+len(c.Bosses))

	for _, ch := range chars {
		for _, k := range c.ObjectiveKinds {
			for _, d := range difficulties {
				objectives = append(objectives, domain.CharacterObjective{Character: ch, Kind: k.Name, Difficulty: d})
			}
		}
	}
	for _, ch := range c.Challenges {
		objectives = append(objectives, domain.ChallengeObjective{Challenge: ch.Name})
	}
	for _, b := range c.Bosses {
		objectives = append(objectives, domain.BossObjective{Boss: b.Name})
	}
	return objectives
}

// ParseUnlocks decodes the unlock list in catalog order.
func (c *Catalog) ParseUnlocks() ([]domain.Unlock, error) {
	unlocks := make([]domain.Unlock, 0, len(c.Unlocks))
	for _, id := range c.Unlocks {
		u, err := domain.ParseUnlockID(id)
		if err != nil {
			return nil, err
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, nil
}
