// Package reachability answers whether an objective can currently be
// attempted given what has been unlocked.
package reachability

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// Oracle decides whether an objective can be attempted in the given state.
// Implementations must be pure functions of the state.
type Oracle interface {
	CanAttempt(objective domain.Objective, state domain.UnlockState) bool
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(objective domain.Objective, state domain.UnlockState) bool

// CanAttempt calls f.
func (f OracleFunc) CanAttempt(objective domain.Objective, state domain.UnlockState) bool {
	return f(objective, state)
}

// Always is the oracle of a catalog without gates.
var Always = OracleFunc(func(domain.Objective, domain.UnlockState) bool { return true })

// CatalogOracle evaluates the requirements declared in a catalog. Queries
// use ever-scoped state: an unlock obtained anywhere in the simulated
// timeline counts.
type CatalogOracle struct {
	kinds      map[domain.ObjectiveKind]*catalog.Requirement
	challenges map[domain.Challenge]catalog.ChallengeEntry
	bosses     map[domain.Boss]*catalog.Requirement
	hardMode   *catalog.Requirement
}

// NewCatalogOracle indexes the requirements of c.
func NewCatalogOracle(c *catalog.Catalog) *CatalogOracle {
	o := &CatalogOracle{
		kinds:      make(map[domain.ObjectiveKind]*catalog.Requirement, len(c.ObjectiveKinds)),
		challenges: make(map[domain.Challenge]catalog.ChallengeEntry, len(c.Challenges)),
		bosses:     make(map[domain.Boss]*catalog.Requirement, len(c.Bosses)),
		hardMode:   c.HardModeRequires,
	}
	for _, k := range c.ObjectiveKinds {
		o.kinds[k.Name] = k.Requires
	}
	for _, ch := range c.Challenges {
		o.challenges[ch.Name] = ch
	}
	for _, b := range c.Bosses {
		o.bosses[b.Name] = b.Requires
	}
	return o
}

// CanAttempt implements Oracle.
func (o *CatalogOracle) CanAttempt(objective domain.Objective, state domain.UnlockState) bool {
	return domain.VisitObjective[bool](objective, attemptCheck{oracle: o, state: state})
}

type attemptCheck struct {
	oracle *CatalogOracle
	state  domain.UnlockState
}

func (a attemptCheck) Character(obj domain.CharacterObjective) bool {
	if !a.state.IsUnlocked(domain.CharacterUnlock{Character: obj.Character}.ID(), false) {
		return false
	}
	if !a.oracle.kinds[obj.Kind].Satisfied(a.state, false) {
		return false
	}
	if obj.Difficulty == domain.DifficultyHard {
		return a.oracle.hardMode.Satisfied(a.state, false)
	}
	return true
}

func (a attemptCheck) Challenge(obj domain.ChallengeObjective) bool {
	if !a.state.IsUnlocked(domain.ChallengeUnlock{Challenge: obj.Challenge}.ID(), false) {
		return false
	}
	entry, ok := a.oracle.challenges[obj.Challenge]
	if !ok {
		return true
	}
	if !a.state.IsUnlocked(domain.CharacterUnlock{Character: entry.Character}.ID(), false) {
		return false
	}
	return entry.Requires.Satisfied(a.state, false)
}

func (a attemptCheck) Boss(obj domain.BossObjective) bool {
	return a.oracle.bosses[obj.Boss].Satisfied(a.state, false)
}
