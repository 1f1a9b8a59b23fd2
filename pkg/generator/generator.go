package generator

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/rng"
)

// Rules are the catalog facts the generator needs beyond the two pools.
type Rules struct {
	// StartingCharacter is always unlocked and heads the character chain.
	StartingCharacter domain.Character
	// Characters are the chain candidates in catalog order.
	Characters []domain.Character
	// HardCharacters must land in the second half of the chain.
	HardCharacters map[domain.Character]bool
	// ExcludedKinds are never used as a chain link.
	ExcludedKinds map[domain.ObjectiveKind]bool
	// EarlyUnlocks are bound, in order, to objectives drawn from EasyObjectives.
	EarlyUnlocks   []domain.UnlockID
	EasyObjectives []domain.ObjectiveID
}

// RulesFromCatalog extracts the generation rules of c.
func RulesFromCatalog(c *catalog.Catalog) Rules {
	chars := make([]domain.Character, 0, len(c.Characters))
	for _, ch := range c.Characters {
		chars = append(chars, ch.Name)
	}
	return Rules{
		StartingCharacter: c.StartingCharacter,
		Characters:        chars,
		HardCharacters:    c.HardCharacters(),
		ExcludedKinds:     c.ExcludedKinds(),
		EarlyUnlocks:      slices.Clone(c.Generation.EarlyUnlocks),
		EasyObjectives:    slices.Clone(c.Generation.EasyObjectives),
	}
}

// Generator builds candidate bijections. It never checks completability;
// that is the validator's job.
type Generator struct {
	rules  Rules
	logger *slog.Logger
}

// NewGenerator creates a generator for rules.
func NewGenerator(rules Rules, logger *slog.Logger) *Generator {
	return &Generator{rules: rules, logger: logger}
}

// HardEntitiesLate reports whether no hard entity sits in the first half of
// perm, i.e. every hard entity index i satisfies 2*i >= len(perm).
func HardEntitiesLate[T comparable](perm []T, hard map[T]bool) bool {
	for i, e := range perm {
		if hard[e] && 2*i < len(perm) {
			return false
		}
	}
	return true
}

// pools holds what is still unbound during one Generate call.
type pools struct {
	objectives []domain.Objective
	unlocks    []domain.Unlock
}

func (p *pools) takeObjective(id domain.ObjectiveID) (domain.Objective, bool) {
	i := slices.IndexFunc(p.objectives, func(o domain.Objective) bool { return o.ID() == id })
	if i < 0 {
		return nil, false
	}
	o := p.objectives[i]
	p.objectives = slices.Delete(p.objectives, i, i+1)
	return o, true
}

func (p *pools) takeUnlock(id domain.UnlockID) (domain.Unlock, bool) {
	i := slices.IndexFunc(p.unlocks, func(u domain.Unlock) bool { return u.ID() == id })
	if i < 0 {
		return nil, false
	}
	u := p.unlocks[i]
	p.unlocks = slices.Delete(p.unlocks, i, i+1)
	return u, true
}

func (p *pools) hasUnlock(id domain.UnlockID) bool {
	return slices.ContainsFunc(p.unlocks, func(u domain.Unlock) bool { return u.ID() == id })
}

// Generate draws one complete bijection from stream. Phases run in order:
// early unlocks onto easy objectives, the character chain, then a uniform
// fill of everything left. Errors mean the inputs are inconsistent, never
// that the draw was unlucky.
func (g *Generator) Generate(stream *rng.Stream, objectives []domain.Objective, unlocks []domain.Unlock) (*domain.Bijection, error) {
	if len(objectives) != len(unlocks) {
		return nil, customerrors.ErrGenerationFailed("setup",
			fmt.Sprintf("%d objectives but %d unlocks", len(objectives), len(unlocks)))
	}

	p := &pools{objectives: slices.Clone(objectives), unlocks: slices.Clone(unlocks)}
	b := domain.NewBijection(len(unlocks))
	startDraws := stream.Draws()

	if err := g.bindEarly(stream, p, b); err != nil {
		return nil, err
	}
	if err := g.bindChain(stream, p, b); err != nil {
		return nil, err
	}
	if err := g.fill(stream, p, b); err != nil {
		return nil, err
	}

	g.logger.Debug("Bijection generated",
		"seed", stream.Seed().String(),
		"entries", b.Len(),
		"draws", stream.Draws()-startDraws,
	)
	return b, nil
}

func (g *Generator) bindEarly(stream *rng.Stream, p *pools, b *domain.Bijection) error {
	easy := slices.Clone(g.rules.EasyObjectives)
	for _, unlockID := range g.rules.EarlyUnlocks {
		u, ok := p.takeUnlock(unlockID)
		if !ok {
			return customerrors.ErrGenerationFailed("early", "unlock "+string(unlockID)+" is not in the pool")
		}

		var objectiveID domain.ObjectiveID
		objectiveID, easy, ok = rng.PickAndRemove(stream, easy)
		if !ok {
			return customerrors.ErrGenerationFailed("early", "ran out of easy objectives")
		}
		if _, ok := p.takeObjective(objectiveID); !ok {
			return customerrors.ErrGenerationFailed("early", "easy objective "+string(objectiveID)+" is not in the pool")
		}
		if err := b.Bind(objectiveID, u); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) bindChain(stream *rng.Stream, p *pools, b *domain.Bijection) error {
	var chain []domain.Character
	hard := 0
	for _, ch := range g.rules.Characters {
		if !p.hasUnlock(domain.CharacterUnlock{Character: ch}.ID()) {
			continue
		}
		chain = append(chain, ch)
		if g.rules.HardCharacters[ch] {
			hard++
		}
	}
	if 2*hard > len(chain) {
		return customerrors.ErrGenerationFailed("chain",
			fmt.Sprintf("%d hard characters do not fit the second half of a chain of %d", hard, len(chain)))
	}

	reshuffles := 0
	for {
		rng.Shuffle(stream, chain)
		if HardEntitiesLate(chain, g.rules.HardCharacters) {
			break
		}
		reshuffles++
	}
	g.logger.Debug("Character chain drawn", "chain", chain, "reshuffles", reshuffles)

	prev := g.rules.StartingCharacter
	for _, ch := range chain {
		basic := g.basicObjectives(p, prev)
		o, ok := rng.Pick(stream, basic)
		if !ok {
			return customerrors.ErrGenerationFailed("chain", "no basic objective left for "+string(prev))
		}
		p.takeObjective(o.ID())
		u, _ := p.takeUnlock(domain.CharacterUnlock{Character: ch}.ID())
		if err := b.Bind(o.ID(), u); err != nil {
			return err
		}
		prev = ch
	}
	return nil
}

// basicObjectives lists the free objectives of character whose kind is not
// excluded, in pool order.
func (g *Generator) basicObjectives(p *pools, character domain.Character) []domain.Objective {
	var basic []domain.Objective
	for _, o := range p.objectives {
		co, ok := o.(domain.CharacterObjective)
		if !ok || co.Character != character || g.rules.ExcludedKinds[co.Kind] {
			continue
		}
		basic = append(basic, o)
	}
	return basic
}

func (g *Generator) fill(stream *rng.Stream, p *pools, b *domain.Bijection) error {
	objectives := p.objectives
	for _, u := range p.unlocks {
		var o domain.Objective
		var ok bool
		o, objectives, ok = rng.PickAndRemove(stream, objectives)
		if !ok {
			return customerrors.ErrGenerationFailed("fill", "objective pool exhausted")
		}
		if err := b.Bind(o.ID(), u); err != nil {
			return err
		}
	}
	p.objectives, p.unlocks = nil, nil
	return b.Verify()
}
