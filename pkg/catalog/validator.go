package catalog

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// Validator validates catalog files.
// It ensures a catalog can produce a complete bijection before any seed is generated.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - Valid and unique names for characters, kinds, challenges and bosses
// - Parseable, unique unlock IDs and one unlock per objective
// - A character unlock for every listed character, none for the starting one
// - Requirements and prerequisites that reference catalog unlocks
// - An acyclic prerequisite graph
// - Generation rules that the generator can always satisfy
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(c *Catalog) error {
	if c.Version == "" {
		return invalid("version cannot be empty")
	}

	if err := v.validateNames(c); err != nil {
		return err
	}

	unlockSet, err := v.validateUnlocks(c)
	if err != nil {
		return err
	}

	objectives := c.Objectives()
	if len(objectives) != len(c.Unlocks) {
		return invalid("catalog has %d objectives but %d unlocks", len(objectives), len(c.Unlocks))
	}

	if err := v.validateRequirements(c, unlockSet); err != nil {
		return err
	}

	if err := v.validateGeneration(c, unlockSet, objectives); err != nil {
		return err
	}

	graph, err := v.prerequisiteGraph(c, unlockSet)
	if err != nil {
		return err
	}
	if cycle := FindCycle(c.Unlocks, graph); cycle != nil {
		return invalid("prerequisite cycle: %v", cycle)
	}

	return nil
}

// validateNames checks every named entity.
func (v *Validator) validateNames(c *Catalog) error {
	if err := domain.ValidateName(string(c.StartingCharacter)); err != nil {
		return invalid("starting character: %v", err)
	}

	characters := mapset.New[domain.Character]()
	characters.Put(c.StartingCharacter)
	for _, ch := range c.Characters {
		if err := domain.ValidateName(string(ch.Name)); err != nil {
			return invalid("character: %v", err)
		}
		if characters.Has(ch.Name) {
			return invalid("duplicate character: %s", ch.Name)
		}
		characters.Put(ch.Name)
	}

	if len(c.ObjectiveKinds) == 0 {
		return invalid("catalog must have at least one objective kind")
	}
	kinds := mapset.New[domain.ObjectiveKind]()
	basic := 0
	for _, k := range c.ObjectiveKinds {
		if err := domain.ValidateName(string(k.Name)); err != nil {
			return invalid("objective kind: %v", err)
		}
		if kinds.Has(k.Name) {
			return invalid("duplicate objective kind: %s", k.Name)
		}
		kinds.Put(k.Name)
		if !k.Excluded {
			basic++
		}
	}
	if basic == 0 {
		return invalid("at least one objective kind must not be excluded")
	}

	challenges := mapset.New[domain.Challenge]()
	for _, ch := range c.Challenges {
		if err := domain.ValidateName(string(ch.Name)); err != nil {
			return invalid("challenge: %v", err)
		}
		if challenges.Has(ch.Name) {
			return invalid("duplicate challenge: %s", ch.Name)
		}
		challenges.Put(ch.Name)
		if !characters.Has(ch.Character) {
			return invalid("challenge '%s' uses unknown character '%s'", ch.Name, ch.Character)
		}
	}

	bosses := mapset.New[domain.Boss]()
	for _, b := range c.Bosses {
		if err := domain.ValidateName(string(b.Name)); err != nil {
			return invalid("boss: %v", err)
		}
		if bosses.Has(b.Name) {
			return invalid("duplicate boss: %s", b.Name)
		}
		bosses.Put(b.Name)
	}

	return nil
}

// validateUnlocks parses the unlock list and returns the set of IDs.
func (v *Validator) validateUnlocks(c *Catalog) (mapset.Set[domain.UnlockID], error) {
	unlockSet := mapset.New[domain.UnlockID]()
	challenges := make(map[domain.Challenge]bool, len(c.Challenges))
	for _, ch := range c.Challenges {
		challenges[ch.Name] = true
	}

	for _, id := range c.Unlocks {
		u, err := domain.ParseUnlockID(id)
		if err != nil {
			return unlockSet, invalid("unlock '%s': %v", id, err)
		}
		if unlockSet.Has(id) {
			return unlockSet, invalid("duplicate unlock: %s", id)
		}
		unlockSet.Put(id)

		switch typed := u.(type) {
		case domain.CharacterUnlock:
			if typed.Character == c.StartingCharacter {
				return unlockSet, invalid("starting character '%s' cannot be randomized", typed.Character)
			}
		case domain.ChallengeUnlock:
			if !challenges[typed.Challenge] {
				return unlockSet, invalid("unlock '%s' names an unknown challenge", id)
			}
		}
	}

	for _, ch := range c.Characters {
		id := domain.CharacterUnlock{Character: ch.Name}.ID()
		if !unlockSet.Has(id) {
			return unlockSet, invalid("character '%s' has no unlock '%s'", ch.Name, id)
		}
	}

	return unlockSet, nil
}

// validateRequirements checks that every requirement mentions catalog unlocks only.
func (v *Validator) validateRequirements(c *Catalog, unlockSet mapset.Set[domain.UnlockID]) error {
	check := func(owner string, r *Requirement) error {
		if r == nil {
			return nil
		}
		if r.isEmpty() {
			return invalid("%s has an empty requirement", owner)
		}
		for _, id := range r.UnlockIDs() {
			if !unlockSet.Has(id) {
				return invalid("%s requires '%s' which is not a catalog unlock", owner, id)
			}
		}
		return nil
	}

	if err := check("hard mode", c.HardModeRequires); err != nil {
		return err
	}
	for _, k := range c.ObjectiveKinds {
		if err := check("kind "+string(k.Name), k.Requires); err != nil {
			return err
		}
	}
	for _, ch := range c.Challenges {
		if err := check("challenge "+string(ch.Name), ch.Requires); err != nil {
			return err
		}
	}
	for _, b := range c.Bosses {
		if err := check("boss "+string(b.Name), b.Requires); err != nil {
			return err
		}
	}
	return nil
}

// validateGeneration checks the early bindings and the character chain.
func (v *Validator) validateGeneration(c *Catalog, unlockSet mapset.Set[domain.UnlockID], objectives []domain.Objective) error {
	objectiveSet := mapset.New[domain.ObjectiveID]()
	for _, o := range objectives {
		objectiveSet.Put(o.ID())
	}

	early := mapset.New[domain.UnlockID]()
	for _, id := range c.Generation.EarlyUnlocks {
		if !unlockSet.Has(id) {
			return invalid("early unlock '%s' is not a catalog unlock", id)
		}
		if early.Has(id) {
			return invalid("duplicate early unlock: %s", id)
		}
		early.Put(id)
	}

	easy := mapset.New[domain.ObjectiveID]()
	for _, id := range c.Generation.EasyObjectives {
		if _, err := domain.ParseObjectiveID(id); err != nil {
			return invalid("easy objective '%s': %v", id, err)
		}
		if !objectiveSet.Has(id) {
			return invalid("easy objective '%s' is not a catalog objective", id)
		}
		if easy.Has(id) {
			return invalid("duplicate easy objective: %s", id)
		}
		easy.Put(id)
	}
	if easy.Size() < early.Size() {
		return invalid("%d early unlocks but only %d easy objectives", early.Size(), easy.Size())
	}

	// Every character in the chain except the last needs a basic objective
	// left over after the early bindings.
	basicPerCharacter := 0
	for _, k := range c.ObjectiveKinds {
		if !k.Excluded {
			basicPerCharacter += len(domain.Difficulties())
		}
	}
	if basicPerCharacter <= early.Size() {
		return invalid("starting character has %d basic objectives, fewer than needed after %d early unlocks",
			basicPerCharacter, early.Size())
	}

	chain, hard := 0, 0
	for _, ch := range c.Characters {
		if early.Has(domain.CharacterUnlock{Character: ch.Name}.ID()) {
			continue
		}
		chain++
		if ch.Hard {
			hard++
		}
	}
	if hard > chain/2 {
		return invalid("%d hard characters cannot all sit in the second half of a chain of %d", hard, chain)
	}

	return nil
}

// prerequisiteGraph expands the prerequisite table into unlock -> candidates
// edges and adds the implicit challenge -> character edges.
func (v *Validator) prerequisiteGraph(c *Catalog, unlockSet mapset.Set[domain.UnlockID]) (map[domain.UnlockID][]domain.UnlockID, error) {
	graph, err := c.ExpandPrerequisites()
	if err != nil {
		return nil, invalid("%v", err)
	}
	for from, candidates := range graph {
		if !unlockSet.Has(from) {
			return nil, invalid("prerequisite for '%s' which is not a catalog unlock", from)
		}
		if len(candidates) == 0 {
			return nil, invalid("prerequisite for '%s' has no candidates", from)
		}
		for _, to := range candidates {
			if !unlockSet.Has(to) {
				return nil, invalid("prerequisite for '%s' names '%s' which is not a catalog unlock", from, to)
			}
		}
	}

	for _, ch := range c.Challenges {
		from := domain.ChallengeUnlock{Challenge: ch.Name}.ID()
		to := domain.CharacterUnlock{Character: ch.Character}.ID()
		if unlockSet.Has(from) && unlockSet.Has(to) {
			graph[from] = append(graph[from], to)
		}
	}
	return graph, nil
}

// ExpandPrerequisites returns the prerequisite table as unlock -> candidates,
// best first, with RequiresAnyOf expanded in catalog order.
func (c *Catalog) ExpandPrerequisites() (map[domain.UnlockID][]domain.UnlockID, error) {
	byType := make(map[domain.UnlockType][]domain.UnlockID)
	for _, id := range c.Unlocks {
		u, err := domain.ParseUnlockID(id)
		if err != nil {
			return nil, err
		}
		byType[u.Type()] = append(byType[u.Type()], id)
	}

	table := make(map[domain.UnlockID][]domain.UnlockID, len(c.Prerequisites))
	for _, p := range c.Prerequisites {
		if _, dup := table[p.Unlock]; dup {
			return nil, fmt.Errorf("duplicate prerequisite entry for '%s'", p.Unlock)
		}
		hasList, hasType := len(p.RequiresAny) > 0, p.RequiresAnyOf != ""
		if hasList == hasType {
			return nil, fmt.Errorf("prerequisite for '%s' must set exactly one of requires_any or requires_any_of", p.Unlock)
		}
		if hasType {
			if !p.RequiresAnyOf.IsValid() {
				return nil, fmt.Errorf("prerequisite for '%s' has invalid type '%s'", p.Unlock, p.RequiresAnyOf)
			}
			table[p.Unlock] = append([]domain.UnlockID(nil), byType[p.RequiresAnyOf]...)
			continue
		}
		table[p.Unlock] = append([]domain.UnlockID(nil), p.RequiresAny...)
	}
	return table, nil
}

// FindCycle returns one cycle in graph as a path that starts and ends on the
// same unlock, or nil. Roots are visited in order for a stable result.
func FindCycle(roots []domain.UnlockID, graph map[domain.UnlockID][]domain.UnlockID) []domain.UnlockID {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[domain.UnlockID]int, len(graph))
	var stack []domain.UnlockID

	var visit func(id domain.UnlockID) []domain.UnlockID
	visit = func(id domain.UnlockID) []domain.UnlockID {
		state[id] = inProgress
		stack = append(stack, id)
		for _, next := range graph[id] {
			switch state[next] {
			case inProgress:
				for i, s := range stack {
					if s == next {
						cycle := append([]domain.UnlockID(nil), stack[i:]...)
						return append(cycle, next)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, root := range roots {
		if state[root] == unvisited {
			if cycle := visit(root); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return customerrors.ErrCatalogInvalid(fmt.Sprintf(format, args...))
}
