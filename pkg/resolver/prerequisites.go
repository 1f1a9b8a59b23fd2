package resolver

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// PrerequisiteTable lists, for every unlock, the unlocks that make it useful,
// best first. An unlock with no entry is always useful.
type PrerequisiteTable struct {
	rules               map[domain.UnlockID][]domain.Unlock
	challengeCharacters map[domain.Challenge]domain.Character
}

// NewPrerequisiteTable builds a table from explicit rules. A challenge unlock
// additionally requires the character its challenge is played with.
func NewPrerequisiteTable(rules map[domain.UnlockID][]domain.Unlock, challengeCharacters map[domain.Challenge]domain.Character) *PrerequisiteTable {
	t := &PrerequisiteTable{
		rules:               make(map[domain.UnlockID][]domain.Unlock, len(rules)),
		challengeCharacters: make(map[domain.Challenge]domain.Character, len(challengeCharacters)),
	}
	for id, candidates := range rules {
		t.rules[id] = append([]domain.Unlock(nil), candidates...)
	}
	for ch, character := range challengeCharacters {
		t.challengeCharacters[ch] = character
	}
	return t
}

// NewPrerequisiteTableFromCatalog expands the catalog's prerequisite entries.
func NewPrerequisiteTableFromCatalog(c *catalog.Catalog) (*PrerequisiteTable, error) {
	expanded, err := c.ExpandPrerequisites()
	if err != nil {
		return nil, err
	}
	rules := make(map[domain.UnlockID][]domain.Unlock, len(expanded))
	for id, candidateIDs := range expanded {
		candidates := make([]domain.Unlock, 0, len(candidateIDs))
		for _, cid := range candidateIDs {
			u, err := domain.ParseUnlockID(cid)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, u)
		}
		rules[id] = candidates
	}

	challengeCharacters := make(map[domain.Challenge]domain.Character, len(c.Challenges))
	for _, ch := range c.Challenges {
		challengeCharacters[ch.Name] = ch.Character
	}
	return NewPrerequisiteTable(rules, challengeCharacters), nil
}

// Candidates returns the prerequisites of u, best first.
func (t *PrerequisiteTable) Candidates(u domain.Unlock) []domain.Unlock {
	return domain.VisitUnlock[[]domain.Unlock](u, candidateLookup{table: t})
}

// Graph returns the table as unlock -> candidate IDs for the given unlocks.
func (t *PrerequisiteTable) Graph(unlocks []domain.Unlock) map[domain.UnlockID][]domain.UnlockID {
	graph := make(map[domain.UnlockID][]domain.UnlockID, len(unlocks))
	for _, u := range unlocks {
		for _, c := range t.Candidates(u) {
			graph[u.ID()] = append(graph[u.ID()], c.ID())
		}
	}
	return graph
}

// candidateLookup dispatches per unlock variant. Most variants are governed
// by the catalog table alone.
type candidateLookup struct {
	table *PrerequisiteTable
}

func (l candidateLookup) listed(u domain.Unlock) []domain.Unlock {
	return l.table.rules[u.ID()]
}

func (l candidateLookup) Character(u domain.CharacterUnlock) []domain.Unlock { return l.listed(u) }
func (l candidateLookup) Path(u domain.PathUnlock) []domain.Unlock           { return l.listed(u) }
func (l candidateLookup) AltFloor(u domain.AltFloorUnlock) []domain.Unlock   { return l.listed(u) }
func (l candidateLookup) Room(u domain.RoomUnlock) []domain.Unlock           { return l.listed(u) }

// Challenge puts the challenge's character ahead of any listed rule: the
// challenge cannot be played without it.
func (l candidateLookup) Challenge(u domain.ChallengeUnlock) []domain.Unlock {
	listed := l.listed(u)
	character, ok := l.table.challengeCharacters[u.Challenge]
	if !ok {
		return listed
	}
	candidates := make([]domain.Unlock, 0, len(listed)+1)
	candidates = append(candidates, domain.CharacterUnlock{Character: character})
	return append(candidates, listed...)
}

func (l candidateLookup) Collectible(u domain.CollectibleUnlock) []domain.Unlock { return l.listed(u) }
func (l candidateLookup) Trinket(u domain.TrinketUnlock) []domain.Unlock         { return l.listed(u) }
func (l candidateLookup) Card(u domain.CardUnlock) []domain.Unlock               { return l.listed(u) }
func (l candidateLookup) PillEffect(u domain.PillEffectUnlock) []domain.Unlock   { return l.listed(u) }
func (l candidateLookup) Heart(u domain.HeartUnlock) []domain.Unlock             { return l.listed(u) }
func (l candidateLookup) Coin(u domain.CoinUnlock) []domain.Unlock               { return l.listed(u) }
func (l candidateLookup) Bomb(u domain.BombUnlock) []domain.Unlock               { return l.listed(u) }
func (l candidateLookup) Key(u domain.KeyUnlock) []domain.Unlock                 { return l.listed(u) }
func (l candidateLookup) Battery(u domain.BatteryUnlock) []domain.Unlock         { return l.listed(u) }
func (l candidateLookup) Sack(u domain.SackUnlock) []domain.Unlock               { return l.listed(u) }
func (l candidateLookup) Chest(u domain.ChestUnlock) []domain.Unlock             { return l.listed(u) }
func (l candidateLookup) Slot(u domain.SlotUnlock) []domain.Unlock               { return l.listed(u) }
func (l candidateLookup) GridEntity(u domain.GridEntityUnlock) []domain.Unlock   { return l.listed(u) }
func (l candidateLookup) Other(u domain.OtherUnlock) []domain.Unlock             { return l.listed(u) }
