package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

func allUnlockVariants() []Unlock {
	return []Unlock{
		CharacterUnlock{Character: "magdalene"},
		PathUnlock{Path: "cathedral"},
		AltFloorUnlock{AltFloor: "cellar"},
		RoomUnlock{Room: "planetarium"},
		ChallengeUnlock{Challenge: "purist"},
		CollectibleUnlock{Collectible: "deck-of-cards"},
		TrinketUnlock{Trinket: "ace-of-spades"},
		CardUnlock{Card: "sun"},
		PillEffectUnlock{PillEffect: "full-health"},
		HeartUnlock{Heart: "eternal"},
		CoinUnlock{Coin: "lucky-penny"},
		BombUnlock{Bomb: "golden-bomb"},
		KeyUnlock{Key: "charged-key"},
		BatteryUnlock{Battery: "mega"},
		SackUnlock{Sack: "black-sack"},
		ChestUnlock{Chest: "mega-chest"},
		SlotUnlock{Slot: "crane-game"},
		GridEntityUnlock{GridEntity: "tinted-rock"},
		OtherUnlock{Other: "hard-mode"},
	}
}

func TestUnlockVariants_CoverEveryType(t *testing.T) {
	seen := make(map[UnlockType]bool)
	for _, u := range allUnlockVariants() {
		seen[u.Type()] = true
	}
	for _, typ := range UnlockTypes() {
		assert.True(t, seen[typ], "no variant for unlock type %s", typ)
	}
	assert.Len(t, seen, len(UnlockTypes()))
}

func TestUnlockID_RoundTrip(t *testing.T) {
	for _, u := range allUnlockVariants() {
		t.Run(string(u.ID()), func(t *testing.T) {
			decoded, err := ParseUnlockID(u.ID())
			require.NoError(t, err)
			assert.Equal(t, u, decoded)
			assert.Equal(t, u.ID(), decoded.ID())
		})
	}
}

func TestObjectiveID_RoundTrip(t *testing.T) {
	objectives := []Objective{
		CharacterObjective{Character: "isaac", Kind: "moms-heart", Difficulty: DifficultyNormal},
		CharacterObjective{Character: "blue baby", Kind: "the-lamb", Difficulty: DifficultyHard},
		ChallengeObjective{Challenge: "darkness-falls"},
		BossObjective{Boss: "mega-satan"},
	}

	for _, o := range objectives {
		t.Run(string(o.ID()), func(t *testing.T) {
			decoded, err := ParseObjectiveID(o.ID())
			require.NoError(t, err)
			assert.Equal(t, o, decoded)
		})
	}
}

func TestObjectiveID_Format(t *testing.T) {
	o := CharacterObjective{Character: "isaac", Kind: "satan", Difficulty: DifficultyHard}
	assert.Equal(t, ObjectiveID("character:isaac:satan:hard"), o.ID())
	assert.Equal(t, ObjectiveID("challenge:purist"), ChallengeObjective{Challenge: "purist"}.ID())
	assert.Equal(t, ObjectiveID("boss:hush"), BossObjective{Boss: "hush"}.ID())
	assert.Equal(t, UnlockID("pill-effect:full-health"), PillEffectUnlock{PillEffect: "full-health"}.ID())
}

func TestParseObjectiveID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   ObjectiveID
	}{
		{name: "empty", id: ""},
		{name: "unknown type", id: "quest:foo"},
		{name: "missing difficulty", id: "character:isaac:moms-heart"},
		{name: "bad difficulty", id: "character:isaac:moms-heart:insane"},
		{name: "extra field", id: "boss:hush:extra"},
		{name: "empty field", id: "challenge:"},
		{name: "type only", id: "boss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObjectiveID(tt.id)
			require.Error(t, err)
			assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeInvalidEntityID))
		})
	}
}

func TestParseUnlockID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   UnlockID
	}{
		{name: "empty", id: ""},
		{name: "no separator", id: "collectible"},
		{name: "unknown type", id: "weapon:sword"},
		{name: "empty name", id: "card:"},
		{name: "nested separator", id: "card:sun:moon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUnlockID(tt.id)
			assert.Error(t, err)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("moms-heart"))
	assert.NoError(t, ValidateName("blue baby"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("a:b"))
	assert.Error(t, ValidateName(" padded"))
}

func TestValidateObjective(t *testing.T) {
	assert.NoError(t, ValidateObjective(BossObjective{Boss: "hush"}))
	assert.Error(t, ValidateObjective(CharacterObjective{Character: "isaac", Kind: "a:b", Difficulty: DifficultyNormal}))
	assert.Error(t, ValidateObjective(CharacterObjective{Character: "isaac", Kind: "satan", Difficulty: "nightmare"}))
	assert.Error(t, ValidateUnlock(CardUnlock{Card: ""}))
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "isaac: satan (hard)",
		CharacterObjective{Character: "isaac", Kind: "satan", Difficulty: DifficultyHard}.String())
	assert.Equal(t, "challenge purist", ChallengeObjective{Challenge: "purist"}.String())
	assert.Equal(t, "defeat hush", BossObjective{Boss: "hush"}.String())
	assert.Equal(t, "grid-entity tinted-rock", GridEntityUnlock{GridEntity: "tinted-rock"}.String())
}

func TestStructuralIdentity(t *testing.T) {
	var a Objective = CharacterObjective{Character: "cain", Kind: "isaac", Difficulty: DifficultyNormal}
	var b Objective = CharacterObjective{Character: "cain", Kind: "isaac", Difficulty: DifficultyNormal}
	assert.True(t, a == b)

	var u1 Unlock = CardUnlock{Card: "sun"}
	var u2 Unlock = CardUnlock{Card: "sun"}
	var u3 Unlock = TrinketUnlock{Trinket: "sun"}
	assert.True(t, u1 == u2)
	assert.False(t, u1 == u3)
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, DifficultyNormal.IsValid())
	assert.False(t, Difficulty("").IsValid())
	assert.True(t, ModeHardcore.IsValid())
	assert.False(t, Mode("easy").IsValid())
	assert.True(t, UnlockTypeGridEntity.IsValid())
	assert.False(t, UnlockType("weapon").IsValid())
	assert.True(t, ObjectiveTypeBoss.IsValid())
	assert.False(t, ObjectiveType("quest").IsValid())
}
