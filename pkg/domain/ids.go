package domain

import (
	"strings"

	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// ObjectiveID is the canonical string form of an Objective. It is the only
// persisted reference to an objective, so it survives catalog versioning.
//
// Formats:
//   - character:<character>:<kind>:<difficulty>
//   - challenge:<challenge>
//   - boss:<boss>
type ObjectiveID string

// UnlockID is the canonical string form of an Unlock: <type>:<name>.
type UnlockID string

const idSeparator = ":"

func (id ObjectiveID) String() string { return string(id) }
func (id UnlockID) String() string    { return string(id) }

// ValidateName checks that name can be embedded in an ID without breaking the
// decode(encode(x)) == x law.
func ValidateName(name string) error {
	if name == "" {
		return customerrors.ErrInvalidEntityID(name, "name cannot be empty")
	}
	if strings.Contains(name, idSeparator) {
		return customerrors.ErrInvalidEntityID(name, "name cannot contain '"+idSeparator+"'")
	}
	if strings.TrimSpace(name) != name {
		return customerrors.ErrInvalidEntityID(name, "name cannot have surrounding whitespace")
	}
	return nil
}

type objectiveEncoder struct{}

func (objectiveEncoder) Character(o CharacterObjective) ObjectiveID {
	return joinObjectiveID(ObjectiveTypeCharacter, string(o.Character), string(o.Kind), string(o.Difficulty))
}

func (objectiveEncoder) Challenge(o ChallengeObjective) ObjectiveID {
	return joinObjectiveID(ObjectiveTypeChallenge, string(o.Challenge))
}

func (objectiveEncoder) Boss(o BossObjective) ObjectiveID {
	return joinObjectiveID(ObjectiveTypeBoss, string(o.Boss))
}

func joinObjectiveID(t ObjectiveType, fields ...string) ObjectiveID {
	return ObjectiveID(string(t) + idSeparator + strings.Join(fields, idSeparator))
}

// ParseObjectiveID decodes an ObjectiveID back into the Objective it encodes.
func ParseObjectiveID(id ObjectiveID) (Objective, error) {
	parts := strings.Split(string(id), idSeparator)
	for _, p := range parts[1:] {
		if p == "" {
			return nil, customerrors.ErrInvalidEntityID(string(id), "empty field")
		}
	}

	switch ObjectiveType(parts[0]) {
	case ObjectiveTypeCharacter:
		if len(parts) != 4 {
			return nil, customerrors.ErrInvalidEntityID(string(id), "character objective needs character, kind and difficulty")
		}
		difficulty := Difficulty(parts[3])
		if !difficulty.IsValid() {
			return nil, customerrors.ErrInvalidEntityID(string(id), "unknown difficulty "+parts[3])
		}
		return CharacterObjective{
			Character:  Character(parts[1]),
			Kind:       ObjectiveKind(parts[2]),
			Difficulty: difficulty,
		}, nil
	case ObjectiveTypeChallenge:
		if len(parts) != 2 {
			return nil, customerrors.ErrInvalidEntityID(string(id), "challenge objective needs exactly one field")
		}
		return ChallengeObjective{Challenge: Challenge(parts[1])}, nil
	case ObjectiveTypeBoss:
		if len(parts) != 2 {
			return nil, customerrors.ErrInvalidEntityID(string(id), "boss objective needs exactly one field")
		}
		return BossObjective{Boss: Boss(parts[1])}, nil
	default:
		return nil, customerrors.ErrInvalidEntityID(string(id), "unknown objective type "+parts[0])
	}
}

// ParseUnlockID decodes an UnlockID back into the Unlock it encodes.
func ParseUnlockID(id UnlockID) (Unlock, error) {
	tag, name, ok := strings.Cut(string(id), idSeparator)
	if !ok {
		return nil, customerrors.ErrInvalidEntityID(string(id), "missing type tag")
	}
	if err := ValidateName(name); err != nil {
		return nil, customerrors.ErrInvalidEntityID(string(id), "bad name")
	}

	switch UnlockType(tag) {
	case UnlockTypeCharacter:
		return CharacterUnlock{Character: Character(name)}, nil
	case UnlockTypePath:
		return PathUnlock{Path: Path(name)}, nil
	case UnlockTypeAltFloor:
		return AltFloorUnlock{AltFloor: AltFloor(name)}, nil
	case UnlockTypeRoom:
		return RoomUnlock{Room: RoomType(name)}, nil
	case UnlockTypeChallenge:
		return ChallengeUnlock{Challenge: Challenge(name)}, nil
	case UnlockTypeCollectible:
		return CollectibleUnlock{Collectible: Collectible(name)}, nil
	case UnlockTypeTrinket:
		return TrinketUnlock{Trinket: Trinket(name)}, nil
	case UnlockTypeCard:
		return CardUnlock{Card: Card(name)}, nil
	case UnlockTypePillEffect:
		return PillEffectUnlock{PillEffect: PillEffect(name)}, nil
	case UnlockTypeHeart:
		return HeartUnlock{Heart: HeartSubType(name)}, nil
	case UnlockTypeCoin:
		return CoinUnlock{Coin: CoinSubType(name)}, nil
	case UnlockTypeBomb:
		return BombUnlock{Bomb: BombSubType(name)}, nil
	case UnlockTypeKey:
		return KeyUnlock{Key: KeySubType(name)}, nil
	case UnlockTypeBattery:
		return BatteryUnlock{Battery: BatterySubType(name)}, nil
	case UnlockTypeSack:
		return SackUnlock{Sack: SackSubType(name)}, nil
	case UnlockTypeChest:
		return ChestUnlock{Chest: ChestVariant(name)}, nil
	case UnlockTypeSlot:
		return SlotUnlock{Slot: SlotVariant(name)}, nil
	case UnlockTypeGridEntity:
		return GridEntityUnlock{GridEntity: GridEntityType(name)}, nil
	case UnlockTypeOther:
		return OtherUnlock{Other: OtherKind(name)}, nil
	default:
		return nil, customerrors.ErrInvalidEntityID(string(id), "unknown unlock type "+tag)
	}
}

// ValidateObjective checks every name field of o.
func ValidateObjective(o Objective) error {
	decoded, err := ParseObjectiveID(o.ID())
	if err != nil {
		return err
	}
	if decoded != o {
		return customerrors.ErrInvalidEntityID(string(o.ID()), "does not round-trip")
	}
	return nil
}

// ValidateUnlock checks the name field of u.
func ValidateUnlock(u Unlock) error {
	decoded, err := ParseUnlockID(u.ID())
	if err != nil {
		return err
	}
	if decoded != u {
		return customerrors.ErrInvalidEntityID(string(u.ID()), "does not round-trip")
	}
	return nil
}
