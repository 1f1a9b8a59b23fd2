package domain

import "fmt"

// UnlockType is the variant tag of an Unlock. It is the first segment of every UnlockID.
type UnlockType string

const (
	UnlockTypeCharacter   UnlockType = "character"
	UnlockTypePath        UnlockType = "path"
	UnlockTypeAltFloor    UnlockType = "alt-floor"
	UnlockTypeRoom        UnlockType = "room"
	UnlockTypeChallenge   UnlockType = "challenge"
	UnlockTypeCollectible UnlockType = "collectible"
	UnlockTypeTrinket     UnlockType = "trinket"
	UnlockTypeCard        UnlockType = "card"
	UnlockTypePillEffect  UnlockType = "pill-effect"
	UnlockTypeHeart       UnlockType = "heart"
	UnlockTypeCoin        UnlockType = "coin"
	UnlockTypeBomb        UnlockType = "bomb"
	UnlockTypeKey         UnlockType = "key"
	UnlockTypeBattery     UnlockType = "battery"
	UnlockTypeSack        UnlockType = "sack"
	UnlockTypeChest       UnlockType = "chest"
	UnlockTypeSlot        UnlockType = "slot"
	UnlockTypeGridEntity  UnlockType = "grid-entity"
	UnlockTypeOther       UnlockType = "other"
)

// UnlockTypes lists every unlock variant tag.
func UnlockTypes() []UnlockType {
	return []UnlockType{
		UnlockTypeCharacter, UnlockTypePath, UnlockTypeAltFloor, UnlockTypeRoom,
		UnlockTypeChallenge, UnlockTypeCollectible, UnlockTypeTrinket, UnlockTypeCard,
		UnlockTypePillEffect, UnlockTypeHeart, UnlockTypeCoin, UnlockTypeBomb,
		UnlockTypeKey, UnlockTypeBattery, UnlockTypeSack, UnlockTypeChest,
		UnlockTypeSlot, UnlockTypeGridEntity, UnlockTypeOther,
	}
}

// IsValid returns true if the unlock type is a known variant tag.
func (t UnlockType) IsValid() bool {
	for _, known := range UnlockTypes() {
		if t == known {
			return true
		}
	}
	return false
}

type (
	Path           string
	AltFloor       string
	RoomType       string
	Collectible    string
	Trinket        string
	Card           string
	PillEffect     string
	HeartSubType   string
	CoinSubType    string
	BombSubType    string
	KeySubType     string
	BatterySubType string
	SackSubType    string
	ChestVariant   string
	SlotVariant    string
	GridEntityType string
	OtherKind      string
)

// Unlock is a progression reward. The set of variants is closed; see UnlockVisitor.
type Unlock interface {
	Type() UnlockType
	ID() UnlockID
	String() string
	isUnlock()
}

type CharacterUnlock struct{ Character Character }
type PathUnlock struct{ Path Path }
type AltFloorUnlock struct{ AltFloor AltFloor }
type RoomUnlock struct{ Room RoomType }
type ChallengeUnlock struct{ Challenge Challenge }
type CollectibleUnlock struct{ Collectible Collectible }
type TrinketUnlock struct{ Trinket Trinket }
type CardUnlock struct{ Card Card }
type PillEffectUnlock struct{ PillEffect PillEffect }
type HeartUnlock struct{ Heart HeartSubType }
type CoinUnlock struct{ Coin CoinSubType }
type BombUnlock struct{ Bomb BombSubType }
type KeyUnlock struct{ Key KeySubType }
type BatteryUnlock struct{ Battery BatterySubType }
type SackUnlock struct{ Sack SackSubType }
type ChestUnlock struct{ Chest ChestVariant }
type SlotUnlock struct{ Slot SlotVariant }
type GridEntityUnlock struct{ GridEntity GridEntityType }
type OtherUnlock struct{ Other OtherKind }

func (CharacterUnlock) isUnlock()   {}
func (PathUnlock) isUnlock()        {}
func (AltFloorUnlock) isUnlock()    {}
func (RoomUnlock) isUnlock()        {}
func (ChallengeUnlock) isUnlock()   {}
func (CollectibleUnlock) isUnlock() {}
func (TrinketUnlock) isUnlock()     {}
func (CardUnlock) isUnlock()        {}
func (PillEffectUnlock) isUnlock()  {}
func (HeartUnlock) isUnlock()       {}
func (CoinUnlock) isUnlock()        {}
func (BombUnlock) isUnlock()        {}
func (KeyUnlock) isUnlock()         {}
func (BatteryUnlock) isUnlock()     {}
func (SackUnlock) isUnlock()        {}
func (ChestUnlock) isUnlock()       {}
func (SlotUnlock) isUnlock()        {}
func (GridEntityUnlock) isUnlock()  {}
func (OtherUnlock) isUnlock()       {}

func (CharacterUnlock) Type() UnlockType   { return UnlockTypeCharacter }
func (PathUnlock) Type() UnlockType        { return UnlockTypePath }
func (AltFloorUnlock) Type() UnlockType    { return UnlockTypeAltFloor }
func (RoomUnlock) Type() UnlockType        { return UnlockTypeRoom }
func (ChallengeUnlock) Type() UnlockType   { return UnlockTypeChallenge }
func (CollectibleUnlock) Type() UnlockType { return UnlockTypeCollectible }
func (TrinketUnlock) Type() UnlockType     { return UnlockTypeTrinket }
func (CardUnlock) Type() UnlockType        { return UnlockTypeCard }
func (PillEffectUnlock) Type() UnlockType  { return UnlockTypePillEffect }
func (HeartUnlock) Type() UnlockType       { return UnlockTypeHeart }
func (CoinUnlock) Type() UnlockType        { return UnlockTypeCoin }
func (BombUnlock) Type() UnlockType        { return UnlockTypeBomb }
func (KeyUnlock) Type() UnlockType         { return UnlockTypeKey }
func (BatteryUnlock) Type() UnlockType     { return UnlockTypeBattery }
func (SackUnlock) Type() UnlockType        { return UnlockTypeSack }
func (ChestUnlock) Type() UnlockType       { return UnlockTypeChest }
func (SlotUnlock) Type() UnlockType        { return UnlockTypeSlot }
func (GridEntityUnlock) Type() UnlockType  { return UnlockTypeGridEntity }
func (OtherUnlock) Type() UnlockType       { return UnlockTypeOther }

func (u CharacterUnlock) ID() UnlockID   { return unlockID(u) }
func (u PathUnlock) ID() UnlockID        { return unlockID(u) }
func (u AltFloorUnlock) ID() UnlockID    { return unlockID(u) }
func (u RoomUnlock) ID() UnlockID        { return unlockID(u) }
func (u ChallengeUnlock) ID() UnlockID   { return unlockID(u) }
func (u CollectibleUnlock) ID() UnlockID { return unlockID(u) }
func (u TrinketUnlock) ID() UnlockID     { return unlockID(u) }
func (u CardUnlock) ID() UnlockID        { return unlockID(u) }
func (u PillEffectUnlock) ID() UnlockID  { return unlockID(u) }
func (u HeartUnlock) ID() UnlockID       { return unlockID(u) }
func (u CoinUnlock) ID() UnlockID        { return unlockID(u) }
func (u BombUnlock) ID() UnlockID        { return unlockID(u) }
func (u KeyUnlock) ID() UnlockID         { return unlockID(u) }
func (u BatteryUnlock) ID() UnlockID     { return unlockID(u) }
func (u SackUnlock) ID() UnlockID        { return unlockID(u) }
func (u ChestUnlock) ID() UnlockID       { return unlockID(u) }
func (u SlotUnlock) ID() UnlockID        { return unlockID(u) }
func (u GridEntityUnlock) ID() UnlockID  { return unlockID(u) }
func (u OtherUnlock) ID() UnlockID       { return unlockID(u) }

func (u CharacterUnlock) String() string   { return unlockText(u) }
func (u PathUnlock) String() string        { return unlockText(u) }
func (u AltFloorUnlock) String() string    { return unlockText(u) }
func (u RoomUnlock) String() string        { return unlockText(u) }
func (u ChallengeUnlock) String() string   { return unlockText(u) }
func (u CollectibleUnlock) String() string { return unlockText(u) }
func (u TrinketUnlock) String() string     { return unlockText(u) }
func (u CardUnlock) String() string        { return unlockText(u) }
func (u PillEffectUnlock) String() string  { return unlockText(u) }
func (u HeartUnlock) String() string       { return unlockText(u) }
func (u CoinUnlock) String() string        { return unlockText(u) }
func (u BombUnlock) String() string        { return unlockText(u) }
func (u KeyUnlock) String() string         { return unlockText(u) }
func (u BatteryUnlock) String() string     { return unlockText(u) }
func (u SackUnlock) String() string        { return unlockText(u) }
func (u ChestUnlock) String() string       { return unlockText(u) }
func (u SlotUnlock) String() string        { return unlockText(u) }
func (u GridEntityUnlock) String() string  { return unlockText(u) }
func (u OtherUnlock) String() string       { return unlockText(u) }

// UnlockVisitor handles every Unlock variant. Implementations fail to compile
// when a variant is added and not handled.
type UnlockVisitor[R any] interface {
	Character(CharacterUnlock) R
	Path(PathUnlock) R
	AltFloor(AltFloorUnlock) R
	Room(RoomUnlock) R
	Challenge(ChallengeUnlock) R
	Collectible(CollectibleUnlock) R
	Trinket(TrinketUnlock) R
	Card(CardUnlock) R
	PillEffect(PillEffectUnlock) R
	Heart(HeartUnlock) R
	Coin(CoinUnlock) R
	Bomb(BombUnlock) R
	Key(KeyUnlock) R
	Battery(BatteryUnlock) R
	Sack(SackUnlock) R
	Chest(ChestUnlock) R
	Slot(SlotUnlock) R
	GridEntity(GridEntityUnlock) R
	Other(OtherUnlock) R
}

// VisitUnlock dispatches u to the visitor method for its variant.
func VisitUnlock[R any](u Unlock, v UnlockVisitor[R]) R {
	switch x := u.(type) {
	case CharacterUnlock:
		return v.Character(x)
	case PathUnlock:
		return v.Path(x)
	case AltFloorUnlock:
		return v.AltFloor(x)
	case RoomUnlock:
		return v.Room(x)
	case ChallengeUnlock:
		return v.Challenge(x)
	case CollectibleUnlock:
		return v.Collectible(x)
	case TrinketUnlock:
		return v.Trinket(x)
	case CardUnlock:
		return v.Card(x)
	case PillEffectUnlock:
		return v.PillEffect(x)
	case HeartUnlock:
		return v.Heart(x)
	case CoinUnlock:
		return v.Coin(x)
	case BombUnlock:
		return v.Bomb(x)
	case KeyUnlock:
		return v.Key(x)
	case BatteryUnlock:
		return v.Battery(x)
	case SackUnlock:
		return v.Sack(x)
	case ChestUnlock:
		return v.Chest(x)
	case SlotUnlock:
		return v.Slot(x)
	case GridEntityUnlock:
		return v.GridEntity(x)
	case OtherUnlock:
		return v.Other(x)
	default:
		panic(fmt.Sprintf("domain: unknown unlock variant %T", u))
	}
}

// unlockName extracts the single name field of any variant.
type unlockName struct{}

func (unlockName) Character(u CharacterUnlock) string     { return string(u.Character) }
func (unlockName) Path(u PathUnlock) string               { return string(u.Path) }
func (unlockName) AltFloor(u AltFloorUnlock) string       { return string(u.AltFloor) }
func (unlockName) Room(u RoomUnlock) string               { return string(u.Room) }
func (unlockName) Challenge(u ChallengeUnlock) string     { return string(u.Challenge) }
func (unlockName) Collectible(u CollectibleUnlock) string { return string(u.Collectible) }
func (unlockName) Trinket(u TrinketUnlock) string         { return string(u.Trinket) }
func (unlockName) Card(u CardUnlock) string               { return string(u.Card) }
func (unlockName) PillEffect(u PillEffectUnlock) string   { return string(u.PillEffect) }
func (unlockName) Heart(u HeartUnlock) string             { return string(u.Heart) }
func (unlockName) Coin(u CoinUnlock) string               { return string(u.Coin) }
func (unlockName) Bomb(u BombUnlock) string               { return string(u.Bomb) }
func (unlockName) Key(u KeyUnlock) string                 { return string(u.Key) }
func (unlockName) Battery(u BatteryUnlock) string         { return string(u.Battery) }
func (unlockName) Sack(u SackUnlock) string               { return string(u.Sack) }
func (unlockName) Chest(u ChestUnlock) string             { return string(u.Chest) }
func (unlockName) Slot(u SlotUnlock) string               { return string(u.Slot) }
func (unlockName) GridEntity(u GridEntityUnlock) string   { return string(u.GridEntity) }
func (unlockName) Other(u OtherUnlock) string             { return string(u.Other) }

// UnlockName returns the name field of u, without its type tag.
func UnlockName(u Unlock) string {
	return VisitUnlock[string](u, unlockName{})
}

func unlockID(u Unlock) UnlockID {
	return UnlockID(string(u.Type()) + idSeparator + UnlockName(u))
}

func unlockText(u Unlock) string {
	return fmt.Sprintf("%s %s", u.Type(), UnlockName(u))
}
