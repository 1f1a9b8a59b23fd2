package tracker

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// IsUnlocked reports whether u is available. forRun=true asks whether it is
// in effect for the current run, which excludes unlocks earned during it.
// Everything is locked while the tracker is inactive.
func (t *Tracker) IsUnlocked(u domain.Unlock, forRun bool) bool {
	return t.IsUnlockIDUnlocked(u.ID(), forRun)
}

// IsUnlockIDUnlocked is IsUnlocked by ID.
func (t *Tracker) IsUnlockIDUnlocked(id domain.UnlockID, forRun bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active != nil && t.active.session.IsUnlocked(id, forRun)
}

func (t *Tracker) IsCharacterUnlocked(character domain.Character, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.CharacterUnlock{Character: character}.ID(), forRun)
}

func (t *Tracker) IsPathUnlocked(path domain.Path, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.PathUnlock{Path: path}.ID(), forRun)
}

func (t *Tracker) IsAltFloorUnlocked(floor domain.AltFloor, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.AltFloorUnlock{AltFloor: floor}.ID(), forRun)
}

func (t *Tracker) IsRoomUnlocked(room domain.RoomType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.RoomUnlock{Room: room}.ID(), forRun)
}

func (t *Tracker) IsChallengeUnlocked(challenge domain.Challenge, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.ChallengeUnlock{Challenge: challenge}.ID(), forRun)
}

func (t *Tracker) IsCollectibleUnlocked(collectible domain.Collectible, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.CollectibleUnlock{Collectible: collectible}.ID(), forRun)
}

func (t *Tracker) IsTrinketUnlocked(trinket domain.Trinket, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.TrinketUnlock{Trinket: trinket}.ID(), forRun)
}

func (t *Tracker) IsCardUnlocked(card domain.Card, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.CardUnlock{Card: card}.ID(), forRun)
}

func (t *Tracker) IsPillEffectUnlocked(effect domain.PillEffect, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.PillEffectUnlock{PillEffect: effect}.ID(), forRun)
}

func (t *Tracker) IsHeartUnlocked(heart domain.HeartSubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.HeartUnlock{Heart: heart}.ID(), forRun)
}

func (t *Tracker) IsCoinUnlocked(coin domain.CoinSubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.CoinUnlock{Coin: coin}.ID(), forRun)
}

func (t *Tracker) IsBombUnlocked(bomb domain.BombSubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.BombUnlock{Bomb: bomb}.ID(), forRun)
}

func (t *Tracker) IsKeyUnlocked(key domain.KeySubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.KeyUnlock{Key: key}.ID(), forRun)
}

func (t *Tracker) IsBatteryUnlocked(battery domain.BatterySubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.BatteryUnlock{Battery: battery}.ID(), forRun)
}

func (t *Tracker) IsSackUnlocked(sack domain.SackSubType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.SackUnlock{Sack: sack}.ID(), forRun)
}

func (t *Tracker) IsChestUnlocked(chest domain.ChestVariant, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.ChestUnlock{Chest: chest}.ID(), forRun)
}

func (t *Tracker) IsSlotUnlocked(slot domain.SlotVariant, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.SlotUnlock{Slot: slot}.ID(), forRun)
}

func (t *Tracker) IsGridEntityUnlocked(entity domain.GridEntityType, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.GridEntityUnlock{GridEntity: entity}.ID(), forRun)
}

func (t *Tracker) IsOtherUnlocked(kind domain.OtherKind, forRun bool) bool {
	return t.IsUnlockIDUnlocked(domain.OtherUnlock{Other: kind}.ID(), forRun)
}
