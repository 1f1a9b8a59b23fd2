package domain

import "time"

// Mode selects how the tracker hands out unlocks.
type Mode string

const (
	// ModeCasual resolves useless unlocks by swapping them for a prerequisite.
	ModeCasual Mode = "casual"

	// ModeHardcore grants exactly the bound unlock, useful or not.
	ModeHardcore Mode = "hardcore"
)

// IsValid returns true if the mode is a known value.
func (m Mode) IsValid() bool {
	switch m {
	case ModeCasual, ModeHardcore:
		return true
	default:
		return false
	}
}

// UnlockState answers whether an unlock is available.
//
// forRun=false asks "has it ever been obtained"; forRun=true asks "is it in
// effect for the current run", which excludes unlocks obtained during the run.
type UnlockState interface {
	IsUnlocked(id UnlockID, forRun bool) bool
}

// SaveState is the persisted form of an active randomizer. Entities are stored
// by ID only so a save survives catalog edits that keep those IDs.
type SaveState struct {
	Slot                string        `json:"slot" db:"slot"`
	RunID               string        `json:"run_id" db:"run_id"`
	Seed                uint32        `json:"seed" db:"seed"`
	Mode                Mode          `json:"mode" db:"mode"`
	CatalogVersion      string        `json:"catalog_version" db:"catalog_version"`
	Bijection           []Pair        `json:"bijection" db:"bijection"`
	CompletedObjectives []ObjectiveID `json:"completed_objectives" db:"completed_objectives"`
	CompletedUnlocks    []UnlockID    `json:"completed_unlocks" db:"completed_unlocks"`
	SavedAt             time.Time     `json:"saved_at" db:"saved_at"`
}
