package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// StateRepository persists randomizer save states, one per slot.
type StateRepository interface {
	// LoadState returns the state saved in slot.
	// Returns nil if the slot is empty.
	LoadState(ctx context.Context, slot string) (*domain.SaveState, error)

	// SaveState creates or replaces the state for state.Slot.
	SaveState(ctx context.Context, state *domain.SaveState) error

	// DeleteState removes the state in slot. Deleting an empty slot is not an error.
	DeleteState(ctx context.Context, slot string) error

	// ListSlots returns every occupied slot in name order.
	ListSlots(ctx context.Context) ([]string, error)
}

func checkState(state *domain.SaveState) error {
	if state == nil {
		return fmt.Errorf("save state is nil")
	}
	if state.Slot == "" {
		return fmt.Errorf("save state has no slot")
	}
	return nil
}

func marshalPairs(pairs []domain.Pair) ([]byte, error) {
	if pairs == nil {
		pairs = []domain.Pair{}
	}
	return json.Marshal(pairs)
}

func unmarshalPairs(data []byte) ([]domain.Pair, error) {
	var pairs []domain.Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func objectiveStrings(ids []domain.ObjectiveID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func unlockStrings(ids []domain.UnlockID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func objectiveIDs(raw []string) []domain.ObjectiveID {
	out := make([]domain.ObjectiveID, len(raw))
	for i, s := range raw {
		out[i] = domain.ObjectiveID(s)
	}
	return out
}

func unlockIDs(raw []string) []domain.UnlockID {
	out := make([]domain.UnlockID, len(raw))
	for i, s := range raw {
		out[i] = domain.UnlockID(s)
	}
	return out
}
