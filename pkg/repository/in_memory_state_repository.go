package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

// InMemoryStateRepository keeps save states in process memory. Stored and
// returned states are copies.
type InMemoryStateRepository struct {
	mu     sync.RWMutex
	states map[string]domain.SaveState
}

// NewInMemoryStateRepository creates an empty repository.
func NewInMemoryStateRepository() *InMemoryStateRepository {
	return &InMemoryStateRepository{states: make(map[string]domain.SaveState)}
}

func (r *InMemoryStateRepository) LoadState(_ context.Context, slot string) (*domain.SaveState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[slot]
	if !ok {
		return nil, nil
	}
	c := copyState(state)
	return &c, nil
}

func (r *InMemoryStateRepository) SaveState(_ context.Context, state *domain.SaveState) error {
	if err := checkState(state); err != nil {
		return customerrors.ErrDatabaseError("save state", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.Slot] = copyState(*state)
	return nil
}

func (r *InMemoryStateRepository) DeleteState(_ context.Context, slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, slot)
	return nil
}

func (r *InMemoryStateRepository) ListSlots(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]string, 0, len(r.states))
	for slot := range r.states {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots, nil
}

func copyState(s domain.SaveState) domain.SaveState {
	s.Bijection = slices.Clone(s.Bijection)
	s.CompletedObjectives = slices.Clone(s.CompletedObjectives)
	s.CompletedUnlocks = slices.Clone(s.CompletedUnlocks)
	return s
}
