package tracker

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
	"github.com/unlock-randomizer/randomizer-common/pkg/resolver"
)

var (
	o1 domain.Objective = domain.BossObjective{Boss: "o1"}
	o2 domain.Objective = domain.BossObjective{Boss: "o2"}
	o3 domain.Objective = domain.BossObjective{Boss: "o3"}
	o4 domain.Objective = domain.ChallengeObjective{Challenge: "o4"}

	u1 domain.Unlock = domain.CardUnlock{Card: "u1"}
	u2 domain.Unlock = domain.CollectibleUnlock{Collectible: "u2"}
	u3 domain.Unlock = domain.TrinketUnlock{Trinket: "u3"}
	u4 domain.Unlock = domain.PathUnlock{Path: "u4"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scenarioResolver makes U2 useless until U1 is unlocked.
func scenarioResolver() *resolver.Resolver {
	table := resolver.NewPrerequisiteTable(map[domain.UnlockID][]domain.Unlock{u2.ID(): {u1}}, nil)
	return resolver.NewResolver(table, discardLogger())
}

// scenarioBijection is the naive O1->U2, O2->U1, O3->U3, O4->U4 assignment.
func scenarioBijection(t *testing.T) *domain.Bijection {
	t.Helper()
	b := domain.NewBijection(4)
	require.NoError(t, b.Bind(o1.ID(), u2))
	require.NoError(t, b.Bind(o2.ID(), u1))
	require.NoError(t, b.Bind(o3.ID(), u3))
	require.NoError(t, b.Bind(o4.ID(), u4))
	return b
}

func TestSession_ConcreteScenario(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	got, err := s.AddObjective(o1, false)
	require.NoError(t, err)
	assert.Equal(t, u1, got)

	got, err = s.AddObjective(o2, false)
	require.NoError(t, err)
	assert.Equal(t, u2, got)

	assert.Equal(t, []domain.Unlock{u1, u2}, s.CompletedUnlocks())
	assert.Equal(t, []domain.ObjectiveID{o1.ID(), o2.ID()}, s.CompletedObjectives())
	assert.Equal(t, []domain.Pair{
		{Objective: o1.ID(), Unlock: u1.ID()},
		{Objective: o2.ID(), Unlock: u2.ID()},
		{Objective: o3.ID(), Unlock: u3.ID()},
		{Objective: o4.ID(), Unlock: u4.ID()},
	}, s.Bijection().Pairs())
}

func TestSession_AddObjectiveIsIdempotent(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	first, err := s.AddObjective(o3, false)
	require.NoError(t, err)
	assert.Equal(t, u3, first)

	second, err := s.AddObjective(o3, false)
	require.NoError(t, err)
	assert.Nil(t, second)

	assert.Len(t, s.CompletedObjectives(), 1)
	assert.Len(t, s.CompletedUnlocks(), 1)
	assert.Len(t, s.CompletedUnlocksForRun(), 1)
}

func TestSession_HardcoreSkipsResolution(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeHardcore, scenarioResolver(), discardLogger())

	got, err := s.AddObjective(o1, false)
	require.NoError(t, err)
	assert.Equal(t, u2, got, "hardcore grants the bound unlock as is")

	u, _ := s.Bijection().UnlockFor(o1.ID())
	assert.Equal(t, u2, u)
}

func TestSession_Emulating(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	_, err := s.AddObjective(o3, true)
	require.NoError(t, err)

	assert.Equal(t, []domain.Unlock{u3}, s.CompletedUnlocks())
	assert.Empty(t, s.CompletedUnlocksForRun(), "emulated grants stay out of the run list")
	assert.True(t, s.IsUnlocked(u3.ID(), true))
}

func TestSession_IsUnlocked(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	tests := []struct {
		name   string
		id     domain.UnlockID
		forRun bool
		want   bool
	}{
		{name: "not randomized", id: "character:isaac", forRun: false, want: true},
		{name: "not randomized for run", id: "character:isaac", forRun: true, want: true},
		{name: "not yet granted", id: u4.ID(), forRun: false, want: false},
		{name: "granted this run, ever", id: u3.ID(), forRun: false, want: true},
		{name: "granted this run, for run", id: u3.ID(), forRun: true, want: false},
	}

	_, err := s.AddObjective(o3, false)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsUnlocked(tt.id, tt.forRun))
		})
	}

	s.StartRun()
	assert.True(t, s.IsUnlocked(u3.ID(), true), "earned last run, in effect now")
	assert.Empty(t, s.CompletedUnlocksForRun())
}

func TestSession_UnboundObjective(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	_, err := s.AddObjective(domain.BossObjective{Boss: "unknown"}, false)

	require.Error(t, err)
	assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeObjectiveNotBound))
	assert.Empty(t, s.CompletedObjectives())
}

func TestSession_ResolveFailureRollsBack(t *testing.T) {
	cyclic := resolver.NewPrerequisiteTable(map[domain.UnlockID][]domain.Unlock{
		u1.ID(): {u2},
		u2.ID(): {u1},
	}, nil)
	s := NewSession(scenarioBijection(t), domain.ModeCasual, resolver.NewResolver(cyclic, discardLogger()), discardLogger())

	_, err := s.AddObjective(o1, true)

	require.Error(t, err)
	assert.True(t, customerrors.IsInvariantViolation(err))
	assert.False(t, s.IsObjectiveCompleted(o1.ID()))
	assert.Empty(t, s.CompletedUnlocks())
}

func TestSession_Force(t *testing.T) {
	s := NewSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger())

	objective, err := s.Force(u2.ID())
	require.NoError(t, err)
	assert.Equal(t, o1.ID(), objective)
	assert.True(t, s.IsUnlocked(u2.ID(), false))

	objective, err = s.Force(u2.ID())
	require.NoError(t, err)
	assert.Empty(t, objective, "second force is a no-op")

	_, err = s.Force("card:nope")
	assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeUnlockNotBound))
}

func TestRestoreSession(t *testing.T) {
	t.Run("valid state", func(t *testing.T) {
		b := scenarioBijection(t)
		s, err := RestoreSession(b, domain.ModeCasual, scenarioResolver(), discardLogger(),
			[]domain.ObjectiveID{o2.ID()}, []domain.Unlock{u1})
		require.NoError(t, err)
		assert.True(t, s.IsObjectiveCompleted(o2.ID()))
		assert.True(t, s.IsUnlocked(u1.ID(), true), "restored unlocks count for the run")
	})

	t.Run("binding mismatch", func(t *testing.T) {
		_, err := RestoreSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger(),
			[]domain.ObjectiveID{o1.ID()}, []domain.Unlock{u1})
		assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeBindingOutOfSync))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := RestoreSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger(),
			[]domain.ObjectiveID{o1.ID()}, nil)
		assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeBijectionCorrupt))
	})

	t.Run("duplicate objective", func(t *testing.T) {
		_, err := RestoreSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger(),
			[]domain.ObjectiveID{o3.ID(), o3.ID()}, []domain.Unlock{u3, u3})
		assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeBijectionCorrupt))
	})

	t.Run("unknown objective", func(t *testing.T) {
		_, err := RestoreSession(scenarioBijection(t), domain.ModeCasual, scenarioResolver(), discardLogger(),
			[]domain.ObjectiveID{"boss:zzz"}, []domain.Unlock{u3})
		assert.True(t, customerrors.HasCode(err, customerrors.ErrCodeObjectiveNotBound))
	})
}
