package catalog

import (
	"strings"
	"testing"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	customerrors "github.com/unlock-randomizer/randomizer-common/pkg/errors"
)

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		mutate  func(c *Catalog)
		wantErr string
	}{
		{
			name:   "valid catalog",
			mutate: func(c *Catalog) {},
		},
		{
			name:    "empty version",
			mutate:  func(c *Catalog) { c.Version = "" },
			wantErr: "version cannot be empty",
		},
		{
			name:    "invalid character name",
			mutate:  func(c *Catalog) { c.Characters[0].Name = "be:ta" },
			wantErr: "character",
		},
		{
			name: "duplicate character",
			mutate: func(c *Catalog) {
				c.Characters = append(c.Characters, CharacterEntry{Name: "alpha"})
			},
			wantErr: "duplicate character: alpha",
		},
		{
			name:    "no kinds",
			mutate:  func(c *Catalog) { c.ObjectiveKinds = nil },
			wantErr: "at least one objective kind",
		},
		{
			name:    "all kinds excluded",
			mutate:  func(c *Catalog) { c.ObjectiveKinds[0].Excluded = true },
			wantErr: "must not be excluded",
		},
		{
			name: "challenge with unknown character",
			mutate: func(c *Catalog) {
				c.Challenges = []ChallengeEntry{{Name: "dark", Character: "nobody"}}
			},
			wantErr: "unknown character 'nobody'",
		},
		{
			name:    "unparseable unlock",
			mutate:  func(c *Catalog) { c.Unlocks[1] = "weapon:sword" },
			wantErr: "unlock 'weapon:sword'",
		},
		{
			name:    "duplicate unlock",
			mutate:  func(c *Catalog) { c.Unlocks[3] = "card:sun" },
			wantErr: "duplicate unlock: card:sun",
		},
		{
			name:    "starting character randomized",
			mutate:  func(c *Catalog) { c.Unlocks[3] = "character:alpha" },
			wantErr: "starting character 'alpha' cannot be randomized",
		},
		{
			name:    "character without unlock",
			mutate:  func(c *Catalog) { c.Unlocks[0] = "card:moon" },
			wantErr: "character 'beta' has no unlock",
		},
		{
			name:    "challenge unlock for unknown challenge",
			mutate:  func(c *Catalog) { c.Unlocks[2] = "challenge:dark" },
			wantErr: "unknown challenge",
		},
		{
			name:    "size mismatch",
			mutate:  func(c *Catalog) { c.Unlocks = append(c.Unlocks, "card:moon") },
			wantErr: "4 objectives but 5 unlocks",
		},
		{
			name: "requirement on missing unlock",
			mutate: func(c *Catalog) {
				c.ObjectiveKinds[0].Requires = &Requirement{Unlock: "path:void"}
			},
			wantErr: "requires 'path:void'",
		},
		{
			name:    "empty requirement",
			mutate:  func(c *Catalog) { c.HardModeRequires = &Requirement{} },
			wantErr: "empty requirement",
		},
		{
			name:    "early unlock missing",
			mutate:  func(c *Catalog) { c.Generation.EarlyUnlocks = []domain.UnlockID{"path:void"} },
			wantErr: "early unlock 'path:void'",
		},
		{
			name:    "easy objective missing",
			mutate:  func(c *Catalog) { c.Generation.EasyObjectives = []domain.ObjectiveID{"boss:hush"} },
			wantErr: "not a catalog objective",
		},
		{
			name:    "easy pool too small",
			mutate:  func(c *Catalog) { c.Generation.EasyObjectives = nil },
			wantErr: "1 early unlocks but only 0 easy objectives",
		},
		{
			name: "hard ordering unsatisfiable",
			mutate: func(c *Catalog) {
				c.Characters[0].Hard = true
			},
			wantErr: "second half",
		},
		{
			name: "prerequisite without candidates",
			mutate: func(c *Catalog) {
				c.Prerequisites[0].RequiresAnyOf = domain.UnlockTypeTrinket
			},
			wantErr: "has no candidates",
		},
		{
			name: "prerequisite with both forms",
			mutate: func(c *Catalog) {
				c.Prerequisites[0].RequiresAny = []domain.UnlockID{"card:sun"}
			},
			wantErr: "exactly one of",
		},
		{
			name: "prerequisite on missing unlock",
			mutate: func(c *Catalog) {
				c.Prerequisites[0].RequiresAnyOf = ""
				c.Prerequisites[0].RequiresAny = []domain.UnlockID{"card:moon"}
			},
			wantErr: "names 'card:moon'",
		},
		{
			name: "prerequisite cycle",
			mutate: func(c *Catalog) {
				c.Prerequisites = append(c.Prerequisites, PrerequisiteEntry{
					Unlock:      "card:sun",
					RequiresAny: []domain.UnlockID{"collectible:deck"},
				})
			},
			wantErr: "prerequisite cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := smallCatalog()
			tt.mutate(c)

			err := validator.Validate(c)

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
			if !customerrors.HasCode(err, customerrors.ErrCodeCatalogInvalid) {
				t.Errorf("Validate() error code mismatch: %v", err)
			}
		})
	}
}

func TestValidator_ChallengeCharacterCycle(t *testing.T) {
	c := smallCatalog()
	c.Challenges = []ChallengeEntry{{Name: "dark", Character: "beta"}}
	c.Bosses = nil
	// One challenge objective needs one more unlock.
	c.Unlocks = append(c.Unlocks, "challenge:dark")
	c.Prerequisites = append(c.Prerequisites, PrerequisiteEntry{
		Unlock:      "character:beta",
		RequiresAny: []domain.UnlockID{"challenge:dark"},
	})

	err := NewValidator().Validate(c)
	if err == nil || !strings.Contains(err.Error(), "prerequisite cycle") {
		t.Errorf("expected prerequisite cycle through the challenge character, got %v", err)
	}
}
