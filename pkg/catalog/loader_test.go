package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

const smallCatalogYAML = `
version: "2.0.0"
starting_character: alpha
characters:
  - name: beta
objective_kinds:
  - name: win
unlocks: ["character:beta", "path:cave", "card:sun", "collectible:deck"]
generation:
  early_unlocks: ["path:cave"]
  easy_objectives: ["character:alpha:win:normal"]
prerequisites:
  - unlock: "collectible:deck"
    requires_any_of: card
`

const smallCatalogJSON = `{
	"version": "2.0.0",
	"starting_character": "alpha",
	"characters": [{"name": "beta"}],
	"objective_kinds": [{"name": "win", "requires": {"unlock": "path:cave"}}],
	"unlocks": ["character:beta", "path:cave", "card:sun", "collectible:deck"],
	"generation": {
		"early_unlocks": ["path:cave"],
		"easy_objectives": ["character:alpha:win:normal"]
	},
	"prerequisites": [{"unlock": "collectible:deck", "requires_any": ["card:sun"]}]
}`

func TestCatalogLoader_LoadCatalog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("successful yaml load", func(t *testing.T) {
		path := createTempCatalogFile(t, "catalog.yaml", smallCatalogYAML)

		c, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}
		if c.Version != "2.0.0" {
			t.Errorf("expected version 2.0.0, got %q", c.Version)
		}
		if len(c.Objectives()) != 4 {
			t.Errorf("expected 4 objectives, got %d", len(c.Objectives()))
		}
		if c.Prerequisites[0].RequiresAnyOf != domain.UnlockTypeCard {
			t.Errorf("expected requires_any_of card, got %q", c.Prerequisites[0].RequiresAnyOf)
		}
	})

	t.Run("successful json load", func(t *testing.T) {
		path := createTempCatalogFile(t, "catalog.json", smallCatalogJSON)

		c, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}
		if c.ObjectiveKinds[0].Requires == nil || c.ObjectiveKinds[0].Requires.Unlock != "path:cave" {
			t.Errorf("expected kind requirement on path:cave, got %+v", c.ObjectiveKinds[0].Requires)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := NewCatalogLoader("/nonexistent/catalog.yaml", logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "failed to read catalog file") {
			t.Errorf("expected 'failed to read catalog file' error, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := createTempCatalogFile(t, "catalog.yml", "version: [unterminated")
		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "failed to parse catalog YAML") {
			t.Errorf("expected YAML parse error, got %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := createTempCatalogFile(t, "catalog.json", "{not json")
		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "failed to parse catalog JSON") {
			t.Errorf("expected JSON parse error, got %v", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		path := createTempCatalogFile(t, "catalog.yaml", strings.Replace(smallCatalogYAML, `"card:sun", `, "", 1))
		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "catalog validation failed") {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"catalog.yaml":      FormatYAML,
		"CATALOG.YML":       FormatYAML,
		"catalog.json":      FormatJSON,
		"catalog":           FormatJSON,
		"/etc/rando/c.yaml": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}

	if _, err := Parse([]byte("{}"), Format("toml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestReference(t *testing.T) {
	c, err := Reference()
	if err != nil {
		t.Fatalf("Reference() unexpected error = %v", err)
	}

	if got := len(c.Objectives()); got != 90 {
		t.Errorf("expected 90 objectives, got %d", got)
	}
	if got := len(c.Unlocks); got != 90 {
		t.Errorf("expected 90 unlocks, got %d", got)
	}

	unlocks, err := c.ParseUnlocks()
	if err != nil {
		t.Fatalf("ParseUnlocks() unexpected error = %v", err)
	}
	seen := make(map[domain.UnlockType]bool)
	for _, u := range unlocks {
		seen[u.Type()] = true
	}
	for _, typ := range domain.UnlockTypes() {
		if !seen[typ] {
			t.Errorf("reference catalog has no %s unlock", typ)
		}
	}

	// Each call returns an independent copy.
	c.Version = "changed"
	again, _ := Reference()
	if again.Version == "changed" {
		t.Error("Reference() must not share state between calls")
	}
}

func TestReference_PrerequisitesAcyclic(t *testing.T) {
	c, err := Reference()
	if err != nil {
		t.Fatalf("Reference() unexpected error = %v", err)
	}

	graph, err := NewValidator().prerequisiteGraph(c, unlockSetOf(c))
	if err != nil {
		t.Fatalf("prerequisiteGraph() unexpected error = %v", err)
	}

	// Walk every chain from every unlock; none may return to its start.
	for _, start := range c.Unlocks {
		visited := map[domain.UnlockID]bool{}
		queue := append([]domain.UnlockID(nil), graph[start]...)
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if next == start {
				t.Fatalf("prerequisite chain of %s returns to itself", start)
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, graph[next]...)
		}
	}
}

func unlockSetOf(c *Catalog) mapset.Set[domain.UnlockID] {
	s := mapset.New[domain.UnlockID]()
	for _, id := range c.Unlocks {
		s.Put(id)
	}
	return s
}

func createTempCatalogFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp catalog: %v", err)
	}
	return path
}
