package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

//go:embed reference.yaml
var referenceYAML []byte

// CatalogLoader loads and validates a catalog from a JSON or YAML file.
type CatalogLoader struct {
	catalogPath string
	validator   *Validator
	logger      *slog.Logger
}

// NewCatalogLoader creates a new CatalogLoader instance.
//
// Parameters:
//   - catalogPath: Path to the catalog file (.json, .yaml or .yml)
//   - logger: Structured logger for operational logging
func NewCatalogLoader(catalogPath string, logger *slog.Logger) *CatalogLoader {
	return &CatalogLoader{
		catalogPath: catalogPath,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// LoadCatalog reads, parses and validates the catalog file.
// An invalid catalog cannot produce a beatable seed, so callers should treat
// any error as fatal at startup.
func (l *CatalogLoader) LoadCatalog() (*Catalog, error) {
	data, err := os.ReadFile(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data, FormatFromPath(l.catalogPath))
	if err != nil {
		return nil, err
	}

	if err := l.validator.Validate(c); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	l.logger.Info("Catalog loaded successfully",
		"version", c.Version,
		"characters", len(c.Characters)+1,
		"objectives", len(c.Objectives()),
		"unlocks", len(c.Unlocks),
		"prerequisites", len(c.Prerequisites),
		"catalog_path", l.catalogPath,
	)

	return c, nil
}

// Parse decodes a catalog without validating it.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format '%s'", format)
	}
	return &c, nil
}

// Reference returns a fresh copy of the built-in catalog, validated.
func Reference() (*Catalog, error) {
	c, err := Parse(referenceYAML, FormatYAML)
	if err != nil {
		return nil, err
	}
	if err := NewValidator().Validate(c); err != nil {
		return nil, fmt.Errorf("reference catalog validation failed: %w", err)
	}
	return c, nil
}
