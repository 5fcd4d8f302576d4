// Package catalog holds the static game data: crop species and item
// definitions with their prices.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/validation"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// File is the on-disk layout of a catalog
type File struct {
	Version string                  `json:"version" yaml:"version"`
	Species []domain.CropSpecies    `json:"species" yaml:"species" validate:"dive"`
	Items   []domain.ItemDefinition `json:"items" yaml:"items" validate:"dive"`
}

// Catalog is an immutable index of species and items. It is safe for
// concurrent reads.
type Catalog struct {
	species map[string]domain.CropSpecies
	bySeed  map[string]string
	items   map[string]domain.ItemDefinition
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, ExtYAML)
}

// Load reads a catalog from a JSON or YAML file. An empty path loads the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	logger.Info(LogMsgCatalogLoaded, "path", path, "species", len(c.species), "items", len(c.items))
	return c, nil
}

// schemas is safe for concurrent use and caches the compiled schema
var schemas = validation.NewSchemaValidator()

// Parse checks catalog data against the catalog schema, then decodes and
// validates it in the format named by ext
func Parse(data []byte, ext string) (*Catalog, error) {
	var f File
	switch ext {
	case ExtJSON:
		if err := schemas.ValidateJSON(data, validation.SchemaCatalog); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	case ExtYAML, ExtYML:
		if err := schemas.ValidateYAML(data, validation.SchemaCatalog); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, ext)
	}
	return New(f)
}

// New builds a catalog from decoded data, validating every entry
func New(f File) (*Catalog, error) {
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	title := cases.Title(language.English)
	c := &Catalog{
		species: make(map[string]domain.CropSpecies, len(f.Species)),
		bySeed:  make(map[string]string, len(f.Species)),
		items:   make(map[string]domain.ItemDefinition, len(f.Items)),
	}

	for _, item := range f.Items {
		if _, exists := c.items[item.ID]; exists {
			return nil, fmt.Errorf("%w: item %q", ErrDuplicateID, item.ID)
		}
		if item.DisplayName == "" {
			item.DisplayName = title.String(strings.ReplaceAll(item.ID, "_", " "))
		}
		c.items[item.ID] = item
	}

	for _, sp := range f.Species {
		if _, exists := c.species[sp.ID]; exists {
			return nil, fmt.Errorf("%w: species %q", ErrDuplicateID, sp.ID)
		}
		if _, ok := c.items[sp.SeedItem]; !ok {
			return nil, fmt.Errorf("%w: %s seed %q", ErrMissingItem, sp.ID, sp.SeedItem)
		}
		if _, ok := c.items[sp.ProduceItem]; !ok {
			return nil, fmt.Errorf("%w: %s produce %q", ErrMissingItem, sp.ID, sp.ProduceItem)
		}
		if sp.DisplayName == "" {
			sp.DisplayName = title.String(strings.ReplaceAll(sp.ID, "_", " "))
		}
		c.species[sp.ID] = sp
		c.bySeed[sp.SeedItem] = sp.ID
	}

	return c, nil
}

// Species looks up a crop species by id
func (c *Catalog) Species(id string) (domain.CropSpecies, error) {
	sp, ok := c.species[id]
	if !ok {
		return domain.CropSpecies{}, fmt.Errorf("%w: %s", domain.ErrUnknownSpecies, id)
	}
	return sp, nil
}

// SpeciesForSeed resolves the species planted by a seed item
func (c *Catalog) SpeciesForSeed(seedItem string) (domain.CropSpecies, error) {
	id, ok := c.bySeed[seedItem]
	if !ok {
		return domain.CropSpecies{}, fmt.Errorf("%w: no species grows from %s", domain.ErrUnknownSpecies, seedItem)
	}
	return c.species[id], nil
}

// Item looks up an item definition by id
func (c *Catalog) Item(id string) (domain.ItemDefinition, error) {
	item, ok := c.items[id]
	if !ok {
		return domain.ItemDefinition{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, id)
	}
	return item, nil
}

// SellPrice returns what the shipping bin pays for one unit of the item
func (c *Catalog) SellPrice(itemID string) (int, error) {
	item, err := c.Item(itemID)
	if err != nil {
		return 0, err
	}
	return item.SellPrice, nil
}

// HasItem reports whether the item id is known
func (c *Catalog) HasItem(itemID string) bool {
	_, ok := c.items[itemID]
	return ok
}
