package catalog

import "errors"

// Sentinel errors for catalog loading
var (
	ErrDuplicateID   = errors.New("duplicate catalog id")
	ErrMissingItem   = errors.New("species references unknown item")
	ErrInvalidFormat = errors.New("unsupported catalog file format")
)

// Supported file extensions
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
