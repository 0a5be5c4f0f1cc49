package ops

import (
	"context"
	"log"

	"github.com/aterrell/shortcuts-mcp/internal/catalog"
)

// CatalogOutput contains the result of the GetCatalog operation.
type CatalogOutput struct {
	Shortcuts catalog.Catalog `json:"shortcuts"`
	Count     int             `json:"count"`
}

// GetCatalog returns the catalog of known shortcuts, enriched with the
// purpose annotations recorded in the profile.
func GetCatalog(ctx context.Context, env *Env) (*CatalogOutput, error) {
	annotations, err := env.Profile.Annotations()
	if err != nil {
		return nil, err
	}

	cat, err := env.Catalog.Get(ctx, annotations)
	if err != nil {
		return nil, err
	}
	return &CatalogOutput{Shortcuts: cat, Count: len(cat)}, nil
}

// resolveName maps a caller-supplied name onto the catalog. Catalog
// failures are tolerable here: resolution falls back to the literal name
// and lets the OS layer produce the failure.
func resolveName(ctx context.Context, env *Env, name string) (string, bool) {
	cat, err := env.Catalog.Get(ctx, nil)
	if err != nil {
		log.Printf("warning: catalog unavailable, using name as given: %v", err)
		return name, false
	}
	return catalog.Resolve(name, cat)
}
