package ops

import (
	"context"
	"strings"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
)

// AnnotateInput contains parameters for the RecordPurpose operation.
type AnnotateInput struct {
	Shortcut string // required
	Purpose  string // required
}

// AnnotateOutput contains the result of the RecordPurpose operation.
type AnnotateOutput struct {
	Shortcut string   `json:"shortcut"`
	Purposes []string `json:"purposes"`
}

// RecordPurpose appends a purpose annotation to a shortcut's history. The
// name is resolved against the catalog first so annotations land under the
// canonical key the catalog merges on.
func RecordPurpose(ctx context.Context, env *Env, input AnnotateInput) (*AnnotateOutput, error) {
	if strings.TrimSpace(input.Shortcut) == "" {
		return nil, errors.NewInvalidRequest("shortcut is required")
	}

	canonical, _ := resolveName(ctx, env, input.Shortcut)
	purposes, err := env.Profile.RecordPurpose(canonical, input.Purpose)
	if err != nil {
		return nil, err
	}
	return &AnnotateOutput{Shortcut: canonical, Purposes: purposes}, nil
}
