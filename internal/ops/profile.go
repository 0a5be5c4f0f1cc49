package ops

import (
	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/profile"
)

// GetProfile returns the stored user profile, empty if none exists yet.
func GetProfile(env *Env) (*profile.Profile, error) {
	return env.Profile.Load()
}

// SaveProfileOutput contains the result of the SaveProfile operation.
type SaveProfileOutput struct {
	Profile *profile.Profile `json:"profile"`
}

// SaveProfile deep-merges a partial update into the profile and returns the
// merged document. An update touching one key leaves siblings intact.
func SaveProfile(env *Env, partial map[string]any) (*SaveProfileOutput, error) {
	if len(partial) == 0 {
		return nil, errors.NewInvalidRequest("update document is empty")
	}

	if err := env.Profile.Save(partial); err != nil {
		return nil, err
	}
	p, err := env.Profile.Load()
	if err != nil {
		return nil, err
	}
	return &SaveProfileOutput{Profile: p}, nil
}
