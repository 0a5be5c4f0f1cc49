package ops

import (
	"context"
	"log"
	"strings"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/telemetry"
)

// RunInput contains parameters for the Run operation.
type RunInput struct {
	Name    string // required
	Input   string // optional payload handed to the shortcut
	Purpose string // optional: why this shortcut was invoked, recorded as an annotation
}

// RunOutput contains the result of the Run operation.
type RunOutput struct {
	Shortcut   string `json:"shortcut"`
	Resolved   bool   `json:"case_insensitive_match,omitempty"`
	Output     string `json:"output"`
	DurationMS int64  `json:"duration_ms"`
}

// Run executes a shortcut by name. Exactly one telemetry record is appended
// per attempt, success or failure, before any error propagates.
func Run(ctx context.Context, env *Env, input RunInput) (*RunOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}

	canonical, folded := resolveName(ctx, env, input.Name)

	result, runErr := env.Invoker.Run(ctx, canonical, input.Input)

	now := env.Now()
	rec := telemetry.Record{
		ID:         telemetry.NewRecordID(now),
		Shortcut:   canonical,
		Success:    runErr == nil,
		DurationMS: result.Duration.Milliseconds(),
		Timestamp:  now,
	}
	if err := env.Telemetry.Append(rec); err != nil {
		// The run outcome is what the caller asked about; a logging
		// failure must not mask it.
		log.Printf("warning: could not record execution of %q: %v", canonical, err)
	}

	if runErr != nil {
		return nil, runErr
	}

	if strings.TrimSpace(input.Purpose) != "" {
		if _, err := env.Profile.RecordPurpose(canonical, input.Purpose); err != nil {
			log.Printf("warning: could not record purpose for %q: %v", canonical, err)
		}
	}

	return &RunOutput{
		Shortcut:   canonical,
		Resolved:   folded,
		Output:     result.Output,
		DurationMS: result.Duration.Milliseconds(),
	}, nil
}

// ViewOutput contains the result of the View operation.
type ViewOutput struct {
	Shortcut string `json:"shortcut"`
	Opened   bool   `json:"opened"`
}

// View opens a shortcut in the editor. View failures reflect tooling or
// name problems, not execution attempts, so no telemetry is recorded.
func View(ctx context.Context, env *Env, name string) (*ViewOutput, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}

	canonical, _ := resolveName(ctx, env, name)
	if err := env.Invoker.View(ctx, canonical); err != nil {
		return nil, err
	}
	return &ViewOutput{Shortcut: canonical, Opened: true}, nil
}
