package ops

import (
	"context"

	"github.com/aterrell/shortcuts-mcp/internal/stats"
)

// Statistics returns the usage-statistics snapshot, delegating computation
// to the sampling capability when one is available and enough telemetry has
// accumulated. sampler may be nil. Statistics are advisory: when nothing
// fresh can be produced, the existing snapshot is served, stale or empty.
func Statistics(ctx context.Context, env *Env, sampler stats.Sampler) (*stats.Snapshot, error) {
	return env.Stats.Request(ctx, sampler)
}

// ComputeStatistics aggregates the telemetry log locally and persists the
// snapshot. Explicit opt-in path for callers without a sampling capability
// that still want numbers now.
func ComputeStatistics(env *Env) (*stats.Snapshot, error) {
	_, records, err := env.Telemetry.ReadAll()
	if err != nil {
		return nil, err
	}

	snap := stats.Compute(records, env.Now())
	if err := env.Stats.SaveLocal(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
