// Package stats maintains the usage-statistics snapshot: a 24-hour cache
// that is recomputed by delegating to an optional sampling capability when
// enough telemetry has accumulated.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/store"
	"github.com/aterrell/shortcuts-mcp/internal/telemetry"
)

// Data-volume thresholds below which delegated generation is not attempted.
const (
	MinDaysForSampling    = 3
	MinRecordsForSampling = 20
)

// Totals aggregates execution counts.
type Totals struct {
	Executions int `json:"executions"`
	Successes  int `json:"successes"`
	Failures   int `json:"failures"`
}

// Timing aggregates wall-clock durations in milliseconds.
type Timing struct {
	AverageMS int64 `json:"average_ms"`
	MinMS     int64 `json:"min_ms"`
	MaxMS     int64 `json:"max_ms"`
}

// ShortcutStats is the per-shortcut breakdown.
type ShortcutStats struct {
	Runs      int    `json:"runs"`
	Successes int    `json:"successes"`
	AverageMS int64  `json:"average_ms"`
	LastRun   string `json:"last_run,omitempty"`
}

// Snapshot is the persisted statistics document. Its GeneratedAt field is
// the freshness key for the 24-hour cache window.
type Snapshot struct {
	GeneratedAt string                   `json:"generatedAt"`
	Totals      Totals                   `json:"totals"`
	Timing      Timing                   `json:"timing"`
	Shortcuts   map[string]ShortcutStats `json:"shortcuts,omitempty"`
}

// Sampler is the optional delegated-generation capability, typically backed
// by the MCP client's sampling support. Implementations return the raw text
// of the model's response.
type Sampler interface {
	GenerateText(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error)
}

// Source produces a statistics snapshot from aggregated telemetry. The two
// implementations are a passthrough that keeps whatever snapshot already
// exists and a sampled source that delegates computation.
type Source interface {
	// Statistics returns the snapshot to serve and whether it was newly
	// generated (and should therefore be persisted).
	Statistics(ctx context.Context, existing *Snapshot, records []telemetry.Record) (*Snapshot, bool, error)
}

// passthroughSource returns the existing snapshot untouched. Statistics are
// advisory; when generation is impossible the caller gets stale or empty
// data rather than an error.
type passthroughSource struct{}

func (passthroughSource) Statistics(_ context.Context, existing *Snapshot, _ []telemetry.Record) (*Snapshot, bool, error) {
	return existing, false, nil
}

// sampledSource delegates aggregation to the sampling capability.
type sampledSource struct {
	sampler Sampler
	now     func() time.Time
}

func (s sampledSource) Statistics(ctx context.Context, existing *Snapshot, records []telemetry.Record) (*Snapshot, bool, error) {
	prompt, err := buildPrompt(records)
	if err != nil {
		return existing, false, nil
	}

	text, err := s.sampler.GenerateText(ctx, systemPrompt, prompt, maxResponseTokens)
	if err != nil {
		log.Printf("warning: statistics sampling failed, serving existing snapshot: %v", err)
		return existing, false, nil
	}

	snap, err := ParseSnapshot(text)
	if err != nil {
		log.Printf("warning: statistics response not usable, serving existing snapshot: %v", err)
		return existing, false, nil
	}
	snap.GeneratedAt = s.now().Format(time.RFC3339)
	return snap, true, nil
}

// SelectSource picks the statistics source for this call: delegated
// generation only when a sampler is available and both data-volume
// thresholds are met, passthrough otherwise.
func SelectSource(sampler Sampler, days, totalRecords int, now func() time.Time) Source {
	if sampler != nil && days >= MinDaysForSampling && totalRecords >= MinRecordsForSampling {
		return sampledSource{sampler: sampler, now: now}
	}
	return passthroughSource{}
}

const (
	maxResponseTokens = 2000

	systemPrompt = "You are a telemetry analyst. Respond with a single JSON object and nothing else."
)

// buildPrompt renders the structured generation request: the raw records
// plus the exact JSON shape the response must take.
func buildPrompt(records []telemetry.Record) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Analyze the following shortcut execution records and produce usage statistics.\n\n")
	b.WriteString("Records (JSON array):\n")
	b.Write(data)
	b.WriteString("\n\nRespond with a JSON object of exactly this shape:\n")
	b.WriteString(`{
  "totals": {"executions": 0, "successes": 0, "failures": 0},
  "timing": {"average_ms": 0, "min_ms": 0, "max_ms": 0},
  "shortcuts": {"<name>": {"runs": 0, "successes": 0, "average_ms": 0, "last_run": "<RFC3339>"}}
}`)
	b.WriteString("\nInclude every shortcut that appears in the records. Output only the JSON object.")
	return b.String(), nil
}

// ParseSnapshot parses the sampling response as a statistics snapshot.
// Code fences are stripped; anything that is not a JSON object (an array, a
// scalar, prose) is rejected so a confused response never becomes the
// persisted snapshot.
func ParseSnapshot(text string) (*Snapshot, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	snap := &Snapshot{}
	if err := json.Unmarshal([]byte(text), snap); err != nil {
		return nil, fmt.Errorf("response does not match the snapshot shape: %w", err)
	}
	return snap, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or without
// a language tag.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Compute aggregates records locally into a snapshot. This is the explicit
// local path behind `stats --local`; Engine.Request never calls it.
func Compute(records []telemetry.Record, now time.Time) *Snapshot {
	snap := &Snapshot{
		GeneratedAt: now.Format(time.RFC3339),
		Shortcuts:   make(map[string]ShortcutStats),
	}

	var totalMS int64
	perTotal := make(map[string]int64)
	lastRun := make(map[string]time.Time)

	for _, r := range records {
		snap.Totals.Executions++
		if r.Success {
			snap.Totals.Successes++
		} else {
			snap.Totals.Failures++
		}

		totalMS += r.DurationMS
		if snap.Totals.Executions == 1 || r.DurationMS < snap.Timing.MinMS {
			snap.Timing.MinMS = r.DurationMS
		}
		if r.DurationMS > snap.Timing.MaxMS {
			snap.Timing.MaxMS = r.DurationMS
		}

		sc := snap.Shortcuts[r.Shortcut]
		sc.Runs++
		if r.Success {
			sc.Successes++
		}
		perTotal[r.Shortcut] += r.DurationMS
		if r.Timestamp.After(lastRun[r.Shortcut]) {
			lastRun[r.Shortcut] = r.Timestamp
		}
		snap.Shortcuts[r.Shortcut] = sc
	}

	if snap.Totals.Executions > 0 {
		snap.Timing.AverageMS = totalMS / int64(snap.Totals.Executions)
	}
	for name, sc := range snap.Shortcuts {
		sc.AverageMS = perTotal[name] / int64(sc.Runs)
		sc.LastRun = lastRun[name].Format(time.RFC3339)
		snap.Shortcuts[name] = sc
	}
	return snap
}

// Engine serves the snapshot cache and drives recomputation.
type Engine struct {
	store *store.Store
	log   *telemetry.Log
	path  string
	ttl   time.Duration
	now   func() time.Time
}

// NewEngine creates a statistics engine persisting its snapshot at path.
func NewEngine(st *store.Store, tlog *telemetry.Log, path string, ttl time.Duration) *Engine {
	return &Engine{store: st, log: tlog, path: path, ttl: ttl, now: time.Now}
}

// Request returns the statistics snapshot. A snapshot generated within the
// freshness window is served as-is. Otherwise the engine aggregates the
// telemetry log, picks a source off the sampler and the data volume, and
// persists (deep-merged, so per-shortcut entries not recomputed this round
// survive) whatever a delegated source produced. Corruption of the snapshot
// document is a hard error.
func (e *Engine) Request(ctx context.Context, sampler Sampler) (*Snapshot, error) {
	existing := &Snapshot{}
	found, err := e.store.Load(e.path, existing)
	if err != nil {
		return nil, err
	}

	if found && store.FreshWithin(existing.GeneratedAt, e.now(), e.ttl) {
		return existing, nil
	}

	days, records, err := e.log.ReadAll()
	if err != nil {
		return nil, err
	}

	source := SelectSource(sampler, days, len(records), e.now)
	snap, generated, err := source.Statistics(ctx, existing, records)
	if err != nil {
		return nil, err
	}
	if !generated {
		return snap, nil
	}

	if err := e.persist(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SaveLocal persists a locally computed snapshot through the same
// deep-merge path the delegated source uses.
func (e *Engine) SaveLocal(snap *Snapshot) error {
	return e.persist(snap)
}

func (e *Engine) persist(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	partial := make(map[string]any)
	if err := json.Unmarshal(data, &partial); err != nil {
		return err
	}
	return e.store.SaveMerged(e.path, partial)
}
