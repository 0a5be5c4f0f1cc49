package ops

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/catalog"
	"github.com/aterrell/shortcuts-mcp/internal/config"
	"github.com/aterrell/shortcuts-mcp/internal/profile"
	"github.com/aterrell/shortcuts-mcp/internal/shortcuts"
	"github.com/aterrell/shortcuts-mcp/internal/stats"
	"github.com/aterrell/shortcuts-mcp/internal/store"
	"github.com/aterrell/shortcuts-mcp/internal/telemetry"
)

const testListing = `Morning Routine (ABC-111)
Log Water (ABC-222)
Focus Mode (ABC-333)
`

// fakeLister serves a canned shortcut listing.
type fakeLister struct {
	output string
	calls  int
}

func (f *fakeLister) List(_ context.Context) (string, error) {
	f.calls++
	return f.output, nil
}

// fakeInvoker records invocations and serves canned results.
type fakeInvoker struct {
	runOutput string
	runErr    error
	viewErr   error
	runNames  []string
	runInputs []string
	viewNames []string
}

func (f *fakeInvoker) Run(_ context.Context, name, input string) (shortcuts.RunResult, error) {
	f.runNames = append(f.runNames, name)
	f.runInputs = append(f.runInputs, input)
	if f.runErr != nil {
		return shortcuts.RunResult{Duration: 5 * time.Millisecond}, f.runErr
	}
	out := f.runOutput
	if out == "" {
		out = shortcuts.NoOutputPlaceholder
	}
	return shortcuts.RunResult{Output: out, Duration: 42 * time.Millisecond}, nil
}

func (f *fakeInvoker) View(_ context.Context, name string) error {
	f.viewNames = append(f.viewNames, name)
	return f.viewErr
}

// newTestEnv wires an Env over a temp directory with fake OS boundaries.
func newTestEnv(t *testing.T) (*Env, *fakeLister, *fakeInvoker) {
	t.Helper()
	baseDir := t.TempDir()
	cfg := config.DefaultConfig()
	st := store.New()
	lister := &fakeLister{output: testListing}
	invoker := &fakeInvoker{}
	tlog := telemetry.NewLog(st, filepath.Join(baseDir, executionsDir))

	env := &Env{
		Cfg:       cfg,
		Catalog:   catalog.NewCache(st, lister, filepath.Join(baseDir, catalogFile), cfg.CatalogTTL()),
		Invoker:   invoker,
		Telemetry: tlog,
		Profile:   profile.NewStore(st, filepath.Join(baseDir, profileFile), cfg.MaxPurposes),
		Stats:     stats.NewEngine(st, tlog, filepath.Join(baseDir, statsFile), cfg.StatsTTL()),
		Now:       time.Now,
	}
	return env, lister, invoker
}
