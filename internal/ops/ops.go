// Package ops implements the operations exposed through both the CLI and
// the MCP tool surface.
package ops

import (
	"context"
	"path/filepath"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/catalog"
	"github.com/aterrell/shortcuts-mcp/internal/config"
	"github.com/aterrell/shortcuts-mcp/internal/profile"
	"github.com/aterrell/shortcuts-mcp/internal/shortcuts"
	"github.com/aterrell/shortcuts-mcp/internal/stats"
	"github.com/aterrell/shortcuts-mcp/internal/store"
	"github.com/aterrell/shortcuts-mcp/internal/telemetry"
)

// Data file layout under the base directory.
const (
	catalogFile   = "shortcuts-cache.json"
	profileFile   = "user-profile.json"
	statsFile     = "usage-statistics.json"
	executionsDir = "executions"
)

// Invoker abstracts the OS automation layer so tests can substitute it.
type Invoker interface {
	Run(ctx context.Context, name, input string) (shortcuts.RunResult, error)
	View(ctx context.Context, name string) error
}

// Env bundles the dependencies the operations act on.
type Env struct {
	Cfg       *config.Config
	Catalog   *catalog.Cache
	Invoker   Invoker
	Telemetry *telemetry.Log
	Profile   *profile.Store
	Stats     *stats.Engine
	Now       func() time.Time
}

// NewEnv wires the production environment rooted at baseDir.
func NewEnv(baseDir string, cfg *config.Config) *Env {
	st := store.New()
	runner := shortcuts.NewRunner()
	tlog := telemetry.NewLog(st, filepath.Join(baseDir, executionsDir))

	return &Env{
		Cfg:       cfg,
		Catalog:   catalog.NewCache(st, runner, filepath.Join(baseDir, catalogFile), cfg.CatalogTTL()),
		Invoker:   runner,
		Telemetry: tlog,
		Profile:   profile.NewStore(st, filepath.Join(baseDir, profileFile), cfg.MaxPurposes),
		Stats:     stats.NewEngine(st, tlog, filepath.Join(baseDir, statsFile), cfg.StatsTTL()),
		Now:       time.Now,
	}
}
