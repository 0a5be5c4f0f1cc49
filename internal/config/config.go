package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration.
type Config struct {
	// DataDir overrides the directory the catalog cache, telemetry log,
	// profile, and statistics snapshot are kept in. Empty means the
	// default data directory the config itself was loaded from.
	DataDir string `json:"data_dir,omitempty"`

	// CatalogTTLHours is the freshness window for the shortcut catalog
	// cache. The external listing is not re-invoked within it.
	CatalogTTLHours int `json:"catalog_ttl_hours"`

	// StatsTTLHours is the freshness window for the statistics snapshot,
	// keyed off its generatedAt field.
	StatsTTLHours int `json:"stats_ttl_hours"`

	// MaxPurposes bounds the purpose-annotation history kept per shortcut.
	MaxPurposes int `json:"max_purposes,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogTTLHours: 24,
		StatsTTLHours:   24,
		MaxPurposes:     8,
	}
}

// CatalogTTL returns the catalog freshness window as a duration.
func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLHours) * time.Hour
}

// StatsTTL returns the statistics freshness window as a duration.
func (c *Config) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLHours) * time.Hour
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of the
// real data directory.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for scalars; disabled-tool lists are concatenated and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.CatalogTTLHours = overlay.CatalogTTLHours
	if result.CatalogTTLHours == 0 {
		result.CatalogTTLHours = base.CatalogTTLHours
	}

	result.StatsTTLHours = overlay.StatsTTLHours
	if result.StatsTTLHours == 0 {
		result.StatsTTLHours = base.StatsTTLHours
	}

	result.MaxPurposes = overlay.MaxPurposes
	if result.MaxPurposes == 0 {
		result.MaxPurposes = base.MaxPurposes
	}

	result.DataDir = overlay.DataDir
	if result.DataDir == "" {
		result.DataDir = base.DataDir
	}

	seen := make(map[string]bool)
	for _, name := range append(append([]string{}, base.DisabledTools...), overlay.DisabledTools...) {
		if !seen[name] {
			seen[name] = true
			result.DisabledTools = append(result.DisabledTools, name)
		}
	}

	return result
}
