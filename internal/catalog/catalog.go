// Package catalog maintains the cached map of known shortcuts: names,
// identifiers, and the purpose annotations accumulated for each.
package catalog

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/store"
)

// Entry is one known shortcut.
type Entry struct {
	ID       string   `json:"id"`
	Purposes []string `json:"purposes,omitempty"`
}

// Catalog maps shortcut display names to their entries.
type Catalog map[string]Entry

// cacheDoc is the persisted shape of the catalog cache file.
type cacheDoc struct {
	Timestamp string           `json:"timestamp"`
	Shortcuts map[string]Entry `json:"shortcuts"`
}

// Lister produces the raw newline-delimited "name (identifier)" listing.
type Lister interface {
	List(ctx context.Context) (string, error)
}

// listingLine matches "name (identifier)" with the identifier at line end.
var listingLine = regexp.MustCompile(`^(.*\S)\s+\(([^()]+)\)$`)

// ParseListing parses the listing output into name→identifier pairs. Blank
// lines are ignored; any other line that does not match the expected shape
// fails the whole parse closed, returning an empty map rather than a partial
// catalog built from output we did not understand.
func ParseListing(out string) map[string]string {
	pairs := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := listingLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return map[string]string{}
		}
		pairs[m[1]] = m[2]
	}
	return pairs
}

// Resolve maps a caller-supplied name onto the catalog. Exact match wins; a
// case-insensitive scan (alphabetical, so repeat calls agree) is the
// fallback. An unresolvable name passes through unchanged so the OS layer
// produces the not-found failure, and folded reports whether a
// case-insensitive resolution occurred.
func Resolve(name string, cat Catalog) (canonical string, folded bool) {
	if _, ok := cat[name]; ok {
		return name, false
	}

	keys := make([]string, 0, len(cat))
	for k := range cat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return name, false
}

// Cache is the TTL'd catalog cache backed by a single JSON document.
type Cache struct {
	store  *store.Store
	lister Lister
	path   string
	ttl    time.Duration
	now    func() time.Time
}

// NewCache creates a catalog cache persisted at path.
func NewCache(st *store.Store, lister Lister, path string, ttl time.Duration) *Cache {
	return &Cache{store: st, lister: lister, path: path, ttl: ttl, now: time.Now}
}

// Get returns the catalog, serving the cached document while it is within
// TTL and refreshing from the lister otherwise. annotations carries the
// purposes recorded in the profile, keyed by shortcut name; they are laid
// over whatever the cache or the fresh listing knows. A corrupt cache file
// is a miss, not an error: it forces an unconditional refresh.
func (c *Cache) Get(ctx context.Context, annotations map[string][]string) (Catalog, error) {
	var doc cacheDoc
	found, err := c.store.Load(c.path, &doc)
	if err != nil && !errors.Is(err, errors.ErrStoreCorrupt) {
		return nil, err
	}

	if err == nil && found && store.FreshWithin(doc.Timestamp, c.now(), c.ttl) {
		return overlay(doc.Shortcuts, annotations), nil
	}

	return c.refresh(ctx, doc.Shortcuts, annotations)
}

// refresh re-lists the shortcuts, re-merges previously recorded purposes so
// a refresh never drops annotations for a shortcut that still exists, and
// persists the new document with a fresh timestamp.
func (c *Cache) refresh(ctx context.Context, prior map[string]Entry, annotations map[string][]string) (Catalog, error) {
	out, err := c.lister.List(ctx)
	if err != nil {
		return nil, errors.NewRunFailed("shortcuts list", err.Error())
	}

	shortcuts := make(map[string]Entry)
	for name, id := range ParseListing(out) {
		entry := Entry{ID: id}
		if p, ok := prior[name]; ok {
			entry.Purposes = p.Purposes
		}
		shortcuts[name] = entry
	}

	merged := overlay(shortcuts, annotations)
	doc := cacheDoc{
		Timestamp: c.now().Format(time.RFC3339),
		Shortcuts: merged,
	}
	if err := c.store.Write(c.path, doc); err != nil {
		return nil, err
	}
	return merged, nil
}

// overlay lays profile annotations over catalog entries for shortcuts that
// exist in the listing. Annotations for shortcuts no longer listed stay in
// the profile but do not resurrect catalog entries.
func overlay(shortcuts map[string]Entry, annotations map[string][]string) Catalog {
	cat := make(Catalog, len(shortcuts))
	for name, entry := range shortcuts {
		if purposes, ok := annotations[name]; ok && len(purposes) > 0 {
			entry.Purposes = purposes
		}
		cat[name] = entry
	}
	return cat
}
