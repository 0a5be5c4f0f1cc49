// Package telemetry keeps the append-only execution history, one JSON log
// per calendar day.
package telemetry

import (
	"crypto/rand"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aterrell/shortcuts-mcp/internal/store"
)

// Record is one logged execution attempt. Immutable once written.
type Record struct {
	ID         string    `json:"id"`
	Shortcut   string    `json:"shortcut"`
	Success    bool      `json:"success"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// dayFileName matches daily log files such as 2026-08-30.json.
var dayFileName = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// Log is the per-day execution log rooted at a directory.
type Log struct {
	store *store.Store
	dir   string
}

// NewLog creates a telemetry log under dir.
func NewLog(st *store.Store, dir string) *Log {
	return &Log{store: st, dir: dir}
}

// NewRecordID returns a ULID for a record created at t.
func NewRecordID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// dayPath returns the log file for the date component of t.
func (l *Log) dayPath(t time.Time) string {
	return filepath.Join(l.dir, t.Format("2006-01-02")+".json")
}

// Append adds rec to the daily log determined by its timestamp. The whole
// read-push-write cycle runs under the file's lock. An existing day file
// that does not parse is logged and restarted empty; daily logs are
// tolerable data, unlike the profile.
func (l *Log) Append(rec Record) error {
	path := l.dayPath(rec.Timestamp)
	return l.store.Locked(path, func() error {
		var records []Record
		if _, err := store.ReadDocument(path, &records); err != nil {
			log.Printf("warning: daily log %s is unreadable, starting fresh: %v", path, err)
			records = nil
		}
		records = append(records, rec)
		return store.WriteDocument(path, records)
	})
}

// ReadAll aggregates every daily log. Files that fail to parse, or do not
// hold an array, are skipped with a warning; the day count reports files
// attempted, parseable or not, so one bad day cannot hide the volume of
// history on disk.
func (l *Log) ReadAll() (days int, records []Record, err error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, nil
		}
		return 0, nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && dayFileName.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	// Most recent day first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		days++
		path := filepath.Join(l.dir, name)
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Printf("warning: skipping unreadable daily log %s: %v", path, readErr)
			continue
		}
		var dayRecords []Record
		if jsonErr := json.Unmarshal(data, &dayRecords); jsonErr != nil {
			log.Printf("warning: skipping malformed daily log %s: %v", path, jsonErr)
			continue
		}
		records = append(records, dayRecords...)
	}
	return days, records, nil
}

// DistinctDays returns the number of distinct calendar dates in records.
func DistinctDays(records []Record) int {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Timestamp.Format("2006-01-02")] = true
	}
	return len(seen)
}
