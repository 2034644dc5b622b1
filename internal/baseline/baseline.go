// Package baseline persists the day's anchor net-worth value and
// computes the intraday delta against it.
//
// A single JSON record lives on disk: {"date": "YYYY-MM-DD", "total": N}.
// The record is re-anchored lazily on the first successful poll of each
// local calendar day; nothing resets it at midnight. Reads are
// permissive: a missing, unreadable, or malformed file is treated the
// same as no baseline at all.
package baseline

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// DateFormat is the on-disk calendar-date layout, local time.
const DateFormat = "2006-01-02"

// Record is the persisted daily anchor.
type Record struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Store reads and writes the baseline record at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the baseline file location.
func (s *Store) Path() string { return s.path }

// DailyDelta returns currentTotal minus the day's anchor value.
//
// When no usable anchor exists for today (file absent, corrupt, or
// dated to another day) the current total becomes the new anchor
// and the delta is 0. A failed anchor write is logged and otherwise
// ignored; the next successful poll will try again.
func (s *Store) DailyDelta(currentTotal float64, today time.Time) float64 {
	day := today.Format(DateFormat)

	rec, err := s.load()
	if err != nil || rec.Date != day {
		if werr := s.write(Record{Date: day, Total: currentTotal}); werr != nil {
			log.Printf("baseline: write anchor: %v", werr)
		}
		return 0
	}
	return currentTotal - rec.Total
}

// load reads the persisted record. Any failure is reported as an error
// so the caller re-anchors; the distinction between "missing" and
// "corrupt" does not matter here.
func (s *Store) load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse baseline: %w", err)
	}
	if rec.Date == "" {
		return Record{}, fmt.Errorf("baseline record missing date")
	}
	return rec, nil
}

// write persists the record atomically: marshal to a temp file in the
// same directory, then rename over the destination. A crash mid-write
// can never leave a half-written baseline behind.
func (s *Store) write(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create baseline dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".baseline-*.json")
	if err != nil {
		return fmt.Errorf("create temp baseline: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp baseline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp baseline: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename baseline: %w", err)
	}
	return nil
}
