// Package store implements the raw day store: a directory holding one
// verbatim vendor response per calendar day, named YYYY-MM-DD.json.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FileStore is the durable raw store. Days are written wholesale and never
// partially patched; only the current day is ever overwritten.
type FileStore struct {
	dir string
}

// New creates the store directory if needed and returns a FileStore.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

// Dates lists every stored day, sorted ascending. Files that are not
// date-named JSON are ignored.
func (s *FileStore) Dates() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

// Has reports whether a day file exists for the date.
func (s *FileStore) Has(date string) bool {
	_, err := os.Stat(s.path(date))
	return err == nil
}

// ReadDay returns the verbatim stored body for the date.
func (s *FileStore) ReadDay(date string) ([]byte, error) {
	body, err := os.ReadFile(s.path(date))
	if err != nil {
		return nil, fmt.Errorf("read day %s: %w", date, err)
	}
	return body, nil
}

// WriteDay replaces the day file wholesale with the given body.
func (s *FileStore) WriteDay(date string, body []byte) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	if err := os.WriteFile(s.path(date), body, 0o644); err != nil {
		return fmt.Errorf("write day %s: %w", date, err)
	}
	return nil
}

func (s *FileStore) path(date string) string {
	return filepath.Join(s.dir, date+".json")
}
