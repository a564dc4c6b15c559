package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/teemow/granolaexport/internal/granola"
)

// maxTitleLen caps the sanitized title segment of a filename.
const maxTitleLen = 100

// ParseError indicates that a stored record could not be decoded. Callers
// log it and move on to the next file; one bad record never aborts a run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SanitizeTitle converts a meeting title into a filesystem-safe name:
// characters that are invalid on common filesystems are dropped, whitespace
// runs collapse to a single underscore, and the result is capped at 100
// characters. Empty results become "untitled".
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if !strings.ContainsRune(`<>:"/\|?*`, r) {
			b.WriteRune(r)
		}
	}

	name := strings.Join(strings.Fields(b.String()), "_")
	name = strings.Trim(name, "_")
	if len(name) > maxTitleLen {
		name = name[:maxTitleLen]
	}
	if name == "" {
		return "untitled"
	}
	return name
}

// Filename derives the JSON filename for a document: the creation date as a
// YYYY-MM-DD prefix (today when the timestamp is missing or unparseable)
// followed by the sanitized title. The derivation is deterministic, so one
// meeting maps to exactly one file per output directory.
func Filename(doc *granola.Document) string {
	date := time.Now()
	if t, ok := doc.CreatedTime(); ok {
		date = t
	}
	return fmt.Sprintf("%s_%s.json", date.Format("2006-01-02"), SanitizeTitle(doc.Title))
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteJSON writes v as indented JSON to path. The write is whole-file
// atomic: content goes to a temp file in the same directory first and is
// renamed into place, so a crash never leaves a truncated record under the
// final name.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s into place: %w", tmp, err)
	}
	return nil
}

// ScanDir lists the JSON record files in dir in name order. A missing
// directory yields an empty slice, not an error: a fetch that produced
// nothing is a valid (if empty) input to the converter.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// EnsureDir creates the output directory if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
