package markdown

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/teemow/granolaexport/internal/logging"
	"github.com/teemow/granolaexport/internal/store"
)

// Options control one conversion run.
type Options struct {
	// TranscriptsDir and MeetingsDir are the directories the fetch commands
	// wrote into. Either may be missing or empty.
	TranscriptsDir string
	MeetingsDir    string

	// OutputDir receives one markdown file per meeting.
	OutputDir string

	// Force overwrites existing markdown files instead of skipping them.
	Force bool
}

// Summary counts the per-meeting outcomes of a conversion run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d converted, %d skipped (already exist), %d failed", s.Converted, s.Skipped, s.Failed)
}

// pairing is the transcript and meeting record for one document id. Either
// side may be nil when only one fetch category covered the meeting.
type pairing struct {
	stem       string
	transcript *store.TranscriptRecord
	meeting    *store.MeetingRecord
}

// Convert pairs the downloaded transcript and meeting records by document id
// and renders one markdown file per meeting. Records present in only one
// category are still converted, with the other section omitted. Malformed
// input files are logged and skipped; they never abort the run.
func Convert(opts Options) (*Summary, error) {
	logger := logging.WithOperation(slog.Default(), "markdown.convert")

	if err := store.EnsureDir(opts.OutputDir); err != nil {
		return nil, err
	}

	summary := &Summary{}
	pairings, order := loadPairings(opts, logger, summary)

	logger.Info("pairing complete",
		logging.Count(len(order)),
		slog.Int("malformed", summary.Failed))

	for _, id := range order {
		pair := pairings[id]
		path := filepath.Join(opts.OutputDir, pair.stem+".md")

		if store.Exists(path) && !opts.Force {
			logger.Debug("already converted", logging.Document(id), logging.Status(logging.StatusSkipped))
			summary.Skipped++
			continue
		}

		if err := writeDocument(path, Render(pair.transcript, pair.meeting)); err != nil {
			logger.Warn("writing markdown failed",
				logging.Document(id), logging.Path(path),
				logging.Status(logging.StatusFailed), logging.Err(err))
			summary.Failed++
			continue
		}

		logger.Debug("converted", logging.Document(id), logging.Path(path), logging.Status(logging.StatusConverted))
		summary.Converted++
	}

	logger.Info("conversion complete", slog.String("summary", summary.String()))
	return summary, nil
}

// loadPairings reads both record directories and groups records by document
// id, preserving first-seen order. Parse failures bump the failed count.
func loadPairings(opts Options, logger *slog.Logger, summary *Summary) (map[string]*pairing, []string) {
	pairings := make(map[string]*pairing)
	var order []string

	add := func(id, stem string) *pairing {
		if pair, ok := pairings[id]; ok {
			return pair
		}
		pair := &pairing{stem: stem}
		pairings[id] = pair
		order = append(order, id)
		return pair
	}

	forEachRecord(opts.TranscriptsDir, logger, summary, func(path string) error {
		record, err := store.LoadTranscriptRecord(path)
		if err != nil {
			return err
		}
		add(recordID(record.DocumentID, path), stem(path)).transcript = record
		return nil
	})

	forEachRecord(opts.MeetingsDir, logger, summary, func(path string) error {
		record, err := store.LoadMeetingRecord(path)
		if err != nil {
			return err
		}
		add(recordID(record.DocumentID, path), stem(path)).meeting = record
		return nil
	})

	return pairings, order
}

func forEachRecord(dir string, logger *slog.Logger, summary *Summary, load func(path string) error) {
	if dir == "" {
		return
	}
	paths, err := store.ScanDir(dir)
	if err != nil {
		logger.Warn("cannot scan input directory", logging.Path(dir), logging.Err(err))
		return
	}
	for _, path := range paths {
		if err := load(path); err != nil {
			var parseErr *store.ParseError
			if errors.As(err, &parseErr) {
				logger.Warn("skipping malformed record", logging.Path(path), logging.Err(err))
				summary.Failed++
				continue
			}
			logger.Warn("skipping unreadable record", logging.Path(path), logging.Err(err))
			summary.Failed++
		}
	}
}

// recordID keys a pairing. Records missing a document id fall back to their
// filename so they still convert, just unpaired.
func recordID(documentID, path string) string {
	if documentID != "" {
		return documentID
	}
	return "file:" + stem(path)
}

func stem(path string) string {
	return store.SanitizeTitle(strings.TrimSuffix(filepath.Base(path), ".json"))
}

func writeDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
