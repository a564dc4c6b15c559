package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/teemow/granolaexport/internal/granola"
	"github.com/teemow/granolaexport/internal/logging"
	"github.com/teemow/granolaexport/internal/store"
)

// API is the slice of the Granola client the fetch runs need.
type API interface {
	ListDocuments(ctx context.Context, includePanel bool) ([]granola.Document, error)
	GetTranscript(ctx context.Context, documentID string) ([]granola.TranscriptEntry, error)
}

// Options control one fetch run.
type Options struct {
	// OutputDir receives one JSON file per meeting.
	OutputDir string

	// Days limits the run to documents created in the last N days.
	// Zero means no cutoff.
	Days int

	// Force overwrites existing output files instead of skipping them.
	Force bool

	// Delay spaces out per-document API calls. Zero disables the pause.
	Delay time.Duration
}

// Summary counts the per-document outcomes of a run. Failed items were
// logged and skipped; they never abort the batch.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d downloaded, %d skipped (already exist), %d failed", s.Downloaded, s.Skipped, s.Failed)
}

// Transcripts downloads the transcript of every matching meeting into one
// JSON file each. Documents without a transcript count as failed, matching
// the per-item error category of the run summary. Only a listing failure is
// fatal: with no document list there is nothing to process.
func Transcripts(ctx context.Context, api API, opts Options) (*Summary, error) {
	logger := logging.WithOperation(slog.Default(), "transcripts.download")

	docs, err := listDocuments(ctx, api, false, opts, logger)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i := range docs {
		doc := &docs[i]
		logger.Debug("processing document",
			logging.Document(doc.ID), logging.Title(doc.Title),
			slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(docs))))

		path := filepath.Join(opts.OutputDir, store.Filename(doc))
		if store.Exists(path) && !opts.Force {
			logger.Debug("already downloaded", logging.Document(doc.ID), logging.Status(logging.StatusSkipped))
			summary.Skipped++
			continue
		}

		entries, err := api.GetTranscript(ctx, doc.ID)
		if err != nil {
			logger.Warn("transcript fetch failed",
				logging.Document(doc.ID), logging.Title(doc.Title),
				logging.Status(logging.StatusFailed), logging.Err(err))
			summary.Failed++
			continue
		}
		if entries == nil {
			logger.Warn("no transcript available",
				logging.Document(doc.ID), logging.Title(doc.Title),
				logging.Status(logging.StatusFailed))
			summary.Failed++
			continue
		}

		if err := store.WriteJSON(path, store.NewTranscriptRecord(doc, entries)); err != nil {
			logger.Warn("saving transcript failed",
				logging.Document(doc.ID), logging.Path(path),
				logging.Status(logging.StatusFailed), logging.Err(err))
			summary.Failed++
			continue
		}

		logger.Debug("saved transcript", logging.Path(path), logging.Status(logging.StatusDownloaded))
		summary.Downloaded++

		if err := pause(ctx, opts.Delay); err != nil {
			return summary, err
		}
	}

	logger.Info("transcript download complete", slog.String("summary", summary.String()))
	return summary, nil
}

// Meetings downloads every matching meeting's structured record (notes,
// metadata, calendar payloads, AI summary panel). The listing already
// carries everything needed, so there is no per-document API call.
func Meetings(ctx context.Context, api API, opts Options) (*Summary, error) {
	logger := logging.WithOperation(slog.Default(), "meetings.download")

	docs, err := listDocuments(ctx, api, true, opts, logger)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i := range docs {
		doc := &docs[i]

		path := filepath.Join(opts.OutputDir, store.Filename(doc))
		if store.Exists(path) && !opts.Force {
			logger.Debug("already downloaded", logging.Document(doc.ID), logging.Status(logging.StatusSkipped))
			summary.Skipped++
			continue
		}

		if err := store.WriteJSON(path, store.NewMeetingRecord(doc)); err != nil {
			logger.Warn("saving meeting failed",
				logging.Document(doc.ID), logging.Path(path),
				logging.Status(logging.StatusFailed), logging.Err(err))
			summary.Failed++
			continue
		}

		logger.Debug("saved meeting", logging.Path(path), logging.Status(logging.StatusDownloaded))
		summary.Downloaded++
	}

	logger.Info("meeting download complete", slog.String("summary", summary.String()))
	return summary, nil
}

func listDocuments(ctx context.Context, api API, includePanel bool, opts Options, logger *slog.Logger) ([]granola.Document, error) {
	if err := store.EnsureDir(opts.OutputDir); err != nil {
		return nil, err
	}

	docs, err := api.ListDocuments(ctx, includePanel)
	if err != nil {
		return nil, fmt.Errorf("fetching document list: %w", err)
	}
	logger.Info("fetched document list", logging.Count(len(docs)))

	if opts.Days > 0 {
		docs = FilterByAge(docs, opts.Days, time.Now())
		logger.Info("applied date cutoff", logging.Count(len(docs)), slog.Int("days", opts.Days))
	}
	return docs, nil
}

// FilterByAge keeps documents created within the last days days relative to
// now. Documents whose creation timestamp is missing or unparseable are
// kept; a bad timestamp is no reason to silently drop a meeting.
func FilterByAge(docs []granola.Document, days int, now time.Time) []granola.Document {
	cutoff := now.AddDate(0, 0, -days)

	var kept []granola.Document
	for _, doc := range docs {
		created, ok := doc.CreatedTime()
		if !ok || !created.Before(cutoff) {
			kept = append(kept, doc)
		}
	}
	return kept
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
