package markdown

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teemow/granolaexport/internal/granola"
	"github.com/teemow/granolaexport/internal/store"
)

// footer closes every rendered document.
const footer = "*This transcript was downloaded and converted from Granola AI*"

// Render produces the markdown document for one meeting from its transcript
// and meeting records. Either record may be nil; the sections it would feed
// are omitted rather than treated as an error.
func Render(transcript *store.TranscriptRecord, meeting *store.MeetingRecord) string {
	title, createdAt, updatedAt, documentID := headerFields(transcript, meeting)

	var entries []granola.TranscriptEntry
	if transcript != nil {
		entries = transcript.TranscriptEntries
	}

	var md strings.Builder
	md.WriteString("# ")
	md.WriteString(title)
	md.WriteString("\n\n")

	fmt.Fprintf(&md, "**Date:** %s\n", formatDatetime(createdAt))
	fmt.Fprintf(&md, "**Updated:** %s\n", formatDatetime(updatedAt))
	fmt.Fprintf(&md, "**Duration:** %s\n", duration(entries))
	fmt.Fprintf(&md, "**Document ID:** `%s`\n", documentID)

	if len(entries) > 0 {
		entryCount, speakerCount, wordCount := stats(entries)
		md.WriteString("\n---\n\n## Meeting Statistics\n\n")
		fmt.Fprintf(&md, "- **Total Entries:** %d\n", entryCount)
		fmt.Fprintf(&md, "- **Speakers:** %d\n", speakerCount)
		fmt.Fprintf(&md, "- **Total Words:** %d\n", wordCount)
	}

	if notes := meetingNotes(meeting); notes != "" {
		md.WriteString("\n---\n\n## Notes\n\n")
		md.WriteString(notes)
		md.WriteString("\n")
	}

	if len(entries) > 0 {
		md.WriteString("\n---\n\n## Transcript\n\n")
		md.WriteString(formatEntries(entries))
		md.WriteString("\n")
	}

	md.WriteString("\n---\n\n")
	md.WriteString(footer)
	md.WriteString("\n")
	return md.String()
}

// headerFields picks the title, timestamps and id for the document header,
// preferring the transcript record and falling back to the meeting record.
func headerFields(transcript *store.TranscriptRecord, meeting *store.MeetingRecord) (title, createdAt, updatedAt, documentID string) {
	title = "Untitled Meeting"
	if transcript != nil {
		if transcript.Title != "" {
			title = transcript.Title
		}
		return title, transcript.CreatedAt, transcript.UpdatedAt, transcript.DocumentID
	}
	if meeting.Title != "" {
		title = meeting.Title
	}
	return title, meeting.CreatedAt, meeting.UpdatedAt, meeting.DocumentID
}

// meetingNotes returns the best available notes rendering, preferring the
// markdown form the desktop app maintains over the plain-text one.
func meetingNotes(meeting *store.MeetingRecord) string {
	if meeting == nil {
		return ""
	}
	if notes := strings.TrimSpace(meeting.Notes.NotesMarkdown); notes != "" {
		return notes
	}
	return strings.TrimSpace(meeting.Notes.NotesPlain)
}

// formatEntries renders the transcript body, one speaker-attributed line per
// utterance, sorted into reading order.
func formatEntries(entries []granola.TranscriptEntry) string {
	sorted := sortEntries(entries)

	var lines []string
	for _, entry := range sorted {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}

		speaker := speakerName(&entry)
		if ts, ok := entry.StartTime(); ok {
			lines = append(lines, fmt.Sprintf("**[%s] %s:** %s", ts.Format("15:04:05"), speaker, text))
		} else {
			lines = append(lines, fmt.Sprintf("**%s:** %s", speaker, text))
		}
	}

	if len(lines) == 0 {
		return "*No transcript available*"
	}
	return strings.Join(lines, "\n\n")
}

// sortEntries orders entries by sequence number when the transcript carries
// one, falling back to start timestamps. The input slice is left untouched.
func sortEntries(entries []granola.TranscriptEntry) []granola.TranscriptEntry {
	sorted := make([]granola.TranscriptEntry, len(entries))
	copy(sorted, entries)

	if len(sorted) > 0 && sorted[0].SequenceNumber != nil {
		sort.SliceStable(sorted, func(i, j int) bool {
			return seq(&sorted[i]) < seq(&sorted[j])
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].StartTimestamp < sorted[j].StartTimestamp
		})
	}
	return sorted
}

func seq(entry *granola.TranscriptEntry) int {
	if entry.SequenceNumber == nil {
		return 0
	}
	return *entry.SequenceNumber
}

// speakerName attributes an utterance: the microphone channel is the local
// user ("me"), a resolved speaker keeps their name, everything else is the
// far side of the call ("them").
func speakerName(entry *granola.TranscriptEntry) string {
	switch {
	case entry.Source == "microphone":
		return "me"
	case entry.Speaker != "":
		return entry.Speaker
	default:
		return "them"
	}
}

// duration derives the meeting length from the earliest start and latest end
// timestamps across the transcript.
func duration(entries []granola.TranscriptEntry) string {
	var earliest, latest time.Time
	for _, entry := range entries {
		if start, ok := entry.StartTime(); ok && (earliest.IsZero() || start.Before(earliest)) {
			earliest = start
		}
		if end, ok := entry.EndTime(); ok && end.After(latest) {
			latest = end
		}
	}
	if earliest.IsZero() || latest.IsZero() || latest.Before(earliest) {
		return "Unknown"
	}

	elapsed := latest.Sub(earliest)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(minutes, "minute"))
	}
	return plural(minutes, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// stats summarizes a transcript: entry count, distinct speakers, total words.
func stats(entries []granola.TranscriptEntry) (entryCount, speakerCount, wordCount int) {
	speakers := make(map[string]struct{})
	for _, entry := range entries {
		speakers[speakerName(&entry)] = struct{}{}
		wordCount += len(strings.Fields(entry.Text))
	}
	return len(entries), len(speakers), wordCount
}

// formatDatetime renders a wire timestamp for the document header, falling
// back to the raw string when it does not parse.
func formatDatetime(value string) string {
	if value == "" {
		return "Unknown"
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		if t2, err2 := time.Parse("2006-01-02T15:04:05", value); err2 == nil {
			t = t2
		} else {
			return value
		}
	}
	return t.Format("Monday, January 02, 2006 at 03:04 PM")
}
