package store

import (
	"encoding/json"
	"os"
	"time"

	"github.com/teemow/granolaexport/internal/granola"
)

// TranscriptRecord is the on-disk schema written by the transcripts command
// and read back by the converter.
type TranscriptRecord struct {
	DocumentID        string                    `json:"document_id"`
	Title             string                    `json:"title"`
	CreatedAt         string                    `json:"created_at"`
	UpdatedAt         string                    `json:"updated_at"`
	DownloadTimestamp string                    `json:"download_timestamp"`
	TranscriptEntries []granola.TranscriptEntry `json:"transcript_entries"`
}

// MeetingRecord is the on-disk schema written by the meetings command. It
// restructures the API document into metadata, notes and calendar groups and
// keeps the raw document alongside for anything the grouping misses.
type MeetingRecord struct {
	DocumentID        string          `json:"document_id"`
	Title             string          `json:"title"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
	DownloadTimestamp string          `json:"download_timestamp"`
	Metadata          MeetingMetadata `json:"metadata"`
	Notes             MeetingNotes    `json:"notes"`
	CalendarInfo      CalendarInfo    `json:"calendar_info"`
	RawDocument       json.RawMessage `json:"raw_document,omitempty"`
}

// MeetingMetadata groups the document's account and sharing fields.
type MeetingMetadata struct {
	Public             bool            `json:"public"`
	Transcribe         bool            `json:"transcribe"`
	PrivacyModeEnabled bool            `json:"privacy_mode_enabled"`
	ValidMeeting       bool            `json:"valid_meeting"`
	UserID             string          `json:"user_id"`
	DeletedAt          *string         `json:"deleted_at"`
	TemplateID         *string         `json:"template_id"`
	SharingSettings    json.RawMessage `json:"sharing_settings"`
	WorkspaceID        string          `json:"workspace_id"`
}

// MeetingNotes groups the user's notes in their several renderings plus the
// AI summary panel.
type MeetingNotes struct {
	NotesPlain      string          `json:"notes_plain"`
	NotesMarkdown   string          `json:"notes_markdown"`
	Notes           json.RawMessage `json:"notes"`
	LastViewedPanel json.RawMessage `json:"last_viewed_panel"`
}

// CalendarInfo groups the calendar event payloads attached to a meeting.
type CalendarInfo struct {
	GoogleCalendarEvent json.RawMessage `json:"google_calendar_event"`
	OutlookEvent        json.RawMessage `json:"outlook_event"`
	ZoomMeeting         json.RawMessage `json:"zoom_meeting"`
}

// NewTranscriptRecord builds the record for one document's transcript.
func NewTranscriptRecord(doc *granola.Document, entries []granola.TranscriptEntry) *TranscriptRecord {
	return &TranscriptRecord{
		DocumentID:        doc.ID,
		Title:             doc.Title,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
		DownloadTimestamp: time.Now().Format(time.RFC3339),
		TranscriptEntries: entries,
	}
}

// NewMeetingRecord restructures an API document into the meeting schema.
func NewMeetingRecord(doc *granola.Document) *MeetingRecord {
	return &MeetingRecord{
		DocumentID:        doc.ID,
		Title:             doc.Title,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
		DownloadTimestamp: time.Now().Format(time.RFC3339),
		Metadata: MeetingMetadata{
			Public:             doc.Public,
			Transcribe:         doc.Transcribe,
			PrivacyModeEnabled: doc.PrivacyModeEnabled,
			ValidMeeting:       doc.ValidMeeting,
			UserID:             doc.UserID,
			DeletedAt:          doc.DeletedAt,
			TemplateID:         doc.TemplateID,
			SharingSettings:    doc.SharingSettings,
			WorkspaceID:        doc.WorkspaceID,
		},
		Notes: MeetingNotes{
			NotesPlain:      doc.NotesPlain,
			NotesMarkdown:   doc.NotesMarkdown,
			Notes:           doc.Notes,
			LastViewedPanel: doc.LastViewedPanel,
		},
		CalendarInfo: CalendarInfo{
			GoogleCalendarEvent: doc.GoogleCalendarEvent,
			OutlookEvent:        doc.OutlookEvent,
			ZoomMeeting:         doc.ZoomMeeting,
		},
		RawDocument: doc.Raw,
	}
}

// LoadTranscriptRecord reads one transcript record from disk. Decode
// failures are reported as *ParseError so callers can skip the file.
func LoadTranscriptRecord(path string) (*TranscriptRecord, error) {
	var record TranscriptRecord
	if err := loadJSON(path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// LoadMeetingRecord reads one meeting record from disk.
func LoadMeetingRecord(path string) (*MeetingRecord, error) {
	var record MeetingRecord
	if err := loadJSON(path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
