package granola

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document represents a meeting document as returned by the listing endpoint.
// Timestamps are kept in their wire format; use CreatedTime and UpdatedTime
// for parsed values.
type Document struct {
	// ID is the document id, the key every other endpoint takes.
	ID string `json:"id"`

	// Title is the meeting title. May be empty for unnamed meetings.
	Title string `json:"title"`

	// CreatedAt is the creation timestamp as sent by the API (RFC 3339).
	CreatedAt string `json:"created_at"`

	// UpdatedAt is the last-modified timestamp as sent by the API.
	UpdatedAt string `json:"updated_at"`

	Public             bool            `json:"public"`
	Transcribe         bool            `json:"transcribe"`
	PrivacyModeEnabled bool            `json:"privacy_mode_enabled"`
	ValidMeeting       bool            `json:"valid_meeting"`
	UserID             string          `json:"user_id"`
	WorkspaceID        string          `json:"workspace_id"`
	DeletedAt          *string         `json:"deleted_at"`
	TemplateID         *string         `json:"template_id"`
	SharingSettings    json.RawMessage `json:"sharing_settings"`

	// NotesPlain and NotesMarkdown are the user's meeting notes in the two
	// renderings the desktop app maintains.
	NotesPlain    string `json:"notes_plain"`
	NotesMarkdown string `json:"notes_markdown"`

	// Notes is the ProseMirror document backing the notes editor.
	Notes json.RawMessage `json:"notes"`

	// LastViewedPanel carries the AI summary panel. Only populated when the
	// listing was requested with panel data included.
	LastViewedPanel json.RawMessage `json:"last_viewed_panel"`

	GoogleCalendarEvent json.RawMessage `json:"google_calendar_event"`
	OutlookEvent        json.RawMessage `json:"outlook_event"`
	ZoomMeeting         json.RawMessage `json:"zoom_meeting"`

	// Raw is the complete document object exactly as received.
	Raw json.RawMessage `json:"-"`
}

// CreatedTime parses the document's creation timestamp. ok is false when the
// field is empty or not a recognizable timestamp.
func (d *Document) CreatedTime() (time.Time, bool) {
	return parseTimestamp(d.CreatedAt)
}

// UpdatedTime parses the document's last-modified timestamp.
func (d *Document) UpdatedTime() (time.Time, bool) {
	return parseTimestamp(d.UpdatedAt)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	// The API emits RFC 3339 with varying sub-second precision; older
	// documents have been seen without a zone suffix.
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TranscriptEntry is a single utterance in a meeting transcript.
type TranscriptEntry struct {
	// ID is the entry id.
	ID string `json:"id,omitempty"`

	// DocumentID is the id of the document this entry belongs to.
	DocumentID string `json:"document_id,omitempty"`

	// Text is the transcribed text.
	Text string `json:"text"`

	// Source tells which audio channel the entry came from: "microphone"
	// for the local user, "system" for everyone else.
	Source string `json:"source,omitempty"`

	// Speaker is the attributed speaker name, when the API resolved one.
	Speaker string `json:"speaker,omitempty"`

	// StartTimestamp and EndTimestamp bound the utterance (RFC 3339).
	StartTimestamp string `json:"start_timestamp,omitempty"`
	EndTimestamp   string `json:"end_timestamp,omitempty"`

	// SequenceNumber orders entries within a transcript. Not all documents
	// carry it; nil means the API did not send one.
	SequenceNumber *int `json:"sequence_number,omitempty"`

	IsFinal bool `json:"is_final,omitempty"`
}

// StartTime parses the entry's start timestamp.
func (e *TranscriptEntry) StartTime() (time.Time, bool) {
	return parseTimestamp(e.StartTimestamp)
}

// EndTime parses the entry's end timestamp.
func (e *TranscriptEntry) EndTime() (time.Time, bool) {
	return parseTimestamp(e.EndTimestamp)
}

// APIError represents a non-2xx response from the API.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Body is the raw response body, useful for debugging
	Body string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("granola API: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("granola API: HTTP %d: %s", e.StatusCode, e.Body)
}
