package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/teemow/granolaexport/internal/granola"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain title", "Weekly Sync", "Weekly_Sync"},
		{"invalid characters dropped", `Q3 <Plan>: "Review" / Update`, "Q3_Plan_Review_Update"},
		{"whitespace runs collapse", "a   b\t\tc", "a_b_c"},
		{"leading and trailing underscores trimmed", "  hello  ", "hello"},
		{"empty", "", "untitled"},
		{"only invalid characters", `<>:"/\|?*`, "untitled"},
		{"long title capped", strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	doc := &granola.Document{
		Title:     "Weekly Sync",
		CreatedAt: "2025-06-15T09:30:00Z",
	}
	if got, want := Filename(doc), "2025-06-15_Weekly_Sync.json"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilenameFallsBackToToday(t *testing.T) {
	doc := &granola.Document{Title: "No Date", CreatedAt: "not a timestamp"}
	want := time.Now().Format("2006-01-02") + "_No_Date.json"
	if got := Filename(doc); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestWriteJSONIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")

	record := &TranscriptRecord{DocumentID: "d1", Title: "T"}
	if err := WriteJSON(path, record); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	// The temp file must be gone after a successful write.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present after write")
	}

	loaded, err := LoadTranscriptRecord(path)
	if err != nil {
		t.Fatalf("LoadTranscriptRecord() error = %v", err)
	}
	if loaded.DocumentID != "d1" {
		t.Errorf("DocumentID = %q, want %q", loaded.DocumentID, "d1")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt", "c.json.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}

	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}
	if len(paths) != len(want) {
		t.Fatalf("ScanDir() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("ScanDir()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestScanDirMissingDirectory(t *testing.T) {
	paths, err := ScanDir(filepath.Join(t.TempDir(), "never-created"))
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}
	if paths != nil {
		t.Errorf("ScanDir() = %v, want nil", paths)
	}
}

func TestLoadTranscriptRecordMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTranscriptRecord(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("LoadTranscriptRecord() error = %v, want *ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}

func TestNewMeetingRecordGroupsFields(t *testing.T) {
	doc := &granola.Document{
		ID:            "d1",
		Title:         "Planning",
		CreatedAt:     "2025-06-15T09:30:00Z",
		UpdatedAt:     "2025-06-15T10:30:00Z",
		Public:        true,
		ValidMeeting:  true,
		UserID:        "u1",
		WorkspaceID:   "w1",
		NotesPlain:    "plain notes",
		NotesMarkdown: "# md notes",
		Raw:           []byte(`{"id": "d1"}`),
	}

	record := NewMeetingRecord(doc)
	if record.DocumentID != "d1" {
		t.Errorf("DocumentID = %q, want %q", record.DocumentID, "d1")
	}
	if !record.Metadata.Public || !record.Metadata.ValidMeeting {
		t.Error("metadata flags not carried over")
	}
	if record.Metadata.UserID != "u1" || record.Metadata.WorkspaceID != "w1" {
		t.Error("metadata ids not carried over")
	}
	if record.Notes.NotesMarkdown != "# md notes" {
		t.Errorf("Notes.NotesMarkdown = %q", record.Notes.NotesMarkdown)
	}
	if string(record.RawDocument) != `{"id": "d1"}` {
		t.Errorf("RawDocument = %s", record.RawDocument)
	}
	if record.DownloadTimestamp == "" {
		t.Error("DownloadTimestamp not set")
	}
}
