package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/teemow/granolaexport/internal/granola"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.APIBaseURL != granola.DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, granola.DefaultBaseURL)
	}
	if cfg.TranscriptsDir != "transcripts" {
		t.Errorf("TranscriptsDir = %q, want %q", cfg.TranscriptsDir, "transcripts")
	}
	if cfg.MeetingsDir != "meetings" {
		t.Errorf("MeetingsDir = %q, want %q", cfg.MeetingsDir, "meetings")
	}
	if cfg.MarkdownDir != "markdown" {
		t.Errorf("MarkdownDir = %q, want %q", cfg.MarkdownDir, "markdown")
	}
	if cfg.CredentialsPath == "" {
		t.Error("CredentialsPath is empty")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_base_url = "https://granola.test"
credentials_path = "/tmp/supabase.json"
transcripts_dir = "/data/transcripts"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.APIBaseURL != "https://granola.test" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.CredentialsPath != "/tmp/supabase.json" {
		t.Errorf("CredentialsPath = %q", cfg.CredentialsPath)
	}
	if cfg.TranscriptsDir != "/data/transcripts" {
		t.Errorf("TranscriptsDir = %q", cfg.TranscriptsDir)
	}
	// Keys absent from the file keep their defaults.
	if cfg.MeetingsDir != "meetings" {
		t.Errorf("MeetingsDir = %q, want %q", cfg.MeetingsDir, "meetings")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "https://from-file.test"`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GRANOLAEXPORT_API_BASE_URL", "https://from-env.test")
	t.Setenv("GRANOLAEXPORT_MEETINGS_DIR", "/env/meetings")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.APIBaseURL != "https://from-env.test" {
		t.Errorf("APIBaseURL = %q, want env value", cfg.APIBaseURL)
	}
	if cfg.MeetingsDir != "/env/meetings" {
		t.Errorf("MeetingsDir = %q, want env value", cfg.MeetingsDir)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not toml ="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := load(path); err == nil {
		t.Error("load() did not report the malformed config file")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	if got, want := expandTilde("~/data"), filepath.Join(home, "data"); got != want {
		t.Errorf("expandTilde(~/data) = %q, want %q", got, want)
	}
	if got := expandTilde("/absolute/path"); got != "/absolute/path" {
		t.Errorf("expandTilde(/absolute/path) = %q", got)
	}
}
