package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teemow/granolaexport/internal/auth"
	"github.com/teemow/granolaexport/internal/granola"
)

// Config holds the tool's settings after merging defaults, the config file
// and environment overrides. Command-line flags are applied on top by the
// commands themselves.
type Config struct {
	APIBaseURL      string
	CredentialsPath string
	TranscriptsDir  string
	MeetingsDir     string
	MarkdownDir     string
}

type fileConfig struct {
	APIBaseURL      string `toml:"api_base_url"`
	CredentialsPath string `toml:"credentials_path"`
	TranscriptsDir  string `toml:"transcripts_dir"`
	MeetingsDir     string `toml:"meetings_dir"`
	MarkdownDir     string `toml:"markdown_dir"`
}

// Load builds the configuration. A missing config file is not an error; the
// defaults already describe a working setup. Precedence from weakest to
// strongest: defaults, config file, environment.
func Load() (*Config, error) {
	return load(FilePath())
}

func load(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:      granola.DefaultBaseURL,
		CredentialsPath: auth.DefaultCredentialsPath(),
		TranscriptsDir:  "transcripts",
		MeetingsDir:     "meetings",
		MarkdownDir:     "markdown",
	}

	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else {
			applyFile(cfg, &fc)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyFile(cfg *Config, fc *fileConfig) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.CredentialsPath != "" {
		cfg.CredentialsPath = expandTilde(fc.CredentialsPath)
	}
	if fc.TranscriptsDir != "" {
		cfg.TranscriptsDir = expandTilde(fc.TranscriptsDir)
	}
	if fc.MeetingsDir != "" {
		cfg.MeetingsDir = expandTilde(fc.MeetingsDir)
	}
	if fc.MarkdownDir != "" {
		cfg.MarkdownDir = expandTilde(fc.MarkdownDir)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRANOLAEXPORT_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GRANOLAEXPORT_CREDENTIALS"); v != "" {
		cfg.CredentialsPath = expandTilde(v)
	}
	if v := os.Getenv("GRANOLAEXPORT_TRANSCRIPTS_DIR"); v != "" {
		cfg.TranscriptsDir = expandTilde(v)
	}
	if v := os.Getenv("GRANOLAEXPORT_MEETINGS_DIR"); v != "" {
		cfg.MeetingsDir = expandTilde(v)
	}
	if v := os.Getenv("GRANOLAEXPORT_MARKDOWN_DIR"); v != "" {
		cfg.MarkdownDir = expandTilde(v)
	}
}

// FilePath returns the location of the config file, honoring XDG conventions.
func FilePath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "granolaexport", "config.toml")
}

func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
