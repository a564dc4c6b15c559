package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

const (
	// appDir is the directory name the Granola desktop app uses under the
	// platform's application support location.
	appDir = "Granola"

	// credentialsFile is the session cache the desktop app writes after login.
	credentialsFile = "supabase.json"
)

// AuthError indicates that credentials could not be obtained from the desktop
// app's cache. It is always fatal; the tool has no login flow of its own.
type AuthError struct {
	Path string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("credentials (%s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("credentials: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Credential is the bearer credential harvested from the desktop app's cache.
type Credential struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Token converts the credential to an OAuth2 token.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// TokenSource returns a static token source for the credential. The token is
// never refreshed here; the desktop app owns the refresh cycle and rewrites
// the cache file on its own schedule.
func (c *Credential) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(c.Token())
}

// Expired reports whether the credential carries an expiry in the past.
// Credentials without expiry information are assumed valid.
func (c *Credential) Expired() bool {
	return !c.Expiry.IsZero() && time.Now().After(c.Expiry)
}

// supabaseFile mirrors the on-disk layout written by the desktop app. The
// cognito_tokens value is itself a JSON document encoded as a string.
type supabaseFile struct {
	CognitoTokens string `json:"cognito_tokens"`
}

type cognitoTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// LoadCredentials reads the desktop app's session cache at path and returns
// the bearer credential it contains. Any failure (missing file, malformed
// JSON, absent access token) is reported as an *AuthError.
func LoadCredentials(path string) (*Credential, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &AuthError{Path: path, Err: fmt.Errorf("cannot read credentials file: %w", err)}
	}

	var file supabaseFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &AuthError{Path: path, Err: fmt.Errorf("malformed credentials file: %w", err)}
	}
	if file.CognitoTokens == "" {
		return nil, &AuthError{Path: path, Err: errors.New("no cognito_tokens entry in credentials file")}
	}

	// Second decoding pass for the string-encoded token document.
	var tokens cognitoTokens
	if err := json.Unmarshal([]byte(file.CognitoTokens), &tokens); err != nil {
		return nil, &AuthError{Path: path, Err: fmt.Errorf("malformed cognito_tokens payload: %w", err)}
	}
	if tokens.AccessToken == "" {
		return nil, &AuthError{Path: path, Err: errors.New("no access token in credentials file")}
	}

	cred := &Credential{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if tokens.ExpiresAt > 0 {
		cred.Expiry = time.Unix(tokens.ExpiresAt, 0)
	}
	return cred, nil
}

// DefaultCredentialsPath returns the platform-specific location of the
// desktop app's session cache.
func DefaultCredentialsPath() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Application Support", appDir, credentialsFile)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDir, credentialsFile)
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, credentialsFile)
	}
	return filepath.Join(homeDir(), ".config", appDir, credentialsFile)
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
