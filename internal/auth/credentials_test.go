package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeCredentialsFile builds a session cache file the way the desktop app
// does: the token document is JSON encoded into a string field.
func writeCredentialsFile(t *testing.T, tokens map[string]any) string {
	t.Helper()

	inner, err := json.Marshal(tokens)
	if err != nil {
		t.Fatal(err)
	}
	outer, err := json.Marshal(map[string]string{"cognito_tokens": string(inner)})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "supabase.json")
	if err := os.WriteFile(path, outer, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCredentials(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Unix()
	path := writeCredentialsFile(t, map[string]any{
		"access_token":  "access-abc",
		"refresh_token": "refresh-xyz",
		"expires_at":    expiry,
	})

	cred, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}

	if cred.AccessToken != "access-abc" {
		t.Errorf("AccessToken = %q, want %q", cred.AccessToken, "access-abc")
	}
	if cred.RefreshToken != "refresh-xyz" {
		t.Errorf("RefreshToken = %q, want %q", cred.RefreshToken, "refresh-xyz")
	}
	if cred.Expiry.Unix() != expiry {
		t.Errorf("Expiry = %v, want unix %d", cred.Expiry, expiry)
	}
	if cred.Expired() {
		t.Error("Expired() = true for a credential expiring in an hour")
	}
}

func TestLoadCredentialsWithoutOptionalFields(t *testing.T) {
	path := writeCredentialsFile(t, map[string]any{
		"access_token": "access-only",
	})

	cred, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if cred.RefreshToken != "" {
		t.Errorf("RefreshToken = %q, want empty", cred.RefreshToken)
	}
	if !cred.Expiry.IsZero() {
		t.Errorf("Expiry = %v, want zero", cred.Expiry)
	}
	if cred.Expired() {
		t.Error("Expired() = true for a credential without expiry")
	}
}

func TestLoadCredentialsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed outer json", `{not json`},
		{"missing cognito_tokens", `{"workos_tokens": "{}"}`},
		{"malformed inner payload", `{"cognito_tokens": "not json"}`},
		{"missing access token", `{"cognito_tokens": "{\"refresh_token\": \"r\"}"}`},
		{"empty access token", `{"cognito_tokens": "{\"access_token\": \"\"}"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "supabase.json")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadCredentials(path)
			if err == nil {
				t.Fatal("LoadCredentials() expected error, got nil")
			}

			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Errorf("error = %v, want *AuthError", err)
			}
			if authErr.Path != path {
				t.Errorf("AuthError.Path = %q, want %q", authErr.Path, path)
			}
		})
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	_, err := LoadCredentials(path)
	if err == nil {
		t.Fatal("LoadCredentials() expected error, got nil")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestCredentialToken(t *testing.T) {
	cred := &Credential{
		AccessToken:  "a",
		RefreshToken: "r",
		Expiry:       time.Unix(1700000000, 0),
	}

	tok := cred.Token()
	if tok.AccessToken != "a" {
		t.Errorf("AccessToken = %q, want %q", tok.AccessToken, "a")
	}
	if tok.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want %q", tok.TokenType, "Bearer")
	}
	if tok.RefreshToken != "r" {
		t.Errorf("RefreshToken = %q, want %q", tok.RefreshToken, "r")
	}
}

func TestCredentialTokenSource(t *testing.T) {
	cred := &Credential{AccessToken: "a"}

	tok, err := cred.TokenSource().Token()
	if err != nil {
		t.Fatalf("TokenSource().Token() error = %v", err)
	}
	if tok.AccessToken != "a" {
		t.Errorf("AccessToken = %q, want %q", tok.AccessToken, "a")
	}
}

func TestCredentialExpired(t *testing.T) {
	past := &Credential{AccessToken: "a", Expiry: time.Now().Add(-time.Minute)}
	if !past.Expired() {
		t.Error("Expired() = false for a credential that expired a minute ago")
	}

	future := &Credential{AccessToken: "a", Expiry: time.Now().Add(time.Minute)}
	if future.Expired() {
		t.Error("Expired() = true for a credential expiring in a minute")
	}
}

func TestAuthErrorMessage(t *testing.T) {
	err := &AuthError{Path: "/tmp/supabase.json", Err: errors.New("boom")}
	msg := err.Error()
	if !strings.Contains(msg, "/tmp/supabase.json") {
		t.Errorf("Error() = %q, should mention the path", msg)
	}
	if !strings.Contains(msg, "boom") {
		t.Errorf("Error() = %q, should mention the cause", msg)
	}
}

func TestDefaultCredentialsPath(t *testing.T) {
	path := DefaultCredentialsPath()
	if path == "" {
		t.Fatal("DefaultCredentialsPath() returned empty path")
	}
	if filepath.Base(path) != "supabase.json" {
		t.Errorf("DefaultCredentialsPath() = %q, want base supabase.json", path)
	}
	if !strings.Contains(path, "Granola") {
		t.Errorf("DefaultCredentialsPath() = %q, should contain the app directory", path)
	}
}
