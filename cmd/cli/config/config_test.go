package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAPIURL(t *testing.T) {
	t.Setenv("VERAKITA_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Fatalf("expected default URL, got %s", got)
	}

	t.Setenv("VERAKITA_API_URL", "https://api.verakita.com/")
	if got := APIURL(); got != "https://api.verakita.com" {
		t.Fatalf("expected trimmed URL, got %s", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("VERAKITA_TOKEN", "")
	t.Setenv("VERAKITA_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	if _, err := LoadToken(); err == nil {
		t.Fatal("expected error before a token is saved")
	}
	if err := SaveToken("abc\n"); err != nil {
		t.Fatal(err)
	}
	got, err := LoadToken()
	if err != nil || got != "abc" {
		t.Fatalf("LoadToken = %q, %v", got, err)
	}

	t.Setenv("VERAKITA_TOKEN", "env-token")
	if got, _ := LoadToken(); got != "env-token" {
		t.Fatalf("expected env override, got %q", got)
	}
}

func TestTokenTTL(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOURS", "")
	if got := TokenTTL(); got != 24*time.Hour {
		t.Fatalf("expected 24h default, got %s", got)
	}
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	if got := TokenTTL(); got != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", got)
	}
	t.Setenv("JWT_EXPIRE_HOURS", "-1")
	if got := TokenTTL(); got != 24*time.Hour {
		t.Fatalf("expected fallback for invalid value, got %s", got)
	}
}
