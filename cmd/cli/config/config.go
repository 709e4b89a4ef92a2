package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	defaultTokenTTL = 24 * time.Hour
	tokenFileName = ".verakita_token"
)

// APIURL returns the base URL for the Verakita API.
// It can be overridden with the VERAKITA_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("VERAKITA_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenTTL is the default lifetime of tokens minted by the CLI. It can be
// overridden with JWT_EXPIRE_HOURS; invalid or non-positive values use 24h.
func TokenTTL() time.Duration {
	if h, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS")); err == nil && h > 0 {
		return time.Duration(h) * time.Hour
	}
	return defaultTokenTTL
}

// SaveToken stores an admin token for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0o600)
}

// LoadToken returns VERAKITA_TOKEN when set, else the saved token.
func LoadToken() (string, error) {
	if v := os.Getenv("VERAKITA_TOKEN"); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func tokenPath() string {
	if v := os.Getenv("VERAKITA_TOKEN_FILE"); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
