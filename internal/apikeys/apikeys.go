// Package apikeys generates, masks and hashes API key secrets.
package apikeys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/verakita/verakita-api/internal/models"
)

// Prefix starts every secret.
const Prefix = "vk_"

// Environments a key can be issued for.
var Environments = []string{"prod", "dev", "test"}

const maskBullets = "••••••••••••"

// secretBytes is the random part of a secret: 128 bits, 32 hex chars.
const secretBytes = 16

// Generate returns a new secret of the form vk_<env>_<32 hex chars>.
func Generate(env string) (string, error) {
	if !slices.Contains(Environments, env) {
		return "", fmt.Errorf("apikeys: unknown environment %q: %w", env, models.ErrInvalidInput)
	}
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("apikeys: random: %w", err)
	}
	return Prefix + env + "_" + hex.EncodeToString(b), nil
}

// Mask keeps the vk_<env>_ prefix and the last four characters of secret.
func Mask(secret string) string {
	prefixEnd := strings.LastIndex(secret, "_") + 1
	if prefixEnd <= 0 || len(secret)-prefixEnd < 4 {
		return maskBullets
	}
	return secret[:prefixEnd] + maskBullets + secret[len(secret)-4:]
}

// Hash returns the bcrypt hash stored in place of secret.
func Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("apikeys: hash: %w", err)
	}
	return string(h), nil
}

// Matches reports whether secret hashes to hash.
func Matches(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// ValidPermissions reports whether every permission is read or write, without duplicates.
func ValidPermissions(perms []string) bool {
	if len(perms) == 0 {
		return false
	}
	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		if p != models.PermissionRead && p != models.PermissionWrite {
			return false
		}
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// Issue creates a key record and the one-time secret for it.
func Issue(name, env string, perms []string) (models.NewAPIKey, error) {
	secret, err := Generate(env)
	if err != nil {
		return models.NewAPIKey{}, err
	}
	hash, err := Hash(secret)
	if err != nil {
		return models.NewAPIKey{}, err
	}
	return models.NewAPIKey{
		APIKey: models.APIKey{
			Name:        name,
			MaskedKey:   Mask(secret),
			KeyHash:     hash,
			Permissions: slices.Clone(perms),
			Status:      models.KeyStatusActive,
		},
		Secret: secret,
	}, nil
}
