package models

import "time"

// API key statuses.
const (
	KeyStatusActive   = "active"
	KeyStatusInactive = "inactive"
	KeyStatusRevoked  = "revoked"
)

// Permissions an API key can carry.
const (
	PermissionRead  = "read"
	PermissionWrite = "write"
)

// APIKey is a stored key. The secret itself is never kept; only its bcrypt hash.
type APIKey struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	MaskedKey   string    `json:"key"`
	KeyHash     string    `json:"-"`
	Permissions []string  `json:"permissions"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created"`
	LastUsed    string    `json:"lastUsed,omitempty"`
}

// NewAPIKey is returned once, at creation time, with the plaintext secret.
type NewAPIKey struct {
	APIKey
	Secret string `json:"secret"`
}
