package models

import "time"

// Health card statuses.
const (
	HealthSuccess = "success"
	HealthWarning = "warning"
	HealthError   = "error"
	HealthUnknown = "unknown"
)

// HealthCard is one tile of the admin system health row.
type HealthCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// HealthSnapshot is the result of the latest network probe.
type HealthSnapshot struct {
	CheckedAt     time.Time     `json:"checkedAt"`
	SuiEpoch      string        `json:"suiEpoch,omitempty"`
	SuiError      string        `json:"suiError,omitempty"`
	WalrusOnline  bool          `json:"walrusOnline"`
	WalrusError   string        `json:"walrusError,omitempty"`
	ProbeDuration time.Duration `json:"probeDurationNs"`
}
