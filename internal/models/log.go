package models

import "time"

// Log levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// LogLevels lists the levels in display order.
var LogLevels = []string{LevelInfo, LevelWarning, LevelError}

// LogEntry is one system log line shown in the admin panel.
type LogEntry struct {
	ID        int            `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
