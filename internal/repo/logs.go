package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/verakita/verakita-api/internal/models"
)

// MaxLogEntries bounds how many entries List returns and how many the
// in-memory store keeps.
const MaxLogEntries = 500

// LogRepo persists system log entries in PostgreSQL.
type LogRepo struct {
	DB *sql.DB
}

// NewLogRepo returns a new LogRepo.
func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{DB: db}
}

// List returns entries newest first. An empty level or "all" returns every level.
func (r *LogRepo) List(ctx context.Context, level string) ([]models.LogEntry, error) {
	query := `SELECT id, created_at, level, service, message, COALESCE(details, '{}') FROM system_logs`
	args := []any{}
	if level != "" && level != "all" {
		query += ` WHERE level = $1`
		args = append(args, level)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT %d`, MaxLogEntries)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repo: list logs: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var (
			e       models.LogEntry
			details []byte
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Level, &e.Service, &e.Message, &details); err != nil {
			return nil, fmt.Errorf("repo: scan log: %w", err)
		}
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return nil, fmt.Errorf("repo: decode log details: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts returns the number of entries per level.
func (r *LogRepo) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT level, COUNT(*) FROM system_logs GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("repo: count logs: %w", err)
	}
	defer rows.Close()

	counts := zeroCounts()
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("repo: scan log count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

// Append stores e and returns it with its assigned id and timestamp.
func (r *LogRepo) Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("repo: encode log details: %w", err)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	err = r.DB.QueryRowContext(ctx,
		`INSERT INTO system_logs (created_at, level, service, message, details) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.Timestamp, e.Level, e.Service, e.Message, details,
	).Scan(&e.ID)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("repo: insert log: %w", err)
	}
	return e, nil
}

// MemoryLogRepo keeps log entries in process memory. Once it holds
// MaxEntries entries, each Append evicts the oldest one.
type MemoryLogRepo struct {
	MaxEntries int

	mu      sync.RWMutex
	entries []models.LogEntry
	nextID  int
}

// NewMemoryLogRepo returns a store holding seed.
func NewMemoryLogRepo(seed []models.LogEntry) *MemoryLogRepo {
	r := &MemoryLogRepo{MaxEntries: MaxLogEntries, entries: slices.Clone(seed)}
	for _, e := range seed {
		r.nextID = max(r.nextID, e.ID)
	}
	return r
}

// List returns entries newest first. An empty level or "all" returns every level.
func (r *MemoryLogRepo) List(_ context.Context, level string) ([]models.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.LogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if level == "" || level == "all" || e.Level == level {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.LogEntry) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	return out, nil
}

// Counts returns the number of entries per level.
func (r *MemoryLogRepo) Counts(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := zeroCounts()
	for _, e := range r.entries {
		counts[e.Level]++
	}
	return counts, nil
}

// Append stores e and returns it with its assigned id and timestamp.
func (r *MemoryLogRepo) Append(_ context.Context, e models.LogEntry) (models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e.ID = r.nextID
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	r.entries = append(r.entries, e)
	if r.MaxEntries > 0 {
		for len(r.entries) > r.MaxEntries {
			i := r.oldest()
			r.entries = slices.Delete(r.entries, i, i+1)
		}
	}
	return e, nil
}

// oldest returns the index of the entry with the earliest timestamp, lowest id on ties.
func (r *MemoryLogRepo) oldest() int {
	idx := 0
	for i, e := range r.entries {
		o := r.entries[idx]
		if c := e.Timestamp.Compare(o.Timestamp); c < 0 || (c == 0 && e.ID < o.ID) {
			idx = i
		}
	}
	return idx
}

func zeroCounts() map[string]int {
	counts := make(map[string]int, len(models.LogLevels))
	for _, l := range models.LogLevels {
		counts[l] = 0
	}
	return counts
}
