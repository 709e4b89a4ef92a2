package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/verakita/verakita-api/internal/models"
)

// APIKeyRepo persists API keys in PostgreSQL.
type APIKeyRepo struct {
	DB *sql.DB
}

// NewAPIKeyRepo returns a new APIKeyRepo.
func NewAPIKeyRepo(db *sql.DB) *APIKeyRepo {
	return &APIKeyRepo{DB: db}
}

// List returns every key ordered by id.
func (r *APIKeyRepo) List(ctx context.Context) ([]models.APIKey, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, masked_key, permissions, status, created_at, COALESCE(last_used, '') FROM api_keys ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repo: list api keys: %w", err)
	}
	defer rows.Close()

	keys := []models.APIKey{}
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.Name, &k.MaskedKey, pq.Array(&k.Permissions), &k.Status, &k.CreatedAt, &k.LastUsed); err != nil {
			return nil, fmt.Errorf("repo: scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Create stores k and returns it with id and creation time set.
func (r *APIKeyRepo) Create(ctx context.Context, k models.APIKey) (models.APIKey, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO api_keys (name, masked_key, key_hash, permissions, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		k.Name, k.MaskedKey, k.KeyHash, pq.Array(k.Permissions), k.Status,
	).Scan(&k.ID, &k.CreatedAt)
	if err != nil {
		return models.APIKey{}, fmt.Errorf("repo: insert api key: %w", err)
	}
	return k, nil
}

// Revoke marks key id as revoked. Returns models.ErrNotFound for unknown ids.
func (r *APIKeyRepo) Revoke(ctx context.Context, id int) (models.APIKey, error) {
	var k models.APIKey
	err := r.DB.QueryRowContext(ctx,
		`UPDATE api_keys SET status = $1 WHERE id = $2 RETURNING id, name, masked_key, permissions, status, created_at, COALESCE(last_used, '')`,
		models.KeyStatusRevoked, id,
	).Scan(&k.ID, &k.Name, &k.MaskedKey, pq.Array(&k.Permissions), &k.Status, &k.CreatedAt, &k.LastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.APIKey{}, models.ErrNotFound
	}
	if err != nil {
		return models.APIKey{}, fmt.Errorf("repo: revoke api key: %w", err)
	}
	return k, nil
}

// MemoryAPIKeyRepo keeps API keys in process memory.
type MemoryAPIKeyRepo struct {
	mu     sync.RWMutex
	keys   []models.APIKey
	nextID int
	now    func() time.Time
}

// NewMemoryAPIKeyRepo returns a store holding seed.
func NewMemoryAPIKeyRepo(seed []models.APIKey) *MemoryAPIKeyRepo {
	r := &MemoryAPIKeyRepo{now: func() time.Time { return time.Now().UTC() }}
	for _, k := range seed {
		k.Permissions = slices.Clone(k.Permissions)
		r.keys = append(r.keys, k)
		r.nextID = max(r.nextID, k.ID)
	}
	return r
}

// List returns every key ordered by id.
func (r *MemoryAPIKeyRepo) List(_ context.Context) ([]models.APIKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.APIKey, 0, len(r.keys))
	for _, k := range r.keys {
		k.Permissions = slices.Clone(k.Permissions)
		out = append(out, k)
	}
	return out, nil
}

// Create stores k and returns it with id and creation time set.
func (r *MemoryAPIKeyRepo) Create(_ context.Context, k models.APIKey) (models.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	k.ID = r.nextID
	k.CreatedAt = r.now()
	k.Permissions = slices.Clone(k.Permissions)
	r.keys = append(r.keys, k)
	return k, nil
}

// Revoke marks key id as revoked. Returns models.ErrNotFound for unknown ids.
func (r *MemoryAPIKeyRepo) Revoke(_ context.Context, id int) (models.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.keys {
		if r.keys[i].ID == id {
			r.keys[i].Status = models.KeyStatusRevoked
			k := r.keys[i]
			k.Permissions = slices.Clone(k.Permissions)
			return k, nil
		}
	}
	return models.APIKey{}, models.ErrNotFound
}
