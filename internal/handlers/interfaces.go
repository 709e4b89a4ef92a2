package handlers

import (
	"context"
	"io"

	"github.com/verakita/verakita-api/internal/models"
	"github.com/verakita/verakita-api/internal/sui"
	"github.com/verakita/verakita-api/internal/walrus"
)

// LogStore is the admin system log store.
type LogStore interface {
	List(ctx context.Context, level string) ([]models.LogEntry, error)
	Counts(ctx context.Context) (map[string]int, error)
	Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error)
}

// APIKeyStore is the admin API key store.
type APIKeyStore interface {
	List(ctx context.Context) ([]models.APIKey, error)
	Create(ctx context.Context, k models.APIKey) (models.APIKey, error)
	Revoke(ctx context.Context, id int) (models.APIKey, error)
}

// BlobGateway uploads to and reads from Walrus.
type BlobGateway interface {
	Upload(ctx context.Context, body io.Reader, epochs int) (walrus.UploadResult, error)
	Fetch(ctx context.Context, blobID string) (*walrus.Blob, error)
}

// ChainReader is the read-only part of the Sui RPC client used by the routes.
type ChainReader interface {
	LatestEpoch(ctx context.Context) (string, error)
	Balance(ctx context.Context, owner string) (sui.Balance, error)
	OwnedObjects(ctx context.Context, owner string) (sui.ObjectsPage, error)
}

// HealthSource returns the latest network probe result.
type HealthSource interface {
	Snapshot() models.HealthSnapshot
}
