// Package reviews holds review submission, verification and statistics.
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/verakita/verakita-api/internal/models"
	"github.com/verakita/verakita-api/internal/sui"
	"github.com/verakita/verakita-api/internal/walrus"
)

// Placeholder identifiers returned until on-chain submission is wired client-side.
const (
	PlaceholderReviewID = "placeholder-id"
	PlaceholderTxHash   = "placeholder-tx"
	PlaceholderBlobID   = "placeholder-blob"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrRatingRange   = errors.New("rating must be between 1 and 5")
)

// Submission is the body of a review creation request.
type Submission struct {
	Target        string  `json:"target" validate:"required"`
	Rating        float64 `json:"rating" validate:"required"`
	Content       string  `json:"content" validate:"required"`
	WalletAddress string  `json:"walletAddress" validate:"required"`
	Signature     string  `json:"signature"`
}

var validate = validator.New()

// Validate returns ErrMissingFields or ErrRatingRange. A zero rating counts as missing.
func (s Submission) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrMissingFields
		}
		return fmt.Errorf("reviews: validate: %w", err)
	}
	if s.Rating < models.MinRating || s.Rating > models.MaxRating || s.Rating != math.Trunc(s.Rating) {
		return ErrRatingRange
	}
	return nil
}

// BlobStore persists review documents.
type BlobStore interface {
	UploadJSON(ctx context.Context, v any, epochs int) (walrus.UploadResult, error)
}

// ObjectChecker confirms that an on-chain object exists.
type ObjectChecker interface {
	ObjectExists(ctx context.Context, id string) (bool, error)
}

// RegistryReader lists the entries of the on-chain review registry.
type RegistryReader interface {
	DynamicFields(ctx context.Context, parentID string) (sui.DynamicFieldsPage, error)
}

// Service implements the review flows. A nil Blobs, Chain or Registry disables
// that integration.
type Service struct {
	Blobs      BlobStore
	Chain      ObjectChecker
	Registry   RegistryReader
	RegistryID string
	Log        *slog.Logger
	Now        func() time.Time
}

// Submit validates s and, when a blob store is configured, uploads the review
// document to it. Transaction construction happens client-side, so the review id
// and transaction hash stay placeholders.
func (svc *Service) Submit(ctx context.Context, s Submission) (models.ReviewReceipt, error) {
	if err := s.Validate(); err != nil {
		return models.ReviewReceipt{}, err
	}

	receipt := models.ReviewReceipt{
		ReviewID:        PlaceholderReviewID,
		TransactionHash: PlaceholderTxHash,
		BlobID:          PlaceholderBlobID,
	}
	if svc.Blobs == nil {
		return receipt, nil
	}

	doc := models.ReviewDocument{
		Target:    s.Target,
		Rating:    int(s.Rating),
		Content:   s.Content,
		Author:    s.WalletAddress,
		CreatedAt: svc.now(),
	}
	res, err := svc.Blobs.UploadJSON(ctx, doc, walrus.DefaultEpochs)
	if err != nil {
		return models.ReviewReceipt{}, fmt.Errorf("reviews: store content: %w", err)
	}
	receipt.BlobID = res.BlobID
	svc.logger().InfoContext(ctx, "review content stored",
		slog.String("target", s.Target),
		slog.String("blob_id", res.BlobID))
	return receipt, nil
}

// ForTarget lists reviews recorded for target. When a registry is configured it
// is queried for target's entries; review objects are not decoded yet, so the
// list is always empty. Registry failures are logged and yield an empty list.
func (svc *Service) ForTarget(ctx context.Context, target string, limit int) ([]models.Review, error) {
	if svc.Registry == nil || svc.RegistryID == "" {
		return []models.Review{}, nil
	}

	page, err := svc.Registry.DynamicFields(ctx, svc.RegistryID)
	if err != nil {
		svc.logger().WarnContext(ctx, "review registry lookup failed",
			slog.String("registry", svc.RegistryID),
			slog.String("error", err.Error()))
		return []models.Review{}, nil
	}

	matched := 0
	for _, f := range page.Data {
		var name string
		if json.Unmarshal(f.Name.Value, &name) == nil && name == target {
			matched++
		}
	}
	svc.logger().DebugContext(ctx, "review registry queried",
		slog.String("target", target),
		slog.Int("entries", len(page.Data)),
		slog.Int("matched", matched))
	return []models.Review{}, nil
}

// StatsFor computes statistics over the reviews of target.
func (svc *Service) StatsFor(ctx context.Context, target string) (models.ReviewStats, error) {
	list, err := svc.ForTarget(ctx, target, 0)
	if err != nil {
		return models.ReviewStats{}, err
	}
	return Stats(list), nil
}

// Verify reports whether reviewID exists on-chain. Lookup failures count as unverified.
func (svc *Service) Verify(ctx context.Context, reviewID string) bool {
	if svc.Chain == nil {
		return false
	}
	ok, err := svc.Chain.ObjectExists(ctx, reviewID)
	if err != nil {
		svc.logger().WarnContext(ctx, "review verification failed",
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()))
		return false
	}
	return ok
}

// Stats summarises list. The distribution always carries keys 1 through 5.
func Stats(list []models.Review) models.ReviewStats {
	dist := make(map[int]int, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		dist[r] = 0
	}
	if len(list) == 0 {
		return models.ReviewStats{RatingDistribution: dist}
	}

	total := 0
	for _, r := range list {
		total += r.Rating
		dist[r.Rating]++
	}
	return models.ReviewStats{
		TotalReviews:       len(list),
		AverageRating:      float64(total) / float64(len(list)),
		RatingDistribution: dist,
	}
}

func (svc *Service) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now().UTC()
}

func (svc *Service) logger() *slog.Logger {
	if svc.Log != nil {
		return svc.Log
	}
	return slog.Default()
}
