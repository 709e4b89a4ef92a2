// Package walrus talks to a Walrus publisher (writes) and aggregator (reads) over HTTP.
package walrus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/verakita/verakita-api/internal/metrics"
)

// DefaultEpochs is the storage duration used when the caller does not pick one.
const DefaultEpochs = 5

// ErrUnexpectedResponse is returned when the publisher answers with neither known shape.
var ErrUnexpectedResponse = errors.New("walrus: unexpected response format")

// UploadResult describes a stored blob.
type UploadResult struct {
	BlobID   string `json:"blobId"`
	EndEpoch int64  `json:"endEpoch"`
	Cost     int64  `json:"cost"`
}

// Blob is an open aggregator response. Callers must Close it.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Close releases the underlying response body.
func (b *Blob) Close() error {
	return b.Body.Close()
}

// Client uploads to and fetches from Walrus.
type Client struct {
	publisherURL  string
	aggregatorURL string
	httpClient    *http.Client
	log           *slog.Logger
}

// NewClient creates a Client. Trailing slashes on the URLs are ignored.
func NewClient(publisherURL, aggregatorURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		publisherURL:  strings.TrimRight(publisherURL, "/"),
		aggregatorURL: strings.TrimRight(aggregatorURL, "/"),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		log:           logger.With("adapter", "walrus"),
	}
}

// URL returns the aggregator URL serving blobID.
func (c *Client) URL(blobID string) string {
	return c.aggregatorURL + "/v1/" + url.PathEscape(blobID)
}

// Upload stores body for the given number of epochs. Non-positive epochs mean DefaultEpochs.
func (c *Client) Upload(ctx context.Context, body io.Reader, epochs int) (_ UploadResult, err error) {
	defer func() { metrics.IncWalrus("upload", result(err)) }()
	if epochs <= 0 {
		epochs = DefaultEpochs
	}
	reqURL := c.publisherURL + "/v1/store?epochs=" + strconv.Itoa(epochs)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("walrus: create upload request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "walrus upload failed", slog.String("error", err.Error()))
		return UploadResult{}, fmt.Errorf("walrus: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.log.ErrorContext(ctx, "walrus upload rejected", slog.Int("status", resp.StatusCode))
		return UploadResult{}, fmt.Errorf("walrus: upload failed: %s", resp.Status)
	}

	var out storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UploadResult{}, fmt.Errorf("walrus: decode upload response: %w", err)
	}
	res, err := out.result()
	if err != nil {
		return UploadResult{}, err
	}

	c.log.DebugContext(ctx, "walrus blob stored",
		slog.String("blob_id", res.BlobID),
		slog.Int64("end_epoch", res.EndEpoch),
		slog.Int64("cost", res.Cost))
	return res, nil
}

// UploadJSON marshals v and uploads it.
func (c *Client) UploadJSON(ctx context.Context, v any, epochs int) (UploadResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return UploadResult{}, fmt.Errorf("walrus: marshal: %w", err)
	}
	return c.Upload(ctx, bytes.NewReader(b), epochs)
}

// Fetch opens the blob stored under blobID.
func (c *Client) Fetch(ctx context.Context, blobID string) (_ *Blob, err error) {
	defer func() { metrics.IncWalrus("fetch", result(err)) }()
	if blobID == "" {
		return nil, errors.New("walrus: blob id is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(blobID), nil)
	if err != nil {
		return nil, fmt.Errorf("walrus: create fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "walrus fetch failed", slog.String("blob_id", blobID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("walrus: fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("walrus: fetch failed: %s", resp.Status)
	}

	return &Blob{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

// FetchJSON fetches blobID and decodes it into v.
func (c *Client) FetchJSON(ctx context.Context, blobID string, v any) error {
	blob, err := c.Fetch(ctx, blobID)
	if err != nil {
		return err
	}
	defer blob.Close()
	if err := json.NewDecoder(blob.Body).Decode(v); err != nil {
		return fmt.Errorf("walrus: decode blob %s: %w", blobID, err)
	}
	return nil
}

// Ping checks that the aggregator answers HTTP at all. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.aggregatorURL, nil)
	if err != nil {
		return fmt.Errorf("walrus: create ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("walrus: ping: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("walrus: aggregator unhealthy: %s", resp.Status)
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type storeResponse struct {
	AlreadyCertified *struct {
		BlobID   string `json:"blobId"`
		EndEpoch int64  `json:"endEpoch"`
	} `json:"alreadyCertified"`
	NewlyCreated *struct {
		BlobObject struct {
			BlobID  string `json:"blobId"`
			Storage struct {
				EndEpoch int64 `json:"endEpoch"`
			} `json:"storage"`
		} `json:"blobObject"`
		Cost int64 `json:"cost"`
	} `json:"newlyCreated"`
}

func (s storeResponse) result() (UploadResult, error) {
	switch {
	case s.AlreadyCertified != nil:
		return UploadResult{
			BlobID:   s.AlreadyCertified.BlobID,
			EndEpoch: s.AlreadyCertified.EndEpoch,
		}, nil
	case s.NewlyCreated != nil:
		return UploadResult{
			BlobID:   s.NewlyCreated.BlobObject.BlobID,
			EndEpoch: s.NewlyCreated.BlobObject.Storage.EndEpoch,
			Cost:     s.NewlyCreated.Cost,
		}, nil
	default:
		return UploadResult{}, ErrUnexpectedResponse
	}
}
