// Package sui is a small JSON-RPC client for the Sui fullnode API.
package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/verakita/verakita-api/internal/metrics"
)

// MistPerSUI is the number of MIST in one SUI.
const MistPerSUI = 1_000_000_000

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("sui rpc error %d: %s", e.Code, e.Message)
}

// Balance is the total balance of one coin type for an owner.
type Balance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// ObjectRef identifies an on-chain object.
type ObjectRef struct {
	ObjectID string `json:"objectId"`
	Version  string `json:"version"`
	Digest   string `json:"digest"`
	Type     string `json:"type,omitempty"`
}

// ObjectResponse wraps one object of a listing. Data is nil for deleted or missing objects.
type ObjectResponse struct {
	Data *ObjectRef `json:"data,omitempty"`
}

// ObjectsPage is one page of owned objects.
type ObjectsPage struct {
	Data        []ObjectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

// DynamicField is one child entry of a parent object.
type DynamicField struct {
	Name struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"name"`
	ObjectID   string `json:"objectId"`
	ObjectType string `json:"objectType"`
}

// DynamicFieldsPage is one page of dynamic fields.
type DynamicFieldsPage struct {
	Data        []DynamicField `json:"data"`
	NextCursor  *string        `json:"nextCursor"`
	HasNextPage bool           `json:"hasNextPage"`
}

// Client calls a Sui fullnode.
type Client struct {
	rpcURL     string
	httpClient *http.Client
	log        *slog.Logger
	nextID     atomic.Int64
}

// NewClient creates a Client for rpcURL.
func NewClient(rpcURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		rpcURL:     rpcURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.With("adapter", "sui"),
	}
}

// LatestEpoch returns the current epoch number as reported by the node.
func (c *Client) LatestEpoch(ctx context.Context) (string, error) {
	var state struct {
		Epoch string `json:"epoch"`
	}
	if err := c.call(ctx, "suix_getLatestSuiSystemState", []any{}, &state); err != nil {
		return "", err
	}
	return state.Epoch, nil
}

// Balance returns the SUI balance of owner.
func (c *Client) Balance(ctx context.Context, owner string) (Balance, error) {
	var b Balance
	if err := c.call(ctx, "suix_getBalance", []any{owner}, &b); err != nil {
		return Balance{}, err
	}
	return b, nil
}

// OwnedObjects returns the first page of objects owned by owner.
func (c *Client) OwnedObjects(ctx context.Context, owner string) (ObjectsPage, error) {
	var page ObjectsPage
	if err := c.call(ctx, "suix_getOwnedObjects", []any{owner}, &page); err != nil {
		return ObjectsPage{}, err
	}
	return page, nil
}

// ObjectExists reports whether the node returns data for id.
func (c *Client) ObjectExists(ctx context.Context, id string) (bool, error) {
	var out struct {
		Data  json.RawMessage `json:"data"`
		Error json.RawMessage `json:"error"`
	}
	opts := map[string]bool{"showContent": true, "showOwner": true}
	if err := c.call(ctx, "sui_getObject", []any{id, opts}, &out); err != nil {
		return false, err
	}
	return len(out.Data) > 0 && string(out.Data) != "null", nil
}

// DynamicFields returns the first page of dynamic fields under parentID.
func (c *Client) DynamicFields(ctx context.Context, parentID string) (DynamicFieldsPage, error) {
	var page DynamicFieldsPage
	if err := c.call(ctx, "suix_getDynamicFields", []any{parentID}, &page); err != nil {
		return DynamicFieldsPage{}, err
	}
	return page, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) (err error) {
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.IncSuiRPC(method, result)
	}()

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("sui: marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sui: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "sui rpc failed", slog.String("method", method), slog.String("error", err.Error()))
		return fmt.Errorf("sui: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("sui: %s: unexpected status %s", method, resp.Status)
	}

	var rr rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return fmt.Errorf("sui: decode %s: %w", method, err)
	}
	if rr.Error != nil {
		return fmt.Errorf("sui: %s: %w", method, rr.Error)
	}
	if out != nil {
		if err := json.Unmarshal(rr.Result, out); err != nil {
			return fmt.Errorf("sui: decode %s result: %w", method, err)
		}
	}
	return nil
}

// FormatSUI converts a MIST amount (decimal string) into SUI with four decimals.
func FormatSUI(mist string) (string, error) {
	n, ok := new(big.Rat).SetString(mist)
	if !ok {
		return "", fmt.Errorf("sui: invalid balance %q", mist)
	}
	n.Quo(n, new(big.Rat).SetInt64(MistPerSUI))
	return n.FloatString(4), nil
}

// ReviewMoveTarget is the Move function a client calls to record a review.
func ReviewMoveTarget(packageID string) string {
	return packageID + "::review::create_review"
}
