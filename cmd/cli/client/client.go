// Package client calls the Verakita API and unwraps its response envelope.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/verakita/verakita-api/cmd/cli/config"
)

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// RequestIDHeader carries a per-call id the API echoes into its request log.
const RequestIDHeader = "X-Request-Id"

// APIError is a failure envelope returned by the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Call sends a JSON request (body may be nil) and decodes the envelope's data into out.
// It returns the envelope message, if any.
func Call(method, path, token string, body, out any) (string, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		rd = bytes.NewReader(b)
	}
	return Send(method, path, token, "application/json", rd, out)
}

// Send is Call with a raw body and content type. Every request carries a fresh
// X-Request-Id so CLI calls can be found in the server log.
func Send(method, path, token, contentType string, body io.Reader, out any) (string, error) {
	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("failed to decode response (%d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		return "", &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return env.Message, nil
}

// Download streams GET path to w without envelope handling, as blobs are served raw.
func Download(path string, w io.Writer) (string, error) {
	req, err := http.NewRequest(http.MethodGet, config.APIURL()+path, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env envelope
		json.NewDecoder(resp.Body).Decode(&env)
		return "", &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	return resp.Header.Get("Content-Type"), nil
}
