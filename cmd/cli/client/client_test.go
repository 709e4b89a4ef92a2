package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCall_UnwrapsEnvelope(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(RequestIDHeader))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "0x1"},
			"message": "ok",
		})
	}))
	defer srv.Close()
	t.Setenv("VERAKITA_API_URL", srv.URL)

	var out struct {
		ID string `json:"id"`
	}
	msg, err := Call(http.MethodGet, "/api/reviews/0x1", "", nil, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "0x1" || msg != "ok" {
		t.Fatalf("unexpected result: %+v %q", out, msg)
	}
	if _, err := Call(http.MethodGet, "/api/reviews/0x1", "", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct request ids, got %v", ids)
	}
	if _, err := uuid.Parse(ids[0]); err != nil {
		t.Fatalf("request id is not a UUID: %q", ids[0])
	}
}

func TestCall_FailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "nope"})
	}))
	defer srv.Close()
	t.Setenv("VERAKITA_API_URL", srv.URL)

	_, err := Call(http.MethodDelete, "/api/reviews/0x1", "", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden || apiErr.Message != "nope" {
		t.Fatalf("expected APIError 403, got %v", err)
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			t.Errorf("missing request id")
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("blob"))
	}))
	defer srv.Close()
	t.Setenv("VERAKITA_API_URL", srv.URL)

	var sb strings.Builder
	ct, err := Download("/api/walrus/b", &sb)
	if err != nil || ct != "text/plain" || sb.String() != "blob" {
		t.Fatalf("Download = %q, %q, %v", ct, sb.String(), err)
	}
}
