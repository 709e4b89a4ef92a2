package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/verakita/verakita-api/internal/middleware"
	"github.com/verakita/verakita-api/internal/models"
)

func TestProfileHandler_Get(t *testing.T) {
	h := &ProfileHandler{}

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest("GET", "/api/user/profile", nil))
	var p models.Profile
	decodeEnvelope(t, rr, &p)
	want := models.Profile{Address: "0x...", Name: "John Doe", Email: "john@example.com"}
	if rr.Code != http.StatusOK || p != want {
		t.Errorf("Get: got %d %+v, want %+v", rr.Code, p, want)
	}

	secret := []byte("test-secret")
	tok, err := middleware.IssueToken(secret, "0xwallet", "user", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	middleware.OptionalAuth(secret)(http.HandlerFunc(h.Get)).ServeHTTP(rr, req)
	decodeEnvelope(t, rr, &p)
	if p.Address != "0xwallet" {
		t.Errorf("authenticated address: got %q, want 0xwallet", p.Address)
	}
}

func TestProfileHandler_Update(t *testing.T) {
	h := &ProfileHandler{}

	rr := httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest("PATCH", "/api/user/profile", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`)))
	var got map[string]string
	decodeEnvelope(t, rr, &got)
	if rr.Code != http.StatusOK || got["name"] != "Ada" || got["email"] != "ada@example.com" {
		t.Errorf("Update: got %d %v", rr.Code, got)
	}

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest("PATCH", "/api/user/profile", strings.NewReader(`{"name":"Ada"}`)))
	got = nil
	decodeEnvelope(t, rr, &got)
	if _, ok := got["email"]; ok || got["name"] != "Ada" {
		t.Errorf("absent email should stay absent: %v", got)
	}

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest("PATCH", "/api/user/profile", strings.NewReader(`{"email":"not-an-email"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid email status: got %d, want 400", rr.Code)
	}
	if env := decodeEnvelope(t, rr, nil); env.Error != "Invalid email address" {
		t.Errorf("error: got %q", env.Error)
	}

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest("PATCH", "/api/user/profile", strings.NewReader(`nope`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body status: got %d, want 400", rr.Code)
	}
}
