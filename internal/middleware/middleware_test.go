package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/verakita/verakita-api/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRequireAdmin(t *testing.T) {
	secret := []byte("test-secret")
	admin, err := IssueToken(secret, "0xadmin", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	user, _ := IssueToken(secret, "0xuser", "user", time.Hour)
	expired, _ := IssueToken(secret, "0xadmin", RoleAdmin, -time.Minute)
	foreign, _ := IssueToken([]byte("other"), "0xadmin", RoleAdmin, time.Hour)

	var gotSubject string
	h := RequireAdmin(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"admin token", "Bearer " + admin, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"user role", "Bearer " + user, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/logs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusUnauthorized {
				if env := decodeEnvelope(t, rr); env.Success || env.Error == "" {
					t.Errorf("unexpected envelope: %+v", env)
				}
			}
		})
	}
	if gotSubject != "0xadmin" {
		t.Errorf("subject: got %q, want 0xadmin", gotSubject)
	}
}

func TestOptionalAuth(t *testing.T) {
	secret := []byte("test-secret")
	tok, _ := IssueToken(secret, "0xwallet", "user", time.Hour)

	var subject string
	var found bool
	h := OptionalAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, found = Subject(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if found {
		t.Errorf("anonymous request should carry no subject")
	}

	req = httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if found {
		t.Errorf("invalid token should be ignored")
	}

	req = httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !found || subject != "0xwallet" {
		t.Errorf("subject: got %q (found=%v), want 0xwallet", subject, found)
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler)

	req := httptest.NewRequest("OPTIONS", "/api/reviews", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("missing allow-origin header")
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Errorf("PATCH should be allowed")
	}

	req = httptest.NewRequest("GET", "/api/reviews", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("unknown origin should not be allowed")
	}

	wildcard := CORS([]string{"*"})(okHandler)
	req = httptest.NewRequest("GET", "/api/reviews", nil)
	req.Header.Set("Origin", "http://anything.example")
	rr = httptest.NewRecorder()
	wildcard.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://anything.example" {
		t.Errorf("wildcard should allow any origin")
	}
}

func TestRateLimiter(t *testing.T) {
	h := NewIPRateLimiter(rate.Every(time.Hour), 2).Middleware(okHandler)

	for i, want := range []int{200, 200, 429} {
		req := httptest.NewRequest("POST", "/api/walrus/upload", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("request %d: got %d, want %d", i, rr.Code, want)
		}
		if want == http.StatusTooManyRequests {
			if env := decodeEnvelope(t, rr); env.Success {
				t.Errorf("429 body should be a failure envelope")
			}
		}
	}

	req := httptest.NewRequest("POST", "/api/walrus/upload", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("other IP should have its own bucket, got %d", rr.Code)
	}
}

func TestClientIP_IgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	req.Header.Set("X-Real-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "192.0.2.7" {
		t.Errorf("got %q, want the socket peer", got)
	}
}

func TestRealIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
	var seen string
	h := RealIP(trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	cases := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"untrusted peer keeps its address", "203.0.113.5:4000", "198.51.100.1", "", "203.0.113.5:4000"},
		{"trusted proxy forwards client", "10.0.0.2:4000", "198.51.100.1", "", "198.51.100.1"},
		{"spoofed left hops are skipped", "10.0.0.2:4000", "1.2.3.4, 198.51.100.1, 10.0.0.9", "", "198.51.100.1"},
		{"x-real-ip fallback", "10.0.0.2:4000", "", "198.51.100.7", "198.51.100.7"},
		{"no headers", "10.0.0.2:4000", "", "", "10.0.0.2:4000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if seen != tc.want {
				t.Errorf("got %q, want %q", seen, tc.want)
			}
		})
	}
}

func TestRateLimiter_RotatingForwardedForStillLimited(t *testing.T) {
	h := RealIP(nil)(NewIPRateLimiter(rate.Every(time.Hour), 2).Middleware(okHandler))

	limited := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/api/walrus/upload", nil)
		req.RemoteAddr = "203.0.113.5:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 8 {
		t.Errorf("want 8 limited requests, got %d", limited)
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Success || env.Error == "" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestMaxBytes(t *testing.T) {
	var readErr error
	h := MaxBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = r.Body.Read(make([]byte, 16))
		if readErr == nil {
			_, readErr = r.Body.Read(make([]byte, 16))
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader("0123456789")))
	if readErr == nil {
		t.Error("reading past the limit should fail")
	}
}

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hi"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/reviews", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["status"] != float64(http.StatusTeapot) || line["size"] != float64(2) || line["path"] != "/api/reviews" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(true)(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff")
	}
	if rr.Header().Get("Strict-Transport-Security") == "" {
		t.Error("missing HSTS")
	}
}

func TestPrometheus_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/api/marketplace/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if got := routePath(r); got != "/api/marketplace/products/{id}" {
			t.Errorf("route path: got %q", got)
		}
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/marketplace/products/3", nil))
}
