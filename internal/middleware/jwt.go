package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type key string

const (
	SubjectKey key = "subject"
	RoleKey    key = "role"
)

// RoleAdmin is the role claim required on /api/admin routes.
const RoleAdmin = "admin"

// Claims carry the wallet address as subject plus a role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for subject (a wallet address) with role, valid for ttl.
func IssueToken(secret []byte, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates tokenStr against secret and returns its claims.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

func withClaims(r *http.Request, c *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), SubjectKey, c.Subject)
	ctx = context.WithValue(ctx, RoleKey, c.Role)
	return r.WithContext(ctx)
}

// RequireAdmin rejects requests without a valid bearer token carrying the admin role.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearer(r)
			if !ok {
				writeFailure(w, "Missing authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := ParseToken(secret, tokenStr)
			if err != nil {
				writeFailure(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			if claims.Role != RoleAdmin {
				writeFailure(w, "Admin role required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

// OptionalAuth attaches the token's claims to the context when a valid bearer
// token is present and otherwise passes the request through untouched.
func OptionalAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr, ok := bearer(r); ok {
				if claims, err := ParseToken(secret, tokenStr); err == nil {
					r = withClaims(r, claims)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Subject returns the authenticated wallet address, if any.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok && s != ""
}
