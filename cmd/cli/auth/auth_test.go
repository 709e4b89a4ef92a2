package auth

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verakita/verakita-api/internal/middleware"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestToken_PrintsAdminToken(t *testing.T) {
	cmd := tokenCmd()
	_ = cmd.Flags().Set("secret", "s3cret")
	_ = cmd.Flags().Set("sub", "0xadmin")

	var err error
	out := captureOutput(t, func() {
		err = cmd.RunE(cmd, []string{})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := middleware.ParseToken([]byte("s3cret"), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Subject != "0xadmin" || claims.Role != middleware.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestToken_TTLFromEnvironment(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	cmd := tokenCmd()
	_ = cmd.Flags().Set("secret", "s3cret")

	out := captureOutput(t, func() {
		if err := cmd.RunE(cmd, []string{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	claims, err := middleware.ParseToken([]byte("s3cret"), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if life := claims.ExpiresAt.Sub(claims.IssuedAt.Time); life != 2*time.Hour {
		t.Fatalf("expected a 2h token, got %s", life)
	}
}

func TestToken_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	t.Setenv("VERAKITA_TOKEN_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cmd := tokenCmd()
	_ = cmd.Flags().Set("save", "true")
	captureOutput(t, func() {
		if err := cmd.RunE(cmd, []string{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("token not saved: %v", err)
	}
	if _, err := middleware.ParseToken([]byte("from-env"), string(b)); err != nil {
		t.Fatalf("saved token invalid: %v", err)
	}
}

func TestToken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cmd := tokenCmd()
	if err := cmd.RunE(cmd, []string{}); err == nil {
		t.Fatal("expected error without a secret")
	}
}
