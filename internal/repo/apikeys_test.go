package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/verakita/verakita-api/internal/mockdata"
	"github.com/verakita/verakita-api/internal/models"
)

func TestAPIKeyRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, masked_key, permissions, status, created_at, COALESCE\(last_used, ''\) FROM api_keys ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "masked_key", "permissions", "status", "created_at", "last_used"}).
			AddRow(1, "Production API Key", "vk_prod_••••••••••••3f2a", "{read,write}", "active", now, "2 hours ago"))

	keys, err := NewAPIKeyRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 || keys[0].Name != "Production API Key" || len(keys[0].Permissions) != 2 {
		t.Errorf("unexpected keys: %+v", keys)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPIKeyRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO api_keys \(name, masked_key, key_hash, permissions, status\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING id, created_at`).
		WithArgs("CI", "vk_test_••••••••••••abcd", "hash", sqlmock.AnyArg(), "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	k, err := NewAPIKeyRepo(db).Create(context.Background(), models.APIKey{
		Name: "CI", MaskedKey: "vk_test_••••••••••••abcd", KeyHash: "hash",
		Permissions: []string{"read"}, Status: "active",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if k.ID != 3 || !k.CreatedAt.Equal(now) {
		t.Errorf("unexpected key: %+v", k)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPIKeyRepo_Revoke_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE api_keys SET status = \$1 WHERE id = \$2`).
		WithArgs("revoked", 99).
		WillReturnError(sql.ErrNoRows)

	_, err = NewAPIKeyRepo(db).Revoke(context.Background(), 99)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMemoryAPIKeyRepo(t *testing.T) {
	r := NewMemoryAPIKeyRepo(mockdata.AdminAPIKeys())
	ctx := context.Background()

	keys, _ := r.List(ctx)
	if len(keys) != 2 {
		t.Fatalf("want 2 seeded keys, got %d", len(keys))
	}

	created, err := r.Create(ctx, models.APIKey{Name: "New", Status: models.KeyStatusActive, Permissions: []string{"read"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 3 || created.CreatedAt.IsZero() {
		t.Errorf("unexpected key: %+v", created)
	}

	revoked, err := r.Revoke(ctx, 1)
	if err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked.Status != models.KeyStatusRevoked {
		t.Errorf("want revoked, got %s", revoked.Status)
	}

	if _, err := r.Revoke(ctx, 42); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}

	keys, _ = r.List(ctx)
	if len(keys) != 3 || keys[0].Status != models.KeyStatusRevoked {
		t.Errorf("unexpected keys after revoke: %+v", keys)
	}
}
