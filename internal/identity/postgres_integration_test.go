package identity

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"skishop-bff/internal/domain"
	"skishop-bff/internal/migrate"
)

func integrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTable(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE shopper_identities`); err != nil {
		t.Fatalf("truncate shopper_identities: %v", err)
	}
}

func TestRepositoryRoundTrip_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTable(ctx, t, pool)

	repo := NewPostgres(pool)

	if _, err := repo.Get(ctx, "device-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown device, got %v", err)
	}

	if err := repo.Save(ctx, domain.ShopperIdentity{
		DeviceID:  "device-1",
		CartID:    "cart-1",
		SessionID: "session-1",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := repo.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.CartID != "cart-1" || rec.SessionID != "session-1" || rec.CustomerID != "" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// Upsert replaces the identity for the same device.
	if err := repo.Save(ctx, domain.ShopperIdentity{
		DeviceID:   "device-1",
		CartID:     "cart-2",
		SessionID:  "session-1",
		CustomerID: "cust-1",
	}); err != nil {
		t.Fatalf("save upsert: %v", err)
	}

	rec, err = repo.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if rec.CartID != "cart-2" || rec.CustomerID != "cust-1" {
		t.Fatalf("unexpected record after upsert: %+v", rec)
	}
	if !rec.UpdatedAt.After(rec.CreatedAt) && !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("expected updated_at maintained, got %+v", rec)
	}
}
