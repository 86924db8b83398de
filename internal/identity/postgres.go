package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skishop-bff/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, deviceID string) (*domain.ShopperIdentity, error) {
	const q = `
SELECT device_id, cart_id, session_id, customer_id, created_at, updated_at
FROM shopper_identities
WHERE device_id = $1
`
	var rec domain.ShopperIdentity
	if err := r.pool.QueryRow(ctx, q, deviceID).Scan(
		&rec.DeviceID,
		&rec.CartID,
		&rec.SessionID,
		&rec.CustomerID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepo) Save(ctx context.Context, identity domain.ShopperIdentity) error {
	const q = `
INSERT INTO shopper_identities (device_id, cart_id, session_id, customer_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (device_id) DO UPDATE
SET cart_id = EXCLUDED.cart_id,
    session_id = EXCLUDED.session_id,
    customer_id = EXCLUDED.customer_id,
    updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, identity.DeviceID, identity.CartID, identity.SessionID, identity.CustomerID)
	return err
}
