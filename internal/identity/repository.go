// Package identity persists the shopper identity slice (device to cart,
// session and customer ids) so a returning shopper reattaches to their cart.
package identity

import (
	"context"

	"skishop-bff/internal/domain"
)

// Repository is the narrow persistence boundary: only identifiers cross it,
// never cart contents.
type Repository interface {
	Get(ctx context.Context, deviceID string) (*domain.ShopperIdentity, error)
	Save(ctx context.Context, identity domain.ShopperIdentity) error
}
