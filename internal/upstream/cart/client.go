// Package cart is the REST client for the shopping cart service.
package cart

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"skishop-bff/internal/domain"
	"skishop-bff/internal/upstream"
)

type Client struct {
	api *upstream.Client
}

func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	return &Client{api: upstream.New("cart-service", baseURL, httpClient, logger)}
}

// GetOrCreateBySession resolves the active guest cart for a session,
// creating one server-side when none exists.
func (c *Client) GetOrCreateBySession(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/session/" + url.PathEscape(sessionID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByCustomer resolves the active cart for an authenticated customer.
func (c *Client) GetOrCreateByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/customer/" + url.PathEscape(customerID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a line carrying a denormalized product snapshot and returns
// the updated cart.
func (c *Client) AddItem(ctx context.Context, cartID string, in domain.AddItemInput) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/" + url.PathEscape(cartID) + "/items"
	if err := c.api.Do(ctx, http.MethodPost, path, nil, in, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateQuantity changes the quantity of the line identified by SKU.
func (c *Client) UpdateQuantity(ctx context.Context, cartID, sku string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/" + url.PathEscape(cartID) + "/items/" + url.PathEscape(sku) + "/quantity"
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	if err := c.api.Do(ctx, http.MethodPut, path, nil, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem deletes the line identified by SKU.
func (c *Client) RemoveItem(ctx context.Context, cartID, sku string) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/" + url.PathEscape(cartID) + "/items/" + url.PathEscape(sku)
	if err := c.api.Do(ctx, http.MethodDelete, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Clear empties the cart. The service answers 204 with no body.
func (c *Client) Clear(ctx context.Context, cartID string) error {
	path := "/api/v1/carts/" + url.PathEscape(cartID) + "/items"
	return c.api.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Validate asks the service to re-check stock and price drift.
func (c *Client) Validate(ctx context.Context, cartID string) (*domain.CartValidation, error) {
	var validation domain.CartValidation
	path := "/api/v1/carts/" + url.PathEscape(cartID) + "/validate"
	if err := c.api.Do(ctx, http.MethodPost, path, nil, nil, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// MergeGuestCart folds a guest cart into the named customer's cart.
func (c *Client) MergeGuestCart(ctx context.Context, guestCartID, customerID string) (*domain.Cart, error) {
	var cart domain.Cart
	path := "/api/v1/carts/" + url.PathEscape(guestCartID) + "/merge/" + url.PathEscape(customerID)
	if err := c.api.Do(ctx, http.MethodPost, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
