// Package coupon is the REST client for the coupon/discount service.
package coupon

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
	return &Client{api: upstream.New("coupon-service", baseURL, httpClient, logger)}
}

// Validate checks a coupon code against an order amount without consuming it.
func (c *Client) Validate(ctx context.Context, code, userID string, orderAmount float64) (*domain.CouponValidation, error) {
	body := struct {
		CouponCode  string  `json:"couponCode"`
		UserID      string  `json:"userId,omitempty"`
		OrderAmount float64 `json:"orderAmount"`
	}{CouponCode: code, UserID: userID, OrderAmount: orderAmount}

	var validation domain.CouponValidation
	if err := c.api.Do(ctx, http.MethodPost, "/api/coupons/validate", nil, body, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// Apply consumes a coupon for an order.
func (c *Client) Apply(ctx context.Context, code, userID, orderID string) (*domain.AppliedCoupon, error) {
	body := struct {
		CouponCode string `json:"couponCode"`
		UserID     string `json:"userId,omitempty"`
		OrderID    string `json:"orderId"`
	}{CouponCode: code, UserID: userID, OrderID: orderID}

	var applied domain.AppliedCoupon
	if err := c.api.Do(ctx, http.MethodPost, "/api/coupons/apply", nil, body, &applied); err != nil {
		return nil, err
	}
	return &applied, nil
}

// Available lists coupons a shopper can currently use.
func (c *Client) Available(ctx context.Context, userID string) ([]domain.Coupon, error) {
	query := url.Values{}
	if userID != "" {
		query.Set("userId", userID)
	}
	var coupons []domain.Coupon
	if err := c.api.Do(ctx, http.MethodGet, "/api/coupons", query, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// ByCode fetches one coupon by its code.
func (c *Client) ByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	path := "/api/coupons/code/" + url.PathEscape(code)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}
