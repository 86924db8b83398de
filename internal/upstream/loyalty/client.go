// Package loyalty is the REST client for the points/loyalty service.
package loyalty

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"skishop-bff/internal/domain"
	"skishop-bff/internal/upstream"
)

type Client struct {
	api *upstream.Client
}

func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	return &Client{api: upstream.New("loyalty-service", baseURL, httpClient, logger)}
}

// Balance fetches a customer's point standing.
func (c *Client) Balance(ctx context.Context, userID string) (*domain.PointsBalance, error) {
	var balance domain.PointsBalance
	path := "/api/users/" + url.PathEscape(userID) + "/points"
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// Transactions pages through a customer's earn/redeem history.
func (c *Client) Transactions(ctx context.Context, userID string, page, size int) ([]domain.PointsTransaction, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	var transactions []domain.PointsTransaction
	path := "/api/users/" + url.PathEscape(userID) + "/transactions"
	if err := c.api.Do(ctx, http.MethodGet, path, query, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// Redeem spends points on the customer's behalf.
func (c *Client) Redeem(ctx context.Context, in domain.RedeemPointsInput) (*domain.Redemption, error) {
	var redemption domain.Redemption
	if err := c.api.Do(ctx, http.MethodPost, "/api/points/redeem", nil, in, &redemption); err != nil {
		return nil, err
	}
	return &redemption, nil
}
