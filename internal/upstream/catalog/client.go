// Package catalog is the REST client for the product catalog service with a
// Redis read-through cache on hot lookups.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skishop-bff/internal/cache"
	"skishop-bff/internal/domain"
	"skishop-bff/internal/upstream"
)

type Client struct {
	api      *upstream.Client
	cache    cache.Store
	cacheTTL time.Duration
	logger   *log.Logger
}

// New builds a catalog client. store may be nil, in which case every read
// goes to the origin.
func New(baseURL string, httpClient *http.Client, store cache.Store, cacheTTL time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		api:      upstream.New("catalog-service", baseURL, httpClient, logger),
		cache:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ProductByID fetches one product, serving from cache when possible. Cache
// failures fall through to the origin.
func (c *Client) ProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	key := "catalog:product:" + productID
	if product, ok := c.cachedProduct(ctx, key); ok {
		return product, nil
	}

	var product domain.Product
	path := "/api/v1/products/" + url.PathEscape(productID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	c.cacheSet(ctx, key, product)
	return &product, nil
}

// ProductBySKU fetches one product by SKU, uncached.
func (c *Client) ProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	path := "/api/v1/products/sku/" + url.PathEscape(sku)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Products lists products with the query passed through to the service.
func (c *Client) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		query.Set("categoryId", q.CategoryID)
	}
	if q.BrandID != "" {
		query.Set("brandId", q.BrandID)
	}
	if q.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.Featured != nil {
		query.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.OnSale != nil {
		query.Set("onSale", strconv.FormatBool(*q.OnSale))
	}
	if q.Page != nil {
		query.Set("page", strconv.Itoa(*q.Page))
	}
	if q.Size != nil {
		query.Set("size", strconv.Itoa(*q.Size))
	}

	var products []domain.Product
	if err := c.api.Do(ctx, http.MethodGet, "/api/v1/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists the category tree, cached as one blob.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	const key = "catalog:categories"
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, key); err == nil {
			var categories []domain.Category
			if err := json.Unmarshal([]byte(raw), &categories); err == nil {
				return categories, nil
			}
		} else if !errors.Is(err, cache.Miss) {
			c.logger.Printf("catalog cache get %s: %v", key, err)
		}
	}

	var categories []domain.Category
	if err := c.api.Do(ctx, http.MethodGet, "/api/v1/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	c.cacheSet(ctx, key, categories)
	return categories, nil
}

// CategoryProducts lists products belonging to one category.
func (c *Client) CategoryProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/api/v1/products/category/" + url.PathEscape(categoryID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) cachedProduct(ctx context.Context, key string) (*domain.Product, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.Miss) {
			c.logger.Printf("catalog cache get %s: %v", key, err)
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *Client) cacheSet(ctx context.Context, key string, v interface{}) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(raw), c.cacheTTL); err != nil {
		c.logger.Printf("catalog cache set %s: %v", key, err)
	}
}
