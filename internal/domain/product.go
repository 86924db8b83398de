package domain

import "time"

// Product mirrors the product catalog service's product representation.
type Product struct {
	ID               string       `json:"id"`
	SKU              string       `json:"sku"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"shortDescription,omitempty"`
	Category         CategoryRef  `json:"category"`
	Brand            BrandRef     `json:"brand"`
	BasePrice        float64      `json:"basePrice"`
	CurrentPrice     float64      `json:"currentPrice"`
	DiscountRate     float64      `json:"discountRate,omitempty"`
	Tags             []string     `json:"tags"`
	ImageURLs        []string     `json:"imageUrls,omitempty"`
	Featured         bool         `json:"featured,omitempty"`
	OnSale           bool         `json:"onSale"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

type BrandRef struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
}

// Category is a node of the catalog's category tree.
type Category struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Path         string       `json:"path"`
	Level        int          `json:"level"`
	SortOrder    int          `json:"sortOrder"`
	ImageURL     *string      `json:"imageUrl"`
	ProductCount int          `json:"productCount"`
	Active       bool         `json:"active"`
	Parent       *CategoryRef `json:"parent,omitempty"`
	Children     []Category   `json:"children,omitempty"`
}

// ProductQuery is the filter/paging passthrough for product listings.
type ProductQuery struct {
	Search     string
	CategoryID string
	BrandID    string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Featured   *bool
	OnSale     *bool
	Page       *int
	Size       *int
}
