package domain

import "time"

// Cart status values as reported by the shopping cart service.
const (
	CartStatusActive    = "ACTIVE"
	CartStatusInactive  = "INACTIVE"
	CartStatusCompleted = "COMPLETED"
)

// Cart is the full snapshot of one shopper's basket as returned by the
// shopping cart service. Exactly one of CustomerID and SessionID identifies
// ownership; totals are authoritative and never recomputed locally.
type Cart struct {
	CartID     string     `json:"cartId"`
	CustomerID *string    `json:"customerId"`
	SessionID  *string    `json:"sessionId"`
	Items      []CartItem `json:"items"`
	Totals     CartTotals `json:"totals"`
	Status     string     `json:"status"`
	ItemCount  int        `json:"itemCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
}

// CartItem is one product line in a cart. Unit price is the price captured at
// add time; the service removes lines rather than keeping them at quantity 0.
type CartItem struct {
	ItemID          string                 `json:"itemId"`
	ProductID       string                 `json:"productId"`
	SKU             string                 `json:"sku"`
	ProductName     string                 `json:"productName"`
	ProductImageURL string                 `json:"productImageUrl,omitempty"`
	UnitPrice       float64                `json:"unitPrice"`
	Quantity        int                    `json:"quantity"`
	TotalPrice      float64                `json:"totalPrice"`
	Options         map[string]interface{} `json:"options,omitempty"`
	AddedAt         time.Time              `json:"addedAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// CartTotals are service-computed aggregates, treated as opaque by the client.
type CartTotals struct {
	SubtotalAmount float64 `json:"subtotalAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingAmount float64 `json:"shippingAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	Currency       string  `json:"currency"`
}

// AddItemInput carries the denormalized product snapshot sent when adding a
// line to a cart.
type AddItemInput struct {
	ProductID       string                 `json:"productId"`
	SKU             string                 `json:"sku"`
	ProductName     string                 `json:"productName"`
	ProductImageURL string                 `json:"productImageUrl,omitempty"`
	UnitPrice       float64                `json:"unitPrice"`
	Quantity        int                    `json:"quantity"`
	Options         map[string]interface{} `json:"options"`
}

// CartValidation is the cart service's verdict on stock/price drift.
type CartValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ShopperIdentity is the narrow slice of shopper state persisted across
// visits: which cart, session and customer a device is attached to.
type ShopperIdentity struct {
	DeviceID   string
	CartID     string
	SessionID  string
	CustomerID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
