package domain

import "time"

// Coupon as exposed by the coupon/discount service.
type Coupon struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	MinimumAmount float64   `json:"minimumAmount,omitempty"`
	ValidFrom     time.Time `json:"validFrom"`
	ValidUntil    time.Time `json:"validUntil"`
	Active        bool      `json:"active"`
}

// CouponValidation is the result of checking a code against a cart amount.
type CouponValidation struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
	Message        string  `json:"message,omitempty"`
}

// AppliedCoupon acknowledges a coupon applied to an order or cart.
type AppliedCoupon struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	AppliedTo      string  `json:"appliedTo,omitempty"`
}
