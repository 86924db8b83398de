package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type validateCouponRequest struct {
	CouponCode string `json:"couponCode"`
}

func validateCouponHandler(stores CartStores, coupons Coupons) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CouponCode) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "couponCode required"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		validation, err := coupons.Validate(c.Request.Context(), req.CouponCode, store.CustomerID(), store.Total())
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, validation)
	}
}

type applyCouponRequest struct {
	CouponCode string `json:"couponCode"`
	OrderID    string `json:"orderId"`
}

func applyCouponHandler(stores CartStores, coupons Coupons) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CouponCode) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "couponCode required"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		applied, err := coupons.Apply(c.Request.Context(), req.CouponCode, store.CustomerID(), req.OrderID)
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, applied)
	}
}

func listCouponsHandler(stores CartStores, coupons Coupons) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		available, err := coupons.Available(c.Request.Context(), store.CustomerID())
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, available)
	}
}
