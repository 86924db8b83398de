package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skishop-bff/internal/cartstore"
	"skishop-bff/internal/domain"
)

// cartView is the UI-facing cart payload: the snapshot plus the derived
// values the store computes and the channel/error state the UI surfaces.
type cartView struct {
	Cart      *domain.Cart `json:"cart"`
	ItemCount int          `json:"itemCount"`
	Subtotal  float64      `json:"subtotal"`
	Tax       float64      `json:"tax"`
	Total     float64      `json:"total"`
	Connected bool         `json:"realtimeConnected"`
	Error     string       `json:"error,omitempty"`
}

func viewOf(store *cartstore.Store) cartView {
	return cartView{
		Cart:      store.Snapshot(),
		ItemCount: store.ItemCount(),
		Subtotal:  store.Subtotal(),
		Tax:       store.Tax(),
		Total:     store.Total(),
		Connected: store.Connected(),
		Error:     store.Err(),
	}
}

func getCartHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		if store.Snapshot() == nil {
			store.Initialize(c.Request.Context())
		}
		c.JSON(http.StatusOK, viewOf(store))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

func addItemHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.ProductID) == "" || strings.TrimSpace(req.SKU) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId and sku required"})
			return
		}
		if req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.AddItem(c.Request.Context(), req.ProductID, req.SKU, req.Quantity)
		c.JSON(http.StatusOK, viewOf(store))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateQuantityHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.UpdateQuantity(c.Request.Context(), c.Param("sku"), req.Quantity)
		c.JSON(http.StatusOK, viewOf(store))
	}
}

func removeItemHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.RemoveItem(c.Request.Context(), c.Param("sku"))
		c.JSON(http.StatusOK, viewOf(store))
	}
}

func clearCartHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.ClearCart(c.Request.Context())
		c.JSON(http.StatusOK, viewOf(store))
	}
}

func validateCartHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		valid := store.ValidateCart(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"valid": valid, "error": store.Err()})
	}
}

type mergeCartRequest struct {
	CustomerID string `json:"customerId"`
}

func mergeCartHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CustomerID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerId required"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.MergeGuestCart(c.Request.Context(), req.CustomerID)
		c.JSON(http.StatusOK, viewOf(store))
	}
}

func cartStatusHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		c.JSON(http.StatusOK, gin.H{
			"realtimeConnected": store.Connected(),
			"loading":           store.Loading(),
			"error":             store.Err(),
		})
	}
}

func dismissCartErrorHandler(stores CartStores) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := stores.Resolve(c.Request.Context(), deviceID(c))
		store.ClearErr()
		c.Status(http.StatusNoContent)
	}
}
