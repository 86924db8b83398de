package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skishop-bff/internal/domain"
)

// customerOf returns the authenticated customer id or answers 401.
func customerOf(c *gin.Context, stores CartStores) (string, bool) {
	store := stores.Resolve(c.Request.Context(), deviceID(c))
	customerID := store.CustomerID()
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return "", false
	}
	return customerID, true
}

func pointsBalanceHandler(stores CartStores, loyalty Loyalty) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := customerOf(c, stores)
		if !ok {
			return
		}
		balance, err := loyalty.Balance(c.Request.Context(), customerID)
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}

func pointsHistoryHandler(stores CartStores, loyalty Loyalty) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := customerOf(c, stores)
		if !ok {
			return
		}
		page, _ := strconv.Atoi(c.Query("page"))
		size, _ := strconv.Atoi(c.Query("size"))
		transactions, err := loyalty.Transactions(c.Request.Context(), customerID, page, size)
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

type redeemPointsRequest struct {
	Points int64  `json:"points"`
	Reason string `json:"reason"`
}

func redeemPointsHandler(stores CartStores, loyalty Loyalty) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := customerOf(c, stores)
		if !ok {
			return
		}
		var req redeemPointsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Points <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "points must be positive"})
			return
		}
		redemption, err := loyalty.Redeem(c.Request.Context(), domain.RedeemPointsInput{
			UserID: customerID,
			Points: req.Points,
			Reason: req.Reason,
		})
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, redemption)
	}
}
