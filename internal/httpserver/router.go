package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"skishop-bff/internal/cartstore"
	"skishop-bff/internal/domain"
)

// CartStores resolves the per-device cart store.
type CartStores interface {
	Resolve(ctx context.Context, deviceID string) *cartstore.Store
}

// Catalog is the product catalog surface the handlers proxy.
type Catalog interface {
	ProductByID(ctx context.Context, productID string) (*domain.Product, error)
	Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// Coupons is the coupon/discount surface the handlers proxy.
type Coupons interface {
	Validate(ctx context.Context, code, userID string, orderAmount float64) (*domain.CouponValidation, error)
	Apply(ctx context.Context, code, userID, orderID string) (*domain.AppliedCoupon, error)
	Available(ctx context.Context, userID string) ([]domain.Coupon, error)
}

// Loyalty is the points/loyalty surface the handlers proxy.
type Loyalty interface {
	Balance(ctx context.Context, userID string) (*domain.PointsBalance, error)
	Transactions(ctx context.Context, userID string, page, size int) ([]domain.PointsTransaction, error)
	Redeem(ctx context.Context, in domain.RedeemPointsInput) (*domain.Redemption, error)
}

// Chat is the AI support surface the handlers proxy.
type Chat interface {
	Send(ctx context.Context, in domain.ChatRequest, mode string) (*domain.ChatResponse, error)
	Conversation(ctx context.Context, conversationID string) (*domain.ChatConversation, error)
}

// Deps carries the handler dependencies.
type Deps struct {
	CartStores CartStores
	Catalog    Catalog
	Coupons    Coupons
	Loyalty    Loyalty
	Chat       Chat
}

// buildRouter wires routes for the shop API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if deps.CartStores == nil {
		return nil, errors.New("cart stores required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))

	api := router.Group("/api/v1")
	api.Use(deviceMiddleware())

	cart := api.Group("/cart")
	cart.GET("", getCartHandler(deps.CartStores))
	cart.POST("/items", addItemHandler(deps.CartStores))
	cart.PATCH("/items/:sku", updateQuantityHandler(deps.CartStores))
	cart.DELETE("/items/:sku", removeItemHandler(deps.CartStores))
	cart.POST("/clear", clearCartHandler(deps.CartStores))
	cart.POST("/validate", validateCartHandler(deps.CartStores))
	cart.POST("/merge", mergeCartHandler(deps.CartStores))
	cart.GET("/status", cartStatusHandler(deps.CartStores))
	cart.DELETE("/error", dismissCartErrorHandler(deps.CartStores))

	if deps.Catalog != nil {
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:id", getProductHandler(deps.Catalog))
		api.GET("/categories", listCategoriesHandler(deps.Catalog))
		api.GET("/categories/:id/products", categoryProductsHandler(deps.Catalog))
	}
	if deps.Coupons != nil {
		api.POST("/coupons/validate", validateCouponHandler(deps.CartStores, deps.Coupons))
		api.POST("/coupons/apply", applyCouponHandler(deps.CartStores, deps.Coupons))
		api.GET("/coupons", listCouponsHandler(deps.CartStores, deps.Coupons))
	}
	if deps.Loyalty != nil {
		api.GET("/points", pointsBalanceHandler(deps.CartStores, deps.Loyalty))
		api.GET("/points/history", pointsHistoryHandler(deps.CartStores, deps.Loyalty))
		api.POST("/points/redeem", redeemPointsHandler(deps.CartStores, deps.Loyalty))
	}
	if deps.Chat != nil {
		api.POST("/chat/messages", chatMessageHandler(deps.CartStores, deps.Chat))
		api.GET("/chat/conversations/:id", chatConversationHandler(deps.Chat))
	}

	return router, nil
}
