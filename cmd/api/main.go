package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"skishop-bff/internal/cache"
	"skishop-bff/internal/cartstore"
	"skishop-bff/internal/config"
	"skishop-bff/internal/db"
	"skishop-bff/internal/httpserver"
	"skishop-bff/internal/identity"
	"skishop-bff/internal/realtime"
	cartclient "skishop-bff/internal/upstream/cart"
	catalogclient "skishop-bff/internal/upstream/catalog"
	chatclient "skishop-bff/internal/upstream/chat"
	couponclient "skishop-bff/internal/upstream/coupon"
	loyaltyclient "skishop-bff/internal/upstream/loyalty"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[bff] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	carts := cartclient.New(cfg.CartServiceURL, httpClient, logger)
	catalog := catalogclient.New(cfg.CatalogServiceURL, httpClient, cache.NewStore(rdb), cfg.CatalogCacheTTL, logger)
	coupons := couponclient.New(cfg.CouponServiceURL, httpClient, logger)
	loyalty := loyaltyclient.New(cfg.LoyaltyServiceURL, httpClient, logger)
	chat := chatclient.New(cfg.ChatServiceURL, httpClient, logger)

	identityRepo := identity.NewPostgres(dbpool)

	channels := func(cartID string, events cartstore.ChannelEvents) cartstore.Channel {
		return realtime.New(realtime.Config{
			URL:               cfg.CartWSURL,
			CartID:            cartID,
			HeartbeatInterval: cfg.HeartbeatInterval,
			ReconnectBase:     cfg.ReconnectBase,
			MaxReconnects:     cfg.MaxReconnects,
			Logger:            logger,
			OnCartUpdate:      events.OnCartUpdate,
			OnError:           events.OnError,
			OnConnect:         events.OnConnect,
			OnDisconnect:      events.OnDisconnect,
		})
	}

	stores := cartstore.NewManager(carts, catalog, identityRepo, channels, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, httpserver.Deps{
		CartStores: stores,
		Catalog:    catalog,
		Coupons:    coupons,
		Loyalty:    loyalty,
		Chat:       chat,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}

	stores.DisconnectAll()
}
