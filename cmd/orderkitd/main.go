package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	cartapp "github.com/quickdine/orderkit/internal/cart/app"
	"github.com/quickdine/orderkit/internal/cart/infra/filestore"
	"github.com/quickdine/orderkit/internal/cart/infra/redisstore"
	catalogapp "github.com/quickdine/orderkit/internal/catalog/app"
	"github.com/quickdine/orderkit/internal/catalog/infra/httpapi"
	checkoutapp "github.com/quickdine/orderkit/internal/checkout/app"
	menuapp "github.com/quickdine/orderkit/internal/menu/app"
	orderapp "github.com/quickdine/orderkit/internal/order/app"
	"github.com/quickdine/orderkit/pkg/config"
	"github.com/quickdine/orderkit/pkg/logger"
	"github.com/quickdine/orderkit/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: "orderkitd", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store := mustStore(cfg, log)

	api := httpapi.NewClient(cfg.APIBaseURL)
	catalogSvc := catalogapp.NewService(api)

	cart := cartapp.NewService(store, cartapp.ParseScopePolicy(cfg.CartScopePolicy), log)
	if err := cart.Restore(ctx); err != nil {
		log.Warn("cart restore failed, starting empty", slog.Any("err", err))
	}
	defer cart.Close()

	menu := menuapp.NewService(catalogSvc, log)
	checkout := checkoutapp.NewService(cart, catalogSvc, catalogSvc, api, log)
	orders := orderapp.NewService(api)

	h := &handlers{
		cart:     cart,
		menu:     menu,
		catalog:  catalogSvc,
		checkout: checkout,
		orders:   orders,
		currency: cfg.Currency,
		log:      log,
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustStore(cfg config.Config, log *slog.Logger) cartapp.Store {
	switch cfg.Storage {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		store := redisstore.New(client, "orderkit:")

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			log.Error("redis unreachable", slog.Any("err", err), slog.String("addr", cfg.RedisAddr))
			os.Exit(1)
		}
		return store
	default:
		store, err := filestore.New(cfg.StorageDir)
		if err != nil {
			log.Error("open file store", slog.Any("err", err), slog.String("dir", cfg.StorageDir))
			os.Exit(1)
		}
		return store
	}
}
