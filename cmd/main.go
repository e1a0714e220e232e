package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tienda/internal/auth"
	"tienda/internal/cache"
	"tienda/internal/config"
	httpapi "tienda/internal/http"
	"tienda/internal/logger"
	"tienda/internal/repository"
	"tienda/internal/service"

	_ "tienda/docs"
)

func main() {
	cfg := config.Load()
	logg := logger.New(logger.Options{Service: "tienda-api", Env: cfg.AppEnv, Level: cfg.LogLevel})

	var (
		products repository.ProductRepository
		carts    repository.CartRepository
		orders   repository.OrderRepository
		users    repository.UserRepository
		tx       repository.TxManager
	)

	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			log.Fatalf("mongo ping: %v", err)
		}
		db := client.Database(cfg.MongoDB)
		products = repository.NewMongoProducts(db)
		carts = repository.NewMongoCarts(db)
		orders = repository.NewMongoOrders(db)
		users = repository.NewMongoUsers(db)
		tx = repository.NewMongoTx(client)
		logg.Info("connected to mongo", "db", cfg.MongoDB)
	} else {
		store := repository.NewMemoryStore()
		products = store
		carts = repository.NewMemoryCarts(store)
		orders = repository.NewMemoryOrders(store)
		users = repository.NewMemoryUsers(store)
		tx = repository.NewMemoryTx(store)
		logg.Warn("MONGO_URI is empty, using in-memory store")
	}

	var productCache cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, "tienda")
		logg.Info("product cache enabled", "addr", cfg.RedisAddr)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(users, tokens)
	catalogSvc := service.NewCatalogService(products, productCache)
	cartSvc := service.NewCartService(carts, products, tx)
	orderSvc := service.NewOrderService(orders, carts, products, tx)

	srv := httpapi.NewServer(authSvc, catalogSvc, cartSvc, orderSvc, tokens, cfg.FrontendURL)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: srv.Engine(),
	}

	go func() {
		logg.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logg.Error("shutdown error", "err", err)
	}
}
