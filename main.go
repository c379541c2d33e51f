package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"grocerystore/internal/auth"
	"grocerystore/internal/cart"
	"grocerystore/internal/cartstore"
	"grocerystore/internal/catalog"
	"grocerystore/internal/config"
	"grocerystore/internal/database"
	"grocerystore/internal/demo"
	"grocerystore/internal/events"
	"grocerystore/internal/handlers"
	"grocerystore/internal/orders"
	"grocerystore/internal/repository"
	"grocerystore/internal/repository/memory"
	"grocerystore/internal/users"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppEnv

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	store, client := openStore(cfg, logger)
	if client != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
	}

	carts := store.Carts
	if cfg.CartBackend == "redis" {
		rdb := cartstore.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		defer rdb.Close()
		carts = cartstore.NewRedis(rdb, cfg.CartTTL)
		logger.Info("saved carts stored in redis", zap.String("addr", cfg.RedisAddr))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.DialRabbitMQ(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			logger.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer rabbit.Close()
		publisher = rabbit
		logger.Info("order events published", zap.String("exchange", cfg.OrderExchange))
	}

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := demo.Seed(ctx, store, logger); err != nil {
			logger.Warn("demo data not seeded", zap.Error(err))
		}
		cancel()
	}

	authSvc := auth.NewService(store.Users, store.Tokens, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, logger)

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.Deps{
		Catalog: catalog.NewService(store, logger),
		Carts:   cart.NewService(store.Groceries, carts, logger),
		Orders:  orders.NewService(store.Groceries, store.Orders, store.Users, store.Tx, publisher, logger),
		Auth:    authSvc,
		Users:   users.NewService(store.Users, authSvc, logger),
		Health:  store.Health,
		Log:     logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// openStore returns the configured repositories. The mongo client is nil
// for the in-memory store.
func openStore(cfg config.Config, logger *zap.Logger) (repository.Store, *mongo.Client) {
	if cfg.Storage == "memory" {
		logger.Warn("using in-memory storage; data is lost on exit")
		return memory.New().Repositories(), nil
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	db := client.Database(cfg.DBName)
	logger.Info("mongo connected", zap.String("db", db.Name()), zap.Bool("transactions", cfg.MongoTransactions))

	if err := database.EnsureIndexes(db, cfg.CartTTL); err != nil {
		logger.Warn("index setup incomplete", zap.Error(err))
	}
	return database.NewStore(db, cfg.MongoTransactions), client
}
