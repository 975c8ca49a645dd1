package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vendora/platform/internal/catalog"
	"github.com/vendora/platform/internal/config"
	"github.com/vendora/platform/internal/fx"
	"github.com/vendora/platform/internal/handlers"
	"github.com/vendora/platform/internal/notify"
	"github.com/vendora/platform/internal/orders"
	"github.com/vendora/platform/internal/shipping"
	"github.com/vendora/platform/internal/storage"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterCheckoutRoutes(r, cfg)
	handlers.RegisterFXRoutes(r, cfg)
	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("failed to connect to mongo", "error", err)
		os.Exit(1)
	}

	provider, err := fx.NewProvider(cfg)
	if err != nil {
		log.Error("failed to build fx provider", "error", err)
		os.Exit(1)
	}

	var rateCache fx.RateCache = fx.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rateCache = fx.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), log)
	}

	events := notify.NewPublisher(cfg.KafkaBrokers, log)
	defer events.Close()

	handlerCfg := handlers.HandlerConfig{
		Products:   catalog.NewProductStore(db),
		Businesses: catalog.NewBusinessStore(db),
		Orders:     orders.NewStore(db),
		FX:         fx.NewResolver(provider, rateCache, cfg.FXCacheTTL, log),
		Carrier:    shipping.NewCarrierClient(cfg.CarrierBaseURL, cfg.CarrierToken, &http.Client{Timeout: 30 * time.Second}, log),
		Events:     events,
		Config:     cfg,
		Log:        log,
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := setupRouter(handlerCfg)

	log.Info("starting api server", "addr", cfg.Addr, "env", cfg.Env)
	if err := r.Run(cfg.Addr); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
