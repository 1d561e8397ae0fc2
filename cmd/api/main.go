package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"avkngifts-api/internal/cache"
	"avkngifts-api/internal/cart"
	"avkngifts-api/internal/catalog"
	"avkngifts-api/internal/client"
	"avkngifts-api/internal/config"
	"avkngifts-api/internal/handler"
	"avkngifts-api/internal/repository"
	"avkngifts-api/internal/router"
	"avkngifts-api/internal/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting AvknGifts API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Load the static catalog (required)
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize the ownership ledger (optional - the service degrades to an
	// empty ledger when unavailable)
	var ownershipRepo repository.OwnershipRepository
	var settingsRepo repository.SettingsRepository

	switch cfg.LedgerDB.Type {
	case "mysql":
		mysqlRepo, err := repository.NewMySQLOwnershipRepository(cfg.LedgerDB.MySQLDSN())
		if err != nil {
			log.Printf("Warning: MySQL ledger unavailable: %v", err)
		} else {
			defer mysqlRepo.Close()
			ownershipRepo = mysqlRepo
			settingsRepo = mysqlRepo
			log.Println("MySQL ledger repository initialized")
		}
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteOwnershipRepository(cfg.LedgerDB.Path)
		if err != nil {
			log.Printf("Warning: SQLite ledger unavailable: %v", err)
		} else {
			defer sqliteRepo.Close()
			ownershipRepo = sqliteRepo
			settingsRepo = sqliteRepo
			log.Println("SQLite ledger repository initialized")
		}
	}

	// Cart limits: env defaults, overridden by the app_settings table
	limits := cart.Limits{
		MaxItems:     cfg.Limits.MaxCartItems,
		MaxItemPrice: cfg.Limits.MaxItemPrice,
		MaxTotal:     cfg.Limits.MaxCartTotal,
	}
	limits = applySettings(settingsRepo, limits)
	log.Printf("Cart limits: max_items=%d max_item_price=%d max_total=%d",
		limits.MaxItems, limits.MaxItemPrice, limits.MaxTotal)

	// Initialize the session store (Redis with in-memory fallback)
	var sessionCache cache.Cache
	cacheType := "memory"
	if cfg.Cache.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()

		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory sessions: %v", err)
		} else {
			sessionCache = cache.NewRedisCache(redisClient)
			cacheType = "redis"
			log.Println("Redis session store initialized")
		}
	}
	if sessionCache == nil {
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		sessionCache = memCache
		log.Println("Memory session store initialized")
	}

	// External gift API client
	avakin := client.New(cfg.External.BaseURL, cfg.External.Timeout, cfg.External.GiftTimeout)
	log.Printf("External API: %s", cfg.External.BaseURL)

	// Initialize services
	ledgerService := service.NewLedgerService(ownershipRepo)
	sessionService := service.NewSessionService(sessionCache, cfg.Cache.TTL, store, limits, avakin, ledgerService)
	giftService := service.NewGiftService(sessionService, avakin, ledgerService)

	// Initialize handlers
	opsHandler := handler.New(cfg.App.Version, store, ownershipRepo != nil, cacheType)
	proxyHandler := handler.NewProxyHandler(avakin)
	catalogHandler := handler.NewCatalogHandler(store, cfg.Limits.PageSize)
	sessionHandler := handler.NewSessionHandler(sessionService)
	cartHandler := handler.NewCartHandler(sessionService, giftService)

	// Create router
	r := router.New(router.Config{
		Handler:        opsHandler,
		ProxyHandler:   proxyHandler,
		CatalogHandler: catalogHandler,
		SessionHandler: sessionHandler,
		CartHandler:    cartHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// applySettings overrides the env-derived limits with app_settings rows when
// the settings store is reachable.
func applySettings(repo repository.SettingsRepository, limits cart.Limits) cart.Limits {
	if repo == nil {
		return limits
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := repo.GetSettings(ctx)
	if err != nil {
		log.Printf("Warning: failed to load app settings, using defaults: %v", err)
		return limits
	}

	if v, ok := intSetting(settings, "MAX_CART_ITEMS"); ok {
		limits.MaxItems = v
	}
	if v, ok := intSetting(settings, "MAX_ITEM_PRICE"); ok {
		limits.MaxItemPrice = v
	}
	if v, ok := intSetting(settings, "MAX_CART_TOTAL"); ok {
		limits.MaxTotal = v
	}
	return limits
}

func intSetting(settings map[string]string, key string) (int, bool) {
	raw, ok := settings[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: ignoring non-numeric setting %s=%q", key, raw)
		return 0, false
	}
	return v, true
}
