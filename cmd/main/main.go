package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-tracker/src/cache"
	"price-tracker/src/config"
	"price-tracker/src/interfaces"
	"price-tracker/src/logger"
	"price-tracker/src/resolver"
	"price-tracker/src/server"
	"price-tracker/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.Name)

	// 2. Storage (catalog + event-log readers)
	var store interfaces.IStore

	switch cfg.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresDB(cfg.MConfig, appLogger)
	default:
		// Default to SQLite
		store, err = storage.NewSQLiteDB(cfg.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to initialize db: %v", err)
	}
	defer store.Close()

	// 3. Result cache
	var resultCache interfaces.IResultCache
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	switch cfg.Cache.Backend {
	case "redis":
		resultCache, err = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, ttl)
		if err != nil {
			appLogger.Critical("Failed to init redis cache: %v", err)
		}
	default:
		resultCache = cache.NewMemoryCache(ttl, cfg.Cache.SweepThreshold, cfg.Cache.MaxEntries)
	}
	defer resultCache.Close()

	// 4. Resolution engine
	engine := resolver.NewEngine(cfg.MConfig, store, store, resultCache, appLogger)

	// 5. HTTP/WebSocket server; fresh resolutions feed the push hub
	srv := server.NewAPIServer(cfg.MConfig, engine, resultCache, appLogger)
	engine.OnResolve = srv.Broadcast

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("price-tracker running (storage=%s cache=%s lookback=%dd ttl=%ds)",
		cfg.Storage.DBType, cfg.Cache.Backend, cfg.History.LookbackDays, cfg.Cache.TTLSeconds)

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Stop()
}
