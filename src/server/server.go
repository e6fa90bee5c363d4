package server

import (
	"errors"
	"fmt"
	"sync/atomic"

	"price-tracker/src/helpers"
	"price-tracker/src/interfaces"
	"price-tracker/src/logger"
	"price-tracker/src/models"
	"price-tracker/src/resolver"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Resolver *resolver.Engine
	Cache    interfaces.IResultCache
	engine   *gin.Engine

	// WebSocket clients (owned by the hub goroutine)
	clients    map[*Client]struct{}
	broadcast  chan *models.MPriceHistoryResult
	register   chan *Client
	unregister chan *Client

	connections atomic.Int64
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, eng *resolver.Engine, resultCache interfaces.IResultCache, log *logger.Logger) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		Resolver: eng,
		Cache:    resultCache,
		engine:   gin.Default(),
		clients:  make(map[*Client]struct{}),
		// Buffered to absorb bursts of fresh resolutions without blocking
		// the request path.
		broadcast:  make(chan *models.MPriceHistoryResult, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	s.engine.Use(corsMiddleware())
	s.engine.Use(requestIDMiddleware())

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/price-history", s.getPriceHistory)
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.POST("/api/cache/flush", apiKeyRequired(s.Config.APIKey), s.flushCache)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.runHub()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

// getPriceHistory is the single query operation: fuzzy product description in,
// resolved history + statistics out.
//
// Outcomes: 200 with the result, 200 with a JSON null when nothing matches,
// 400 on an invalid query, 500 when a collaborator read fails.
func (s *APIServer) getPriceHistory(c *gin.Context) {
	raw := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	result, err := s.Resolver.Resolve(c.Request.Context(), raw)
	if err != nil {
		var ve *helpers.ValidationError
		if errors.As(err, &ve) {
			c.JSON(400, gin.H{"error": ve.Message})
			return
		}

		// Collaborator internals stay in the logs.
		s.Logger.Error("Resolution failed (request %s): %v", c.GetString(requestIDKey), err)
		c.JSON(500, gin.H{"error": "internal error"})
		return
	}

	if result == nil {
		c.JSON(200, nil)
		return
	}

	c.JSON(200, result)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   s.connections.Load(),
		"cache_entries": s.Cache.Entries(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	// Non-secret runtime knobs only
	c.JSON(200, gin.H{
		"lookback_days": s.Config.History.LookbackDays,
		"default_limit": s.Config.History.DefaultLimit,
		"max_limit":     s.Config.History.MaxLimit,
		"cache_ttl_s":   s.Config.Cache.TTLSeconds,
		"seed_mode":     s.Config.History.SeedMode,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) flushCache(c *gin.Context) {
	if err := s.Cache.Flush(c.Request.Context()); err != nil {
		s.Logger.Error("Cache flush failed: %v", err)
		c.JSON(500, gin.H{"error": "internal error"})
		return
	}

	s.Logger.Info("Cache flushed (request %s)", c.GetString(requestIDKey))
	c.JSON(200, gin.H{"status": "flushed"})
}
