package server

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/samankwah/agromet-sub002/internal/api/v1"
	"github.com/samankwah/agromet-sub002/internal/config"
	"github.com/samankwah/agromet-sub002/internal/importer"
	"github.com/samankwah/agromet-sub002/internal/store"
)

// Server is the HTTP server around the calendar store and the extraction
// pipeline.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *v1.Handler
	log    *zap.Logger
}

// NewServer wires the store, the import coordinator, and the API routes.
func NewServer(cfg *config.AppConfig, log *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "cropcal.db")

	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("store ready", zap.String("path", dbPath))

	coordinator := importer.NewCoordinator(st, cfg, log)

	s := &Server{
		router: gin.Default(),
		store:  st,
		api:    v1.NewHandler(st, coordinator, log),
		log:    log,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes sets middleware and routes.
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore returns the store, for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
