// internal/server/server.go
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cabinreserve/internal/config"
	"cabinreserve/internal/server/routes"
)

// Server wraps the Gin engine with its HTTP listener and dependencies.
type Server struct {
	router     *gin.Engine
	logger     *slog.Logger
	config     *config.Config
	db         *gorm.DB
	httpServer *http.Server
}

// New builds the router, registers middleware and routes, and wires an
// http.Server ready to Start.
func New(cfg *config.Config, logger *slog.Logger, db *gorm.DB, deps routes.Dependencies) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	s.setupMiddleware()
	routes.Setup(router, cfg, deps)

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.logger.Error("panic recovered", "error", recovered)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL", "message": "an unexpected error occurred"},
		})
	}))

	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		status := c.Writer.Status()

		switch {
		case status >= 500:
			s.logger.Error("http request", "method", c.Request.Method, "path", path, "status", status, "latency", latency, "ip", c.ClientIP())
		case status >= 400:
			s.logger.Warn("http request", "method", c.Request.Method, "path", path, "status", status, "latency", latency, "ip", c.ClientIP())
		default:
			if path != "/health" {
				s.logger.Info("http request", "method", c.Request.Method, "path", path, "status", status, "latency", latency, "ip", c.ClientIP())
			}
		}
	})

	s.router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	})
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "address", s.httpServer.Addr, "environment", s.config.Environment)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) GetDB() *gorm.DB {
	return s.db
}

func (s *Server) GetConfig() *config.Config {
	return s.config
}
