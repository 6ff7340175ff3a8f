package mockapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/microshop-platform/shopctl/internal/config"
	"github.com/microshop-platform/shopctl/internal/models"
)

// Server is the in-memory stand-in for the Microshop storefront API. It
// serves the same routes and response shapes the deployed gateway does, so
// the CLI can be pointed at it during development and integration tests.
type Server struct {
	router    *gin.Engine
	store     *Store
	config    *config.Config
	logger    zerolog.Logger
	jwtSecret []byte
}

// New creates a server with its seed data loaded.
func New(cfg *config.Config, zlog zerolog.Logger) (*Server, error) {
	store := NewStore()

	seed := DefaultSeed()
	if cfg.SeedFile != "" {
		loaded, err := LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
		zlog.Info().Str("file", cfg.SeedFile).Msg("Loaded seed file")
	}
	if err := store.Apply(seed); err != nil {
		return nil, err
	}

	server := &Server{
		store:     store,
		config:    cfg,
		logger:    zlog,
		jwtSecret: []byte(cfg.JWTSecret),
	}

	server.setupRouter()

	return server, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	// Register custom validators on gin's binding validator
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
	}

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware; the real gateway sits behind one too
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	{
		// Public endpoints
		api.POST("/auth/login", s.login)
		api.POST("/users", s.register)
		api.GET("/products", s.listProducts)
		api.GET("/products/search", s.searchProducts)
		api.GET("/products/:id", s.getProduct)

		// Authenticated endpoints (bearer token required)
		authed := api.Group("")
		authed.Use(s.requireAuth)
		{
			authed.GET("/users", s.listUsers)

			// Catalog management (admin only)
			admin := authed.Group("")
			admin.Use(s.requireAdmin)
			{
				admin.POST("/products", s.createProduct)
				admin.PUT("/products/:id", s.updateProduct)
				admin.DELETE("/products/:id", s.deleteProduct)
			}
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "shopmock-api",
	})
}

// Handler exposes the router so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
