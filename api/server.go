package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Aidin1998/studysheets/common/apiutil"
	_ "github.com/Aidin1998/studysheets/docs"
	"github.com/Aidin1998/studysheets/internal/config"
	"github.com/Aidin1998/studysheets/internal/database"
	"github.com/Aidin1998/studysheets/internal/sheets"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server represents the API server
type Server struct {
	router *gin.Engine
	logger *zap.Logger
	db     *gorm.DB
	cfg    *config.Config
	http   *http.Server
}

// NewServer creates a new API server backed by db
func NewServer(logger *zap.Logger, db *gorm.DB, cfg *config.Config) *Server {
	server := &Server{
		logger: logger,
		db:     db,
		cfg:    cfg,
	}

	router := gin.New()

	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware("studysheets"))
	router.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))
	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	router.Use(apiutil.TraceIDMiddleware())
	router.Use(apiutil.MetricsMiddleware())
	router.Use(apiutil.ErrorMiddleware(logger))

	server.router = router
	server.registerRoutes()
	return server
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", apiutil.TraceIDHeader},
		ExposeHeaders: []string{"Content-Length", apiutil.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens on addr and blocks until the server is shut down.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting API server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.home)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if s.cfg.Server.Swagger {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	sheets.Routes(s.router, s.db, s.logger, sheets.Options{
		UpdateMode:    s.cfg.Sheets.UpdateMode,
		CascadeDelete: s.cfg.Sheets.CascadeDelete,
	})
}

// home sends browsers to the links page
func (s *Server) home(c *gin.Context) {
	c.Redirect(http.StatusFound, s.cfg.Server.HomeRedirect)
}

// healthCheck handles the health check endpoint
// @Summary Service health
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"time":   time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}
