// Package api exposes the session workflow over HTTP: upload a raw
// genotype file, analyze it, submit the lifestyle questionnaire, and
// fetch recommendations and meal plans.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/catalog"
	"github.com/nutrigenomics-server/internal/domain"
	"github.com/nutrigenomics-server/internal/middleware"
	"github.com/nutrigenomics-server/internal/service"
)

// Server wires the HTTP surface to its collaborators. All dependencies
// are explicit; nothing reaches for globals.
type Server struct {
	cfg         *domain.Config
	log         *logrus.Logger
	router      *gin.Engine
	server      *http.Server
	catalog     *catalog.Catalog
	analyzer    *service.Analyzer
	synthesizer *service.Synthesizer
	store       domain.Store
	cache       domain.ResultCache
	encryptor   domain.FieldEncryptor
	planner     domain.MealPlanner
}

// Deps bundles the collaborators for NewServer.
type Deps struct {
	Config      *domain.Config
	Logger      *logrus.Logger
	Catalog     *catalog.Catalog
	Analyzer    *service.Analyzer
	Synthesizer *service.Synthesizer
	Store       domain.Store
	Cache       domain.ResultCache
	Encryptor   domain.FieldEncryptor
	Planner     domain.MealPlanner
}

// NewServer creates the HTTP server with its middleware chain and
// routes.
func NewServer(deps Deps) *Server {
	if deps.Config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(deps.Config.Server.RateLimit, deps.Config.Server.RateBurst))
	router.MaxMultipartMemory = deps.Config.Upload.MaxSizeBytes

	s := &Server{
		cfg:         deps.Config,
		log:         deps.Logger,
		router:      router,
		catalog:     deps.Catalog,
		analyzer:    deps.Analyzer,
		synthesizer: deps.Synthesizer,
		store:       deps.Store,
		cache:       deps.Cache,
		encryptor:   deps.Encryptor,
		planner:     deps.Planner,
	}
	s.setupRoutes()
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until the context is canceled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.cfg.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/upload", s.handleUpload)
		v1.POST("/analyze", s.handleAnalyze)
		v1.POST("/questionnaire", s.handleQuestionnaire)
		v1.GET("/questionnaire/template", s.handleQuestionnaireTemplate)
		v1.GET("/recommendations/:session_id", s.handleRecommendations)
		v1.GET("/session/:session_id", s.handleSessionStatus)
		v1.DELETE("/session/:session_id", s.handleDeleteSession)
		v1.GET("/snps", s.handleListSNPs)
		v1.POST("/mealplan", s.handleMealPlan)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"snps":      s.catalog.Size(),
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
