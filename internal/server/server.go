// Package server exposes the answering engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bgdnvk/campusbot/internal/answer"
	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// Config holds the listener settings.
type Config struct {
	Host        string
	Port        int
	CORSOrigins []string
	Debug       bool
}

// Addr returns host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Server serves POST /ask, GET /data.json and GET /healthz.
type Server struct {
	cfg    Config
	engine *answer.Engine
	router *gin.Engine
	http   *http.Server
}

// New builds the router around engine.
func New(cfg Config, engine *answer.Engine) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz"))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	s := &Server{cfg: cfg, engine: engine, router: router}
	router.POST("/ask", s.handleAsk)
	router.GET("/data.json", s.handleCatalog)
	router.GET("/healthz", s.handleHealth)
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.http.Addr).Info("answering service listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 || (len(cleaned) == 1 && cleaned[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = cleaned
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()[:8]
		}
		c.Set(logging.RequestIDField, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func entryFor(c *gin.Context) *log.Entry {
	return log.WithField(logging.RequestIDField, c.GetString(logging.RequestIDField))
}

func (s *Server) handleAsk(c *gin.Context) {
	var req backend.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		entryFor(c).WithError(err).Warn("invalid ask request")
		c.JSON(http.StatusBadRequest, backend.APIResponse{Error: answer.EmptyQueryErrorMsg})
		return
	}

	resp, err := s.engine.Ask(c.Request.Context(), req.Query)
	if errors.Is(err, answer.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, backend.APIResponse{Error: answer.EmptyQueryErrorMsg})
		return
	}
	if err != nil {
		entryFor(c).WithError(err).Error("ask failed")
		c.JSON(http.StatusInternalServerError, backend.APIResponse{Error: err.Error()})
		return
	}

	entryFor(c).WithField("coords", resp.HasCoords()).Debug("answered")
	c.JSON(http.StatusOK, backend.AskResponse{Response: *resp})
}

func (s *Server) handleCatalog(c *gin.Context) {
	cat := s.engine.Catalog()
	if cat == nil {
		c.JSON(http.StatusServiceUnavailable, backend.APIResponse{Error: "catalog not loaded"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"catalog": s.engine.Catalog() != nil,
	})
}
