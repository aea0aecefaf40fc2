package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/server/middleware"
)

// Server is an HTTP server backed by Gin. Additional http.Handlers can be
// mounted on the same port with Handle. Every error response, including
// panics and unknown routes, is rendered through the server's registry.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	h2s        *http2.Server
	config     Config
	registry   *errors.Registry
	log        *logger.Logger
}

// New creates a new Server. A nil reg uses the process-wide registry.
// No middleware is applied until ApplyMiddleware is called.
func New(cfg Config, log *logger.Logger, reg *errors.Registry) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if reg == nil {
		reg = errors.DefaultRegistry()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	// h2c serves HTTP/2 without TLS for mounted gRPC-style handlers
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	s := &Server{
		engine:   engine,
		mux:      mux,
		h2s:      h2s,
		config:   cfg,
		registry: reg,
		log:      log.WithComponent("server"),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(mux, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Registry returns the registry error responses are rendered through.
func (s *Server) Registry() *errors.Registry {
	return s.registry
}

// Handler returns the root handler including server-level middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts an http.Handler at pattern on the root ServeMux.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", logger.Fields("pattern", pattern))
}

// ApplyMiddleware installs the standard stack. Recovery, request ids and
// request logging wrap every mounted handler; the Gin engine additionally
// renders errors attached with c.Error, unknown routes and, when configured,
// rate limit rejections.
func (s *Server) ApplyMiddleware() {
	chain := middleware.Chain(
		middleware.Recovery(s.registry),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
	)
	s.httpServer.Handler = h2c.NewHandler(chain(s.mux), s.h2s)

	s.engine.Use(middleware.ErrorHandler(s.registry))
	if s.config.RateLimit > 0 {
		s.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: s.config.RateLimit,
			KeyFunc:           middleware.UserBasedKey,
			Registry:          s.registry,
		}))
	}
	s.engine.NoRoute(func(c *gin.Context) {
		RespondWithErrorUsing(c, s.registry, errors.NotFound("route", c.Request.URL.Path))
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", logger.Fields("addr", s.httpServer.Addr))

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.httpServer.Addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the listen address. After Start it is the bound address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
