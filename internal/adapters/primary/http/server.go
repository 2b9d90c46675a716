package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/cors"

	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// maxRequestBytes limits POST /generate bodies
const maxRequestBytes = 64 << 10

// metricsInterval is how often runtime metrics are sampled while serving
const metricsInterval = 30 * time.Second

// Server is the web host: a form to request a deck and a download of the result
type Server struct {
	server    *http.Server
	listener  net.Listener
	service   ports.DeckService
	config    *entities.ServerConfig
	logger    ports.Logger
	limiter   *rateLimiter
	sanitizer *bluemonday.Policy
	monitor   *monitoring.Monitor
	mu        sync.RWMutex
	running   bool
	done      chan struct{}
}

// NewServer creates a new HTTP server
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(service ports.DeckService, config *entities.ServerConfig, logger ports.Logger) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	if logger == nil {
		logger = ports.NopLogger{}
	}

	return &Server{
		service:   service,
		config:    config,
		logger:    logger,
		limiter:   newRateLimiter(config.GetRateLimit(), time.Minute),
		sanitizer: bluemonday.StrictPolicy(),
		monitor:   monitoring.NewMonitor(),
	}
}

// Start starts the HTTP server. The listener is bound before Start returns
// so address errors are reported to the caller.
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		return fmt.Errorf("listening on %s:%d: %w", host, port, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.listener = listener
	s.done = make(chan struct{})
	s.running = true

	go s.limiter.cleanupRoutine(s.done)
	s.monitor.Start(ctx, metricsInterval)

	go func() {
		s.logger.Info("HTTP server starting on %s", listener.Addr())
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	// The listener is closed by Shutdown even when it fails, so the server
	// counts as stopped either way.
	s.running = false
	close(s.done)
	s.monitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address, or "" when not running
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the routed handler with middleware and CORS applied
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", requestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
	return c.Handler(s.setupRoutes())
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/themes", s.handleThemes).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, r, fmt.Errorf("no route for %s", r.URL.Path), http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, r, fmt.Errorf("%s not allowed on %s", r.Method, r.URL.Path), http.StatusMethodNotAllowed)
	})

	// Apply middleware in order: security -> rate limiting -> metrics -> logging -> request ID -> recovery
	var handler http.Handler = router
	handler = securityHeadersMiddleware(handler)
	handler = rateLimitMiddleware(handler, s.limiter)
	handler = metricsMiddleware(handler, s.monitor)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = requestIDMiddleware(handler)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}

// Ensure Server implements ports.HTTPServer
var _ ports.HTTPServer = (*Server)(nil)
