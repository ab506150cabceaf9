package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"rag-gateway/internal/config"
	"rag-gateway/internal/handlers"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/routes"
	"rag-gateway/internal/services"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server is the gateway HTTP server
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.Collector
	client     *services.RagClient
	httpServer *http.Server
}

// New wires the backend client, handlers, router and middleware chain. A nil
// collector disables the metrics endpoint.
func New(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := initializeRagClient(cfg.Backend, logger, collector)

	h := &routes.Handlers{
		Rag: handlers.NewRagHandler(client, logger, collector),
	}
	if collector != nil && cfg.Metrics.Enabled {
		h.Metrics = collector.Handler()
		h.MetricsPath = cfg.Metrics.Path
	}
	if cfg.Swagger.Enabled {
		// Add Swagger endpoints
		h.Swagger = httpSwagger.Handler(
			httpSwagger.URL(cfg.Swagger.DocURL), // The url pointing to API definition
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)
	}

	accessLog := accessLogMiddleware(logger, collector)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, h)
	router.Use(accessLog)
	router.NotFoundHandler = accessLog(http.NotFoundHandler())
	router.MethodNotAllowedHandler = accessLog(http.HandlerFunc(methodNotAllowed))

	var handler http.Handler = router
	handler = corsMiddleware(cfg.Server.AllowedOrigin)(handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(logger, collector)(handler)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		client:  client,
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// initializeRagClient creates and configures the RAG backend client
func initializeRagClient(cfg config.BackendConfig, logger *zap.Logger, collector *metrics.Collector) *services.RagClient {
	logger.Info("Initializing RAG backend client",
		zap.String("url", cfg.URL),
		zap.Duration("timeout", cfg.Timeout),
	)
	return services.NewRagClientWithOptions(cfg.URL, services.ClientOptions{
		Timeout:             cfg.Timeout,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		Logger:              logger,
		Metrics:             collector,
	})
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening",
			zap.String("address", ln.Addr().String()),
			zap.String("backend", s.client.BaseURL()),
		)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", zap.Duration("timeout", s.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}
