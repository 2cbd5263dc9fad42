package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

// StatusFunc reports when the last refresh cycle completed.
type StatusFunc func() time.Time

// Server serves the query API.
type Server struct {
	httpServer  *http.Server
	store       *snapshot.Store
	lastRefresh StatusFunc
	openapi     []byte
	logger      zerolog.Logger
}

// New builds the server and its routes. The OpenAPI document is generated
// once here, from the operations the server exposes.
func New(port int, store *snapshot.Store, lastRefresh StatusFunc, logger zerolog.Logger) (*Server, error) {
	doc, err := buildOpenAPIDocument()
	if err != nil {
		return nil, fmt.Errorf("generate openapi document: %w", err)
	}
	s := &Server{
		store:       store,
		lastRefresh: lastRefresh,
		openapi:     doc,
		logger:      logger.With().Str("component", "server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/pools", s.handlePools)
	mux.HandleFunc("/openapi.yaml", s.handleOpenAPI)
	mux.HandleFunc("/api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the route handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server error")
		}
	}()
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
