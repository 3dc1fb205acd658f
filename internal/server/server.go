// Package server provides the HTTP API for ARLook.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/pipeline"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/store"
)

// Server is the HTTP server for the ARLook API.
type Server struct {
	pipeline *pipeline.Pipeline
	store    store.Store
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
	llmReady bool
}

// NewServer creates a server with the given dependencies. llmReady records
// whether a language model client is configured; the status endpoint
// reports it.
func NewServer(
	p *pipeline.Pipeline,
	st store.Store,
	cfg *config.ServerConfig,
	llmReady bool,
	logger *zap.Logger,
) *Server {
	return &Server{
		pipeline: p,
		store:    st,
		config:   cfg,
		llmReady: llmReady,
		logger:   logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/properties", s.handleListProperties)
	r.Get("/api/v1/rag/status", s.handleRAGStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
