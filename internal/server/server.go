// Package server exposes parsing and editing of diagram text over HTTP and
// keeps live editing sessions over WebSocket.
//
// Routes:
//
//	GET  /healthz            liveness
//	GET  /api/operations     registered edit operations
//	POST /api/parse          {text} -> ParseResult
//	POST /api/edit/{op}      {text, params} -> EditResult and ParseResult
//	POST /api/ids            {text, label} -> {id}
//	GET  /ws                 editing session
package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chiply/cn-diagrams/internal/config"
	"github.com/chiply/cn-diagrams/internal/graph"
	"github.com/chiply/cn-diagrams/internal/parser"
	"github.com/chiply/cn-diagrams/internal/registry"
	"github.com/chiply/cn-diagrams/internal/result"
)

const shutdownTimeout = 5 * time.Second

// Server serves the diagram API.
type Server struct {
	cfg    config.Config
	log    *log.Logger
	ops    *registry.Registry
	parser *parser.DiagramParser
	cache  *lru.Cache[[sha256.Size]byte, result.ParseResult]
	router chi.Router
}

// New builds a Server that dispatches edits to registry.Default.
func New(cfg config.Config, l *log.Logger) (*Server, error) {
	cache, err := lru.New[[sha256.Size]byte, result.ParseResult](cfg.Server.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	s := &Server{
		cfg:    cfg,
		log:    l,
		ops:    registry.Default,
		parser: parser.New(cfg.ParserOptions()),
		cache:  cache,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/operations", s.handleOperations)
		r.Post("/parse", s.handleParse)
		r.Post("/edit/{op}", s.handleEdit)
		r.Post("/ids", s.handleIDs)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// parse returns the ParseResult for text, from the cache when possible. The
// result depends only on the text and the server's fixed options.
func (s *Server) parse(text string) result.ParseResult {
	key := sha256.Sum256([]byte(text))
	if res, ok := s.cache.Get(key); ok {
		return res
	}
	d := s.parser.Parse(text)
	res := result.FromDiagram(d, graph.Project(d, s.cfg.GraphOptions()))
	s.cache.Add(key, res)
	return res
}
