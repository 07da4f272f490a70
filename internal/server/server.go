// Package server exposes the matching engine over a thin JSON HTTP API.
// Rendering stays with the clients; handlers only translate query parameters
// into engine calls and engine states into explicit response flags.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/catalog"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/marquee"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/offers"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/config"
)

// engineState is one immutable generation of everything derived from a
// source snapshot. Requests read whichever generation is current; reloads
// swap in a complete replacement.
type engineState struct {
	snapshot *source.Snapshot
	catalog  *catalog.Catalog
	engine   *offers.Engine
	chips    marquee.Chips
	search   *offers.SearchIndex
}

// Server owns the current engine state and the HTTP surface over it.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	loader  *source.Loader
	sources []source.Config
	aliases source.FieldAliases

	mu    sync.RWMutex
	state *engineState
}

// New creates a server. Call Reload once before serving.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	sources := source.DefaultSources()
	return &Server{
		cfg:     cfg,
		logger:  logger,
		loader:  source.NewLoader(cfg.Sources.Dir, sources, logger),
		sources: sources,
		aliases: source.DefaultAliases(),
	}
}

// Reload loads every source and rebuilds the catalog, offer engine, chip
// lists and search index as one new generation, then swaps it in. Per-source
// failures degrade to empty contributions inside the loader; Reload itself
// only degrades when the search index cannot be built.
func (s *Server) Reload(ctx context.Context) {
	snap := s.loader.Load(ctx)

	cat := catalog.Build(snap.Catalog, s.aliases)
	if cat.Empty() {
		s.logger.Warn("card catalog is empty", slog.String("load_id", snap.LoadID.String()))
	}

	search, err := offers.NewSearchIndex(snap, s.sources, s.aliases)
	if err != nil {
		s.logger.Error("offer search index rebuild failed", slog.Any("error", err))
		search = nil
	}

	next := &engineState{
		snapshot: snap,
		catalog:  cat,
		engine:   offers.NewEngine(snap, s.sources, s.aliases, s.logger),
		chips:    marquee.Harvest(snap, s.sources, s.aliases),
		search:   search,
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	// The previous generation is never closed here: requests that grabbed it
	// before the swap may still be reading its search index. Generations are
	// fully in-memory, so the old one is reclaimed once the last reader drops
	// its reference.
}

func (s *Server) current() *engineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handler builds the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/cards/suggest", s.handleSuggest)
	mux.HandleFunc("GET /v1/cards/chips", s.handleChips)
	mux.HandleFunc("GET /v1/offers", s.handleOffers)
	mux.HandleFunc("GET /v1/offers/search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.cfg.Observability.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	var h http.Handler = mux
	h = s.requestLogging(h)
	h = s.rateLimit(h)
	h = requestID(h)
	h = cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(h)
	return h
}
