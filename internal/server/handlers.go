package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/offers"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/suggest"
)

type suggestResponse struct {
	suggest.Result
	CatalogEmpty bool `json:"catalog_empty"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	if st == nil {
		s.writeError(w, http.StatusServiceUnavailable, "sources not loaded yet")
		return
	}

	q := r.URL.Query().Get("q")
	resp := suggestResponse{
		Result:       suggest.Suggest(q, st.catalog),
		CatalogEmpty: st.catalog.Empty(),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type offersResponse struct {
	Card string `json:"card"`
	Kind string `json:"kind"`
	offers.Result
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	if st == nil {
		s.writeError(w, http.StatusServiceUnavailable, "sources not loaded yet")
		return
	}

	name := r.URL.Query().Get("card")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "card parameter is required")
		return
	}

	kind := source.CardKind(r.URL.Query().Get("kind"))
	switch kind {
	case source.KindCredit, source.KindDebit:
	case "":
		kind = source.KindCredit
	default:
		s.writeError(w, http.StatusBadRequest, "kind must be credit or debit")
		return
	}

	card := offers.NewSelectedCard(name, kind)
	resp := offersResponse{
		Card:   card.Display,
		Kind:   string(card.Kind),
		Result: st.engine.OffersFor(card),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChips(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	if st == nil {
		s.writeError(w, http.StatusServiceUnavailable, "sources not loaded yet")
		return
	}
	s.writeJSON(w, http.StatusOK, st.chips)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	if st == nil || st.search == nil {
		s.writeError(w, http.StatusServiceUnavailable, "search index not available")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	hits, err := st.search.Search(q, limit)
	if err != nil {
		s.logger.Error("offer search failed", slog.Any("error", err))
		s.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	if st == nil {
		s.writeError(w, http.StatusServiceUnavailable, "sources not loaded yet")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"load_id":   st.snapshot.LoadID.String(),
		"loaded_at": st.snapshot.LoadedAt,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
