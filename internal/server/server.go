package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"SectorPulse/internal/domain"
	"SectorPulse/internal/usecase"
)

const defaultArticleLimit = 50

// Server exposes the heatmap engine over HTTP. Routing, parameter parsing,
// and JSON encoding live here; all policy stays in the engine.
type Server struct {
	heatmap *usecase.Heatmap
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New registers all routes against a fresh mux.
func New(heatmap *usecase.Heatmap, logger *slog.Logger) *Server {
	s := &Server{
		heatmap: heatmap,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/news/heatmap", s.handleHeatmap)
	s.mux.HandleFunc("GET /api/news/articles", s.handleArticles)
	s.mux.HandleFunc("GET /api/news/sectors", s.handleSectors)
	s.mux.HandleFunc("GET /api/news/usage", s.handleUsage)

	return s
}

// Handler returns the root handler for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "SectorPulse news analysis API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sectorpulse",
	})
}

type heatmapResponse struct {
	Success         bool                 `json:"success"`
	Heatmap         domain.HeatmapResult `json:"heatmap_data"`
	TotalArticles   int                  `json:"total_articles"`
	SectorsAnalyzed []string             `json:"sectors_analyzed"`
	LastUpdated     *time.Time           `json:"last_updated"`
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultArticleLimit)
	forceRefresh := queryBool(r, "refresh")

	var sectors []string
	if raw := r.URL.Query().Get("sectors"); raw != "" {
		for _, sector := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(sector); trimmed != "" {
				sectors = append(sectors, trimmed)
			}
		}
	}

	result, err := s.heatmap.Generate(r.Context(), limit, sectors, forceRefresh)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, heatmapResponse{
		Success:         true,
		Heatmap:         result,
		TotalArticles:   result.TotalArticles,
		SectorsAnalyzed: result.Sectors,
		LastUpdated:     s.heatmap.Usage().LastUpdate,
	})
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	articles, err := s.heatmap.Articles(r.Context(), limit, queryBool(r, "refresh"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"count":    len(articles),
	})
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sectors": s.heatmap.Sectors(),
	})
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.heatmap.Usage())
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
	}

	if s.logger != nil {
		s.logger.Error("request failed", "status", status, "error", err)
	}

	s.writeJSON(w, status, map[string]any{
		"success":       false,
		"error_message": err.Error(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && s.logger != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func queryBool(r *http.Request, key string) bool {
	value, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return value
}
