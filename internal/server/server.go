// Package server exposes the operational HTTP API served next to the bot:
// a health endpoint for the hosting platform plus read-only access to the
// EVM calculator and the lesson catalog.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pm-tutor-bot/internal/catalog"
	"pm-tutor-bot/internal/config"
	"pm-tutor-bot/internal/db"
	"pm-tutor-bot/internal/evm"
	"pm-tutor-bot/internal/types"
)

type Server struct {
	router   *chi.Mux
	catalog  *catalog.Catalog
	database *db.DB // nil when no DB_URL configured
}

func NewServer(cfg config.Config, cat *catalog.Catalog, database *db.DB) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{router: r, catalog: cat, database: database}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/calc/evm", s.handleCalcEVM)
	s.router.Get("/api/topics", s.handleTopics)
	s.router.Get("/api/lessons/{topic}", s.handleLesson)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.database != nil {
		if err := s.database.HealthCheck(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		} else {
			status["database"] = "ok"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleCalcEVM(w http.ResponseWriter, r *http.Request) {
	var req types.EvmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in := evm.Inputs{PV: req.PV, EV: req.EV, AC: req.AC, BAC: req.BAC}
	res := evm.Calc(in)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.EvmResponse{
		SPI:    res.SPI,
		CPI:    res.CPI,
		EAC:    res.EAC,
		Report: evm.FormatReport(in, res),
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.TopicsResponse{Topics: s.catalog.Topics()})
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "topic")
	canonical, ok := s.catalog.Canonical(raw)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown topic")
		return
	}
	card, _ := s.catalog.Get(canonical)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.LessonResponse{Topic: canonical, Card: card})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
