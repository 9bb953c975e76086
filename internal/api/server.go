package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baxromumarov/job-capture/internal/core"
	"github.com/baxromumarov/job-capture/internal/store"
)

const maxBodyBytes = 10 << 20

// OpportunityStore is the read/delete side of the opportunity list.
type OpportunityStore interface {
	ListOpportunities(ctx context.Context, q store.OpportunityQuery) ([]store.Opportunity, error)
	GetOpportunity(ctx context.Context, id string) (store.Opportunity, error)
	DeleteOpportunity(ctx context.Context, id string) error
}

type Server struct {
	router  *chi.Mux
	capture *core.CaptureService
	store   OpportunityStore
}

func NewServer(capture *core.CaptureService, store OpportunityStore) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		capture: capture,
		store:   store,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/sites", s.handleListSites)
	s.router.Post("/messages", s.handleMessage)
	s.router.Post("/extract", s.handleExtract)

	s.router.Route("/opportunities", func(r chi.Router) {
		r.Get("/", s.handleListOpportunities)
		r.Post("/", s.handleCreateOpportunity)
		r.Get("/{id}", s.handleGetOpportunity)
		r.Delete("/{id}", s.handleDeleteOpportunity)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
