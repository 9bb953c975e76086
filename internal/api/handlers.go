package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baxromumarov/job-capture/internal/core"
	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/store"
)

const (
	ActionGetCurrentJobData = "getCurrentJobData"
	ActionSaveJobData       = "saveJobData"
)

// MessageRequest is the action-tagged envelope page clients send.
type MessageRequest struct {
	Action string `json:"action"`
	URL    string `json:"url"`
	HTML   string `json:"html,omitempty"`
}

type MessageResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type ExtractRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Error: "Invalid request body"})
		return
	}

	switch req.Action {
	case ActionGetCurrentJobData, ActionSaveJobData:
	default:
		respondJSON(w, http.StatusBadRequest, MessageResponse{Error: "Unknown action: " + req.Action})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Error: "URL is required"})
		return
	}

	c, err := s.capture.Extract(r.Context(), req.URL, []byte(req.HTML))
	if err != nil {
		respondJSON(w, captureStatus(err), MessageResponse{Error: err.Error()})
		return
	}

	if req.Action == ActionGetCurrentJobData {
		respondJSON(w, http.StatusOK, MessageResponse{Success: true, Data: c.Job})
		return
	}

	if c.Job.IsEmpty() {
		respondJSON(w, http.StatusUnprocessableEntity, MessageResponse{Error: "No job data found"})
		return
	}
	o, err := s.capture.Save(r.Context(), c)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, MessageResponse{Error: "Failed to save opportunity: " + err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Data: o})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	c, err := s.capture.Extract(r.Context(), req.URL, []byte(req.HTML))
	if err != nil {
		respondError(w, captureStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": s.capture.Registry().Names(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func (s *Server) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)

	items, err := s.store.ListOpportunities(r.Context(), store.OpportunityQuery{
		Keywords: core.Keywords(r.URL.Query().Get("q")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch opportunities: "+err.Error())
		return
	}
	// Return empty list if nil to be JSON friendly
	if items == nil {
		items = []store.Opportunity{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	c, err := s.capture.Extract(r.Context(), req.URL, []byte(req.HTML))
	if err != nil {
		respondError(w, captureStatus(err), err.Error())
		return
	}
	if c.Job.IsEmpty() {
		respondError(w, http.StatusUnprocessableEntity, "No job data found")
		return
	}

	o, err := s.capture.Save(r.Context(), c)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save opportunity: "+err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (s *Server) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.GetOpportunity(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Opportunity not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch opportunity: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteOpportunity(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Opportunity not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete opportunity: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// captureStatus maps capture failures: missing markup without a fetcher is
// the caller's fault, anything else came from the remote page.
func captureStatus(err error) int {
	if errors.Is(err, core.ErrNoFetcher) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	q := r.URL.Query()
	limit := defaultLimit
	offset := 0

	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
