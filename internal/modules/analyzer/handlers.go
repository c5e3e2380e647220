package analyzer

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for the analyzer module
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new analyzer handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "analyzer_handlers").Logger(),
	}
}

// AnalyzeRequest represents a request to analyze a SQL query
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// AnalyzeResponse represents the response from analysis
type AnalyzeResponse struct {
	Report *Report `json:"report,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// HandleAnalyze handles POST /api/queries/analyze
// Runs the full extraction and quantum preparation pipeline over one query.
// The SQL itself is never rejected; only an unreadable request body is.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode analyze request")
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report := h.service.Analyze(req.Query)

	h.writeJSON(w, AnalyzeResponse{Report: &report})
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errMsg := message
	h.writeJSON(w, AnalyzeResponse{Error: &errMsg})
}
