package httpx

import (
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/service"
)

// MatchHandlers provides HTTP handlers for candidate/job fit scoring.
type MatchHandlers struct {
	Svc *service.MatchService
}

// ScoreCandidate scores a registered candidate against a posting.
func (h *MatchHandlers) ScoreCandidate(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	candidateID := r.URL.Query().Get("candidate_id")
	if jobID == "" || candidateID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query",
			Err: errors.New("job_id and candidate_id are required")})
		return
	}

	result, err := h.Svc.ScoreCandidate(r.Context(), jobID, candidateID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// ScoreBench scores a bench record against a posting.
func (h *MatchHandlers) ScoreBench(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	benchID := r.URL.Query().Get("bench_id")
	if jobID == "" || benchID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query",
			Err: errors.New("job_id and bench_id are required")})
		return
	}

	result, err := h.Svc.ScoreBenchCandidate(r.Context(), jobID, benchID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func registerMatchRoutes(mux *http.ServeMux, h *MatchHandlers, gateOpts service.GateOptions) {
	requireEmployer := RequireEmployer(gateOpts)
	mux.Handle("GET /api/match/candidate", requireEmployer(http.HandlerFunc(h.ScoreCandidate)))
	mux.Handle("GET /api/match/bench", requireEmployer(http.HandlerFunc(h.ScoreBench)))
}
