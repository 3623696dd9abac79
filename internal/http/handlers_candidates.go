package httpx

import (
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/service"
)

// CandidateHandlers provides HTTP handlers for candidate accounts.
type CandidateHandlers struct {
	Svc *service.CandidateService
}

// Signup handles step 1 of candidate registration.
func (h *CandidateHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupCandidateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.Signup(r.Context(), VisitorID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, candidate)
}

// Login handles candidate logins.
func (h *CandidateHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CandidateLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.Login(r.Context(), VisitorID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// CompleteSetup finishes the profile-setup wizard. The session is downgraded
// afterwards: the candidate logs in fresh to proceed.
func (h *CandidateHandlers) CompleteSetup(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path",
			Err: errors.New("candidate id is required")})
		return
	}

	var req model.SetupProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.CompleteSetup(r.Context(), VisitorID(r.Context()), candidateID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Me returns the logged-in candidate's own record.
func (h *CandidateHandlers) Me(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Svc.Get(r.Context(), CandidateID(r.Context()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Update applies a partial profile update to the logged-in candidate.
func (h *CandidateHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCandidateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.Svc.Update(r.Context(), CandidateID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

// Search lists setup-complete candidates for employer browsing.
func (h *CandidateHandlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.CandidateFilter{
		Skill:    q.Get("skill"),
		Location: q.Get("location"),
		Query:    q.Get("q"),
		Limit:    parseIntQuery(r, "limit", 0),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	candidates, err := h.Svc.Search(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, candidates)
}

func registerCandidateRoutes(mux *http.ServeMux, h *CandidateHandlers, sessions *service.SessionService, gateOpts service.GateOptions) {
	mux.HandleFunc("POST /api/candidates/signup", h.Signup)
	mux.HandleFunc("POST /api/candidates/login", h.Login)
	mux.HandleFunc("POST /api/candidates/{id}/setup", h.CompleteSetup)

	requireCandidate := RequireCandidate(sessions)
	mux.Handle("GET /api/candidates/me", requireCandidate(http.HandlerFunc(h.Me)))
	mux.Handle("PATCH /api/candidates/me", requireCandidate(http.HandlerFunc(h.Update)))

	mux.Handle("GET /api/candidates", RequireEmployer(gateOpts)(http.HandlerFunc(h.Search)))
}
