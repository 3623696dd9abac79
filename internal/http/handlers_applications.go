package httpx

import (
	"net/http"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/service"
)

// ApplicationHandlers provides HTTP handlers for the application lifecycle.
type ApplicationHandlers struct {
	Svc *service.ApplicationService
}

// Apply files a new application for the logged-in candidate.
func (h *ApplicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.CreateApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.Apply(r.Context(), CandidateID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// statusUpdateRequest carries an employer-driven status transition.
type statusUpdateRequest struct {
	Status model.ApplicationStatus `json:"status"`
}

// UpdateStatus moves an application forward in the pipeline, or rejects it.
func (h *ApplicationHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, _ := Employer(r.Context())
	app, err := h.Svc.UpdateStatus(r.Context(), r.PathValue("id"), identity.EmployerID, req.Status)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// Sent lists the candidate's own applications.
func (h *ApplicationHandlers) Sent(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Svc.ListSent(r.Context(), CandidateID(r.Context()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

// Received lists applications across the employer's postings.
func (h *ApplicationHandlers) Received(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	apps, err := h.Svc.ListReceived(r.Context(), identity.EmployerID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

// ForJob lists applications to one of the employer's postings.
func (h *ApplicationHandlers) ForJob(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Svc.ListForJob(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

func registerApplicationRoutes(mux *http.ServeMux, h *ApplicationHandlers, sessions *service.SessionService, gateOpts service.GateOptions) {
	requireCandidate := RequireCandidate(sessions)
	mux.Handle("POST /api/applications", requireCandidate(http.HandlerFunc(h.Apply)))
	mux.Handle("GET /api/applications/sent", requireCandidate(http.HandlerFunc(h.Sent)))

	requireEmployer := RequireEmployer(gateOpts)
	mux.Handle("PATCH /api/applications/{id}/status", requireEmployer(http.HandlerFunc(h.UpdateStatus)))
	mux.Handle("GET /api/applications/received", requireEmployer(http.HandlerFunc(h.Received)))
	mux.Handle("GET /api/jobs/{id}/applications", requireEmployer(http.HandlerFunc(h.ForJob)))
}
