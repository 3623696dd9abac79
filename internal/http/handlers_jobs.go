package httpx

import (
	"net/http"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/service"
)

// JobHandlers provides HTTP handlers for job postings.
type JobHandlers struct {
	Svc *service.JobService
}

// Create posts a new open job owned by the verified employer.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, _ := Employer(r.Context())
	job, err := h.Svc.Create(r.Context(), identity.EmployerID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// Get returns one posting.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Update applies a partial update to a posting the employer owns.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, _ := Employer(r.Context())
	job, err := h.Svc.Update(r.Context(), r.PathValue("id"), identity.EmployerID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Delete removes a posting the employer owns.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), identity.EmployerID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search lists open postings for the public job views.
func (h *JobHandlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := parseLimitOffset(r, 50, 100)
	filter := model.JobFilter{
		Title:    q.Get("title"),
		Location: q.Get("location"),
		Skill:    q.Get("skill"),
		Limit:    limit,
		Offset:   offset,
	}

	jobs, err := h.Svc.Search(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// Mine lists all of the verified employer's postings, open and closed.
func (h *JobHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	limit, offset := parseLimitOffset(r, 50, 100)

	jobs, err := h.Svc.ListByEmployer(r.Context(), identity.EmployerID, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, gateOpts service.GateOptions) {
	mux.HandleFunc("GET /api/jobs", h.Search)
	mux.HandleFunc("GET /api/jobs/{id}", h.Get)

	requireEmployer := RequireEmployer(gateOpts)
	mux.Handle("POST /api/jobs", requireEmployer(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/jobs/{id}", requireEmployer(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/jobs/{id}", requireEmployer(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/employers/me/jobs", requireEmployer(http.HandlerFunc(h.Mine)))
}
