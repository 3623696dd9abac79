package httpx

import (
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/service"
)

// BenchHandlers provides HTTP handlers for employer bench rosters.
type BenchHandlers struct {
	Svc *service.BenchService
}

// maxRosterBytes caps the uploaded CSV roster.
const maxRosterBytes = 4 << 20

// Create adds one candidate to the employer's bench.
func (h *BenchHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBenchCandidateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, _ := Employer(r.Context())
	bc, err := h.Svc.Create(r.Context(), identity.EmployerID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, bc)
}

// BulkUpload ingests a multipart CSV roster. Per-row failures land in the
// result payload; only a broken roster as a whole fails the request.
func (h *BenchHandlers) BulkUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRosterBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	file, _, err := r.FormFile("roster")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_roster",
			Err: errors.New("roster file is required")})
		return
	}
	defer file.Close()

	visibility := model.BenchVisibility(r.FormValue("visibility"))
	identity, _ := Employer(r.Context())
	result, err := h.Svc.BulkUpload(r.Context(), identity.EmployerID, file, visibility)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_roster", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Get returns one bench record.
func (h *BenchHandlers) Get(w http.ResponseWriter, r *http.Request) {
	bc, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bc)
}

// Delete removes a bench record the employer owns.
func (h *BenchHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), identity.EmployerID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Internal lists the employer's own bench.
func (h *BenchHandlers) Internal(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	limit, offset := parseLimitOffset(r, 50, 100)

	out, err := h.Svc.ListInternal(r.Context(), identity.EmployerID, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// External lists externally visible bench candidates. Public.
func (h *BenchHandlers) External(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 100)

	out, err := h.Svc.ListExternal(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// OtherCompanies lists external bench candidates owned by other employers.
func (h *BenchHandlers) OtherCompanies(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	limit, offset := parseLimitOffset(r, 50, 100)

	out, err := h.Svc.ListOtherCompanies(r.Context(), identity.EmployerID, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// Search matches the employer's bench against a free-text query.
func (h *BenchHandlers) Search(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	limit, offset := parseLimitOffset(r, 50, 100)

	out, err := h.Svc.Search(r.Context(), identity.EmployerID, r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func registerBenchRoutes(mux *http.ServeMux, h *BenchHandlers, gateOpts service.GateOptions) {
	mux.HandleFunc("GET /api/bench/external", h.External)

	requireEmployer := RequireEmployer(gateOpts)
	mux.Handle("POST /api/bench", requireEmployer(http.HandlerFunc(h.Create)))
	mux.Handle("POST /api/bench/bulk", requireEmployer(http.HandlerFunc(h.BulkUpload)))
	mux.Handle("GET /api/bench", requireEmployer(http.HandlerFunc(h.Internal)))
	mux.Handle("GET /api/bench/search", requireEmployer(http.HandlerFunc(h.Search)))
	mux.Handle("GET /api/bench/other-companies", requireEmployer(http.HandlerFunc(h.OtherCompanies)))
	mux.Handle("GET /api/bench/{id}", requireEmployer(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/bench/{id}", requireEmployer(http.HandlerFunc(h.Delete)))
}
