package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/service"
)

// FileHandlers provides HTTP handlers for document uploads and retrieval.
type FileHandlers struct {
	Svc *service.FileService
}

// Upload stores a multipart document (resume, logo) owned by the caller. The
// owner is whichever authenticated principal made the request.
func (h *FileHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := CandidateID(r.Context())
	if identity, ok := Employer(r.Context()); ok {
		ownerID = identity.EmployerID
	}

	if err := r.ParseMultipartForm(model.MaxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_file",
			Err: errors.New("file is required")})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, model.MaxUploadBytes+1))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "read_failed", Err: err})
		return
	}

	stored, err := h.Svc.Upload(r.Context(), ownerID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "upload_rejected", Err: err})
		return
	}
	WriteJSON(w, http.StatusCreated, stored)
}

// Download streams a stored document back with its original content type.
func (h *FileHandlers) Download(w http.ResponseWriter, r *http.Request) {
	stored, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", stored.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(stored.SizeBytes, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+stored.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(stored.Data)
}

// Delete removes a document the caller owns.
func (h *FileHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := CandidateID(r.Context())
	if identity, ok := Employer(r.Context()); ok {
		ownerID = identity.EmployerID
	}

	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), ownerID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func registerFileRoutes(mux *http.ServeMux, h *FileHandlers, sessions *service.SessionService, gateOpts service.GateOptions) {
	auth := eitherPrincipal(sessions, gateOpts)
	mux.Handle("POST /api/files", auth(http.HandlerFunc(h.Upload)))
	mux.Handle("DELETE /api/files/{id}", auth(http.HandlerFunc(h.Delete)))
	mux.HandleFunc("GET /api/files/{id}", h.Download)
}

// eitherPrincipal admits a logged-in candidate or a verified employer. The
// candidate check runs first because it is a local session read; the employer
// path costs a verifier call.
func eitherPrincipal(sessions *service.SessionService, gateOpts service.GateOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := sessions.Get(r.Context(), VisitorID(r.Context()))
			if err == nil && rec.IsLoggedIn() {
				next.ServeHTTP(w, r.WithContext(SetCandidateID(r.Context(), rec.UserID)))
				return
			}
			RequireEmployer(gateOpts)(next).ServeHTTP(w, r)
		})
	}
}
