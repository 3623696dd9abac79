package httpx

import (
	"net/http"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	"github.com/hireloop/hireloop/internal/domain/view"
	"github.com/hireloop/hireloop/internal/service"
)

// SessionHandlers serves session status and logout.
type SessionHandlers struct {
	Sessions *service.SessionService
}

// sessionStatus is the public view of a session record. The raw token never
// leaves the server; only its presence is reported.
type sessionStatus struct {
	Role     domainsession.Role `json:"role"`
	SignedUp bool               `json:"signed_up"`
	LoggedIn bool               `json:"logged_in"`
	Email    string             `json:"email,omitempty"`
	HasToken bool               `json:"has_token"`
}

// Status reports the visitor's current authentication state.
func (h *SessionHandlers) Status(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Sessions.Get(r.Context(), VisitorID(r.Context()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sessionStatus{
		Role:     rec.Role(),
		SignedUp: rec.SignedUp,
		LoggedIn: rec.IsLoggedIn(),
		Email:    rec.Email,
		HasToken: rec.HasEmployerToken(),
	})
}

// Logout clears every session key and bounces the visitor to the employer
// login view. Idempotent: logging out an empty session redirects the same way.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), VisitorID(r.Context())); err != nil {
		WriteServiceError(w, err)
		return
	}
	redirectToView(w, r, view.ViewEmployerLogin)
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("GET /session", h.Status)
	mux.HandleFunc("POST /session/logout", h.Logout)
}
