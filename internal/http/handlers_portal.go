// Package httpx provides the HTTP surface of the hireloop portal: the shell
// routes that resolve and gate views, and the JSON API under /api.
package httpx

import (
	"net/http"
	"net/url"

	"github.com/hireloop/hireloop/internal/domain/view"
	"github.com/hireloop/hireloop/internal/service"
)

// PortalHandlers serves the portal shell: view resolution plus gating.
type PortalHandlers struct {
	Gate *service.Gate
}

// pageDescriptor is what the shell renders for an allowed view. LoadingMS is
// the cosmetic placeholder duration; the server never sleeps on it.
type pageDescriptor struct {
	View      string `json:"view"`
	Page      string `json:"page"`
	LoadingMS int64  `json:"loading_ms"`
}

// Resolve handles the shell's view resolution. The `view` query parameter is
// mapped through the routing table (unknown tokens resolve to home), gated
// against the visitor's session, and answered with either the page descriptor
// or a 303 redirect to the denial target. Resolution depends only on the
// parameter and the session, never on navigation history.
func (h *PortalHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	v := view.Parse(r.URL.Query().Get("view"))

	decision := h.Gate.Resolve(r.Context(), VisitorID(r.Context()), v)
	if !decision.Allowed {
		redirectToView(w, r, decision.Redirect)
		return
	}

	WriteJSON(w, http.StatusOK, pageDescriptor{
		View:      v.String(),
		Page:      string(decision.Page),
		LoadingMS: view.LoadingDelay.Milliseconds(),
	})
}

// redirectToView bounces the visitor to another view with a 303. Denial is
// silent navigation; no error body is written.
func redirectToView(w http.ResponseWriter, r *http.Request, v view.View) {
	target := "/?" + url.Values{"view": {v.String()}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func registerPortalRoutes(mux *http.ServeMux, h *PortalHandlers) {
	mux.HandleFunc("GET /{$}", h.Resolve)
	mux.HandleFunc("GET /portal/resolve", h.Resolve)
}
