package httpx

import (
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/ports"
	"github.com/hireloop/hireloop/internal/service"
)

// EmployerHandlers provides HTTP handlers for employer accounts, including
// the optional SSO flow.
type EmployerHandlers struct {
	Svc *service.EmployerService
}

// Signup registers an employer account.
func (h *EmployerHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupEmployerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employer, err := h.Svc.Signup(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, employer)
}

// loginResponse is an employer login answer: the token plus the profile.
type loginResponse struct {
	Token    string          `json:"token"`
	Employer *model.Employer `json:"employer"`
}

// Login checks credentials, issues a token and records the employer session.
func (h *EmployerHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.EmployerLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), VisitorID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{Token: result.Token, Employer: result.Employer})
}

// BeginSSO starts the OIDC login flow and redirects to the provider. State
// and nonce travel in short-lived cookies for the callback to check.
func (h *EmployerHandlers) BeginSSO(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirect_url")
	authURL, state, nonce, err := h.Svc.BeginSSO(r.Context(), redirectURL)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	setFlowCookie(w, "sso_state", state)
	setFlowCookie(w, "sso_nonce", nonce)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// CompleteSSO handles the provider callback and logs the employer in.
func (h *EmployerHandlers) CompleteSSO(w http.ResponseWriter, r *http.Request) {
	state, err := flowCookie(r, "sso_state")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state",
			Err: errors.New("missing sso state")})
		return
	}
	if q := r.URL.Query().Get("state"); q == "" || q != state {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state",
			Err: errors.New("state mismatch")})
		return
	}
	nonce, err := flowCookie(r, "sso_nonce")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state",
			Err: errors.New("missing sso nonce")})
		return
	}

	clearFlowCookie(w, "sso_state")
	clearFlowCookie(w, "sso_nonce")

	result, err := h.Svc.CompleteSSO(r.Context(), VisitorID(r.Context()), ports.ExchangeInput{
		Code:  r.URL.Query().Get("code"),
		State: state,
		Nonce: nonce,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{Token: result.Token, Employer: result.Employer})
}

// verifyResponse reports the principal behind a successfully checked token.
type verifyResponse struct {
	EmployerID string `json:"employer_id"`
	Email      string `json:"email,omitempty"`
}

// Verify answers with the identity behind the presented employer token. The
// actual check (signature, expiry, employer still exists) runs in the
// employer-auth middleware; a request only reaches here when it passed.
func (h *EmployerHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	WriteJSON(w, http.StatusOK, verifyResponse{
		EmployerID: identity.EmployerID,
		Email:      identity.Email,
	})
}

// Me returns the verified employer's own record.
func (h *EmployerHandlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := Employer(r.Context())
	employer, err := h.Svc.Get(r.Context(), identity.EmployerID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, employer)
}

// Update applies a partial company-profile update.
func (h *EmployerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEmployerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, _ := Employer(r.Context())
	employer, err := h.Svc.Update(r.Context(), identity.EmployerID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, employer)
}

// Get returns an employer's public profile.
func (h *EmployerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	employer, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, employer.CompanyProfile())
}

// ssoFlowCookieMaxAge bounds how long an in-flight SSO handshake stays valid.
const ssoFlowCookieMaxAge = 600

func setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   ssoFlowCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func flowCookie(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", errors.New("missing cookie " + name)
	}
	return c.Value, nil
}

func clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1})
}

func registerEmployerRoutes(mux *http.ServeMux, h *EmployerHandlers, gateOpts service.GateOptions, ssoEnabled bool) {
	mux.HandleFunc("POST /api/employers/signup", h.Signup)
	mux.HandleFunc("POST /api/employers/login", h.Login)
	if ssoEnabled {
		mux.HandleFunc("GET /api/employers/sso/begin", h.BeginSSO)
		mux.HandleFunc("GET /api/employers/sso/callback", h.CompleteSSO)
	}

	requireEmployer := RequireEmployer(gateOpts)
	mux.Handle("GET /api/employers/verify", requireEmployer(http.HandlerFunc(h.Verify)))
	mux.Handle("GET /api/employers/me", requireEmployer(http.HandlerFunc(h.Me)))
	mux.Handle("PATCH /api/employers/me", requireEmployer(http.HandlerFunc(h.Update)))

	mux.HandleFunc("GET /api/employers/{id}", h.Get)
}
