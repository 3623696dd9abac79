package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	mockauth "github.com/hireloop/hireloop/internal/mocks/auth"
	"github.com/hireloop/hireloop/internal/ports"
	"github.com/hireloop/hireloop/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVisitorCookie_IssuesCookieWhenMissing(t *testing.T) {
	var seenID string
	h := VisitorCookie("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = VisitorID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seenID)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, VisitorCookieName, c.Name)
	assert.Equal(t, seenID, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestVisitorCookie_ReusesExistingCookie(t *testing.T) {
	var seenID string
	h := VisitorCookie("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = VisitorID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookieName, Value: "visitor-42"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "visitor-42", seenID)
	assert.Empty(t, rr.Result().Cookies(), "no new cookie for a returning visitor")
}

func TestRequireCandidate_RejectsWithoutLogin(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})

	// Signed up but not logged in is not enough.
	require.NoError(t, sessions.MarkSignedUp(context.Background(), "v1", "ada@example.com"))

	h := RequireCandidate(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/me", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "authentication_required")
}

func TestRequireCandidate_AdmitsLoggedIn(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})

	ctx := context.Background()
	require.NoError(t, sessions.MarkSignedUp(ctx, "v1", "ada@example.com"))
	require.NoError(t, sessions.MarkLoggedIn(ctx, "v1", "ada@example.com", "cand-1"))

	var gotID string
	h := RequireCandidate(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = CandidateID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/me", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "cand-1", gotID)
}

func TestRequireEmployer_NoTokenRejectsWithoutVerifying(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})
	verifier := mockauth.NewMockTokenVerifier("emp-1", "owner@acme.example")

	h := RequireEmployer(service.GateOptions{
		Sessions: sessions,
		Verifier: verifier,
		Logger:   discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "authentication_required")
	assert.Zero(t, verifier.Calls())
}

func TestRequireEmployer_BearerHeader(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})
	verifier := mockauth.NewMockTokenVerifier("emp-1", "owner@acme.example")

	var got ports.EmployerIdentity
	h := RequireEmployer(service.GateOptions{
		Sessions: sessions,
		Verifier: verifier,
		Logger:   discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = Employer(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	req.Header.Set("Authorization", "Bearer tok-abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "emp-1", got.EmployerID)
	assert.Equal(t, 1, verifier.Calls())
}

func TestRequireEmployer_SessionTokenFallback(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})
	verifier := mockauth.NewMockTokenVerifier("emp-1", "owner@acme.example")

	ctx := context.Background()
	require.NoError(t, sessions.Login(ctx, "v1", "tok-session", "emp-1", nil))

	h := RequireEmployer(service.GateOptions{
		Sessions: sessions,
		Verifier: verifier,
		Logger:   discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, verifier.Calls())
}

func TestRequireEmployer_RejectedToken(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})
	verifier := mockauth.NewMockTokenVerifier("emp-1", "owner@acme.example")
	verifier.Err = errors.New("revoked")

	h := RequireEmployer(service.GateOptions{
		Sessions: sessions,
		Verifier: verifier,
		Logger:   discardLogger(),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
	req = req.WithContext(SetVisitorID(req.Context(), "v1"))
	req.Header.Set("Authorization", "Bearer tok-abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "token_rejected")
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer tok-1", "tok-1"},
		{"lowercase scheme", "bearer tok-1", "tok-1"},
		{"missing", "", ""},
		{"wrong scheme", "Basic dXNlcg==", ""},
		{"empty token", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(r))
		})
	}
}

func TestRecover_Returns500(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// Session records surviving middleware round-trips must keep the wire keys
// the SPA shell reads.
func TestSessionRecordSurvivesStore(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store})

	ctx := context.Background()
	require.NoError(t, sessions.Login(ctx, "v1", "tok-1", "emp-1", nil))

	rec, err := sessions.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, domainsession.RoleEmployer, rec.Role())
	assert.True(t, rec.HasEmployerToken())
}
