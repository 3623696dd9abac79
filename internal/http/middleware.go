package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop/internal/service"
)

// VisitorCookieName is the cookie carrying the opaque visitor id that keys
// the session record.
const VisitorCookieName = "sid"

// visitorCookieMaxAge matches the session TTL in the redis store.
const visitorCookieMaxAge = 7 * 24 * time.Hour

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// VisitorCookie ensures every request carries a visitor id: an existing sid
// cookie is reused, otherwise a fresh id is issued and set. The id lands in
// the request context for handlers and the gate.
func VisitorCookie(cookieDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if c, err := r.Cookie(VisitorCookieName); err == nil && c.Value != "" {
				visitorID = c.Value
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookieName,
					Value:    visitorID,
					Path:     "/",
					Domain:   cookieDomain,
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(SetVisitorID(r.Context(), visitorID)))
		})
	}
}

// RequireCandidate returns a middleware admitting only requests whose session
// records a completed candidate login. The candidate id lands in the context.
func RequireCandidate(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := sessions.Get(r.Context(), VisitorID(r.Context()))
			if err != nil || !rec.IsLoggedIn() {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("candidate login required"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetCandidateID(r.Context(), rec.UserID)))
		})
	}
}

// RequireEmployer returns a middleware admitting only requests carrying a
// verifiable employer token, either as a Bearer header or in the session
// record. The verified identity lands in the context.
func RequireEmployer(opts service.GateOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				rec, err := opts.Sessions.Get(r.Context(), VisitorID(r.Context()))
				if err == nil {
					token = rec.Token
				}
			}
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("employer token required"),
				})
				return
			}

			identity, err := opts.Verifier.VerifyEmployerToken(r.Context(), token)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "token_rejected",
					Err:     errors.New("employer token rejected"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetEmployer(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
