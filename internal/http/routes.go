package httpx

import (
	"log/slog"
	"net/http"

	"github.com/hireloop/hireloop/internal/ports"
	"github.com/hireloop/hireloop/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions     *service.SessionService
	Gate         *service.Gate
	Candidates   *service.CandidateService
	Employers    *service.EmployerService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Bench        *service.BenchService
	Files        *service.FileService
	Match        *service.MatchService

	// Verifier backs the employer-auth middleware; in practice the
	// EmployerService, but tests substitute doubles.
	Verifier ports.TokenVerifier

	// SSOEnabled registers the OIDC begin/callback routes.
	SSOEnabled bool

	// CookieDomain scopes the sid cookie. Empty uses the request domain.
	CookieDomain string

	Logger *slog.Logger
}

// NewRouter creates and configures the portal router. Every route runs
// behind the visitor cookie middleware so the session id is always present.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	gateOpts := service.GateOptions{
		Sessions: services.Sessions,
		Verifier: services.Verifier,
		Logger:   services.Logger,
	}

	registerPortalRoutes(mux, &PortalHandlers{Gate: services.Gate})
	registerSessionRoutes(mux, &SessionHandlers{Sessions: services.Sessions})
	registerCandidateRoutes(mux, &CandidateHandlers{Svc: services.Candidates}, services.Sessions, gateOpts)
	registerEmployerRoutes(mux, &EmployerHandlers{Svc: services.Employers}, gateOpts, services.SSOEnabled)
	registerJobRoutes(mux, &JobHandlers{Svc: services.Jobs}, gateOpts)
	registerApplicationRoutes(mux, &ApplicationHandlers{Svc: services.Applications}, services.Sessions, gateOpts)
	registerBenchRoutes(mux, &BenchHandlers{Svc: services.Bench}, gateOpts)
	registerFileRoutes(mux, &FileHandlers{Svc: services.Files}, services.Sessions, gateOpts)
	if services.Match != nil {
		registerMatchRoutes(mux, &MatchHandlers{Svc: services.Match}, gateOpts)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return VisitorCookie(services.CookieDomain)(mux)
}
