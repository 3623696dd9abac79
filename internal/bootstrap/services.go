package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/hireloop/hireloop/config"
	"github.com/hireloop/hireloop/internal/adapters/matchproxy"
	"github.com/hireloop/hireloop/internal/adapters/oidc"
	"github.com/hireloop/hireloop/internal/adapters/pdftext"
	redisadapter "github.com/hireloop/hireloop/internal/adapters/redis"
	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/ports"
	"github.com/hireloop/hireloop/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions     *service.SessionService
	Gate         *service.Gate
	Candidates   *service.CandidateService
	Employers    *service.EmployerService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Bench        *service.BenchService
	Files        *service.FileService
	Match        *service.MatchService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	CandidateRepo   *data.CandidateRepo
	EmployerRepo    *data.EmployerRepo
	JobRepo         *data.JobRepo
	ApplicationRepo *data.ApplicationRepo
	BenchRepo       *data.BenchRepo
	FileRepo        *data.FileRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		CandidateRepo:   data.NewCandidateRepo(db),
		EmployerRepo:    data.NewEmployerRepo(db),
		JobRepo:         data.NewJobRepo(db),
		ApplicationRepo: data.NewApplicationRepo(db),
		BenchRepo:       data.NewBenchRepo(db),
		FileRepo:        data.NewFileRepo(db),
	}
}

// buildSSOProvider configures the OIDC provider for employer single sign-on.
// Returns nil when the auth mode is password or the OIDC config is incomplete.
//
//nolint:ireturn // the provider is consumed through its port.
func buildSSOProvider(cfg config.AuthConfig, logger *slog.Logger) ports.SSOProvider {
	if cfg.Mode != config.AuthModeOIDC {
		return nil
	}

	o := cfg.OIDC
	if o.DiscoveryURL == "" || o.ClientID == "" || o.ClientSecret == "" {
		if logger != nil {
			logger.Warn("AuthModeOIDC selected but required config missing; SSO disabled",
				"discovery_url_empty", o.DiscoveryURL == "",
				"client_id_empty", o.ClientID == "",
				"client_secret_empty", o.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Scope:        o.Scope,
		DiscoveryURL: o.DiscoveryURL,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create OIDC provider, SSO disabled", "error", err)
		}
		return nil
	}

	return prov
}

// buildMatchScorer configures the matching proxy client. Returns nil when no
// proxy base URL is configured.
//
//nolint:ireturn // the client is consumed through its port.
func buildMatchScorer(cfg config.MatchConfig, logger *slog.Logger) ports.MatchScorer {
	if cfg.BaseURL == "" {
		return nil
	}

	client, err := matchproxy.NewClient(matchproxy.ClientOptions{
		BaseURL:   cfg.BaseURL,
		ScorePath: cfg.ScorePath,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create match proxy client, matching disabled", "error", err)
		}
		return nil
	}

	return client
}

// BuildServices constructs the full service container from shared
// infrastructure. Services share one validator instance.
func BuildServices(deps ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)
	validate := validator.New(validator.WithRequiredStructEnabled())

	sessionStore := redisadapter.NewSessionStoreWithOptions(
		deps.RedisClient, "session:", cfg.Redis.SessionTTL)
	sessions := service.NewSessionService(service.SessionServiceOptions{
		Store: sessionStore,
	})

	employers, err := service.NewEmployerService(service.EmployerServiceOptions{
		Repo:        repos.EmployerRepo,
		Sessions:    sessions,
		Validate:    validate,
		TokenSecret: cfg.Auth.TokenSecret,
		TokenTTL:    cfg.Auth.TokenTTL,
		SSO:         buildSSOProvider(cfg.Auth, logger),
		BcryptCost:  cfg.Auth.BcryptCost,
	})
	if err != nil {
		return nil, fmt.Errorf("create employer service: %w", err)
	}

	gate := service.NewGate(service.GateOptions{
		Sessions: sessions,
		Verifier: employers,
		Logger:   logger,
	})

	candidates := service.NewCandidateService(service.CandidateServiceOptions{
		Repo:       repos.CandidateRepo,
		Sessions:   sessions,
		Validate:   validate,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	jobs := service.NewJobService(service.JobServiceOptions{
		Repo:     repos.JobRepo,
		Validate: validate,
	})

	applications := service.NewApplicationService(service.ApplicationServiceOptions{
		Repo:     repos.ApplicationRepo,
		Validate: validate,
	})

	bench := service.NewBenchService(service.BenchServiceOptions{
		Repo:      repos.BenchRepo,
		Files:     repos.FileRepo,
		Extractor: pdftext.NewExtractor(),
		Validate:  validate,
		Logger:    logger,
	})

	files := service.NewFileService(service.FileServiceOptions{
		Repo: repos.FileRepo,
	})

	var match *service.MatchService
	if scorer := buildMatchScorer(cfg.Match, logger); scorer != nil {
		match = service.NewMatchService(service.MatchServiceOptions{
			Jobs:       repos.JobRepo,
			Candidates: repos.CandidateRepo,
			Bench:      repos.BenchRepo,
			Scorer:     scorer,
		})
	}

	return &ServiceContainer{
		Sessions:     sessions,
		Gate:         gate,
		Candidates:   candidates,
		Employers:    employers,
		Jobs:         jobs,
		Applications: applications,
		Bench:        bench,
		Files:        files,
		Match:        match,
	}, nil
}
