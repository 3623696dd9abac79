package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/publicsuffix"

	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/ports"
)

// DefaultTokenTTL is the employer token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// ErrTokenRejected is returned when an employer token fails verification for
// any reason.
var ErrTokenRejected = errors.New("employer token rejected")

// EmployerRepository is the persistence surface EmployerService needs.
type EmployerRepository interface {
	Create(ctx context.Context, req *model.SignupEmployerRequest, passwordHash, websiteDomain string) (*model.Employer, error)
	GetByID(ctx context.Context, id string) (*model.Employer, error)
	GetByEmail(ctx context.Context, email string) (*model.Employer, error)
	Update(ctx context.Context, id string, req *model.UpdateEmployerRequest, websiteDomain *string) (*model.Employer, error)
}

// employerClaims are the JWT claims carried by an employer token.
type employerClaims struct {
	EmployerID string `json:"employer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// EmployerServiceOptions groups dependencies for EmployerService.
type EmployerServiceOptions struct {
	Repo     EmployerRepository
	Sessions *SessionService
	Validate *validator.Validate
	// TokenSecret signs employer tokens (HS256). Required.
	TokenSecret string
	// TokenTTL defaults to DefaultTokenTTL.
	TokenTTL time.Duration
	// SSO is the identity provider used when AUTH_MODE=oidc; nil in
	// password mode.
	SSO        ports.SSOProvider
	BcryptCost int
}

// EmployerService orchestrates employer signup, login, token issuing and
// verification. It implements ports.TokenVerifier: the gate calls
// VerifyEmployerToken on every protected employer page visit.
type EmployerService struct {
	repo        EmployerRepository
	sessions    *SessionService
	validate    *validator.Validate
	tokenSecret []byte
	tokenTTL    time.Duration
	sso         ports.SSOProvider
	bcryptCost  int
}

// NewEmployerService constructs a new EmployerService.
func NewEmployerService(opts EmployerServiceOptions) (*EmployerService, error) {
	if opts.TokenSecret == "" {
		return nil, errors.New("token secret is required")
	}
	v := opts.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &EmployerService{
		repo:        opts.Repo,
		sessions:    opts.Sessions,
		validate:    v,
		tokenSecret: []byte(opts.TokenSecret),
		tokenTTL:    ttl,
		sso:         opts.SSO,
		bcryptCost:  cost,
	}, nil
}

// Signup registers an employer account. The website's registrable domain is
// stored alongside for duplicate-company detection.
func (s *EmployerService) Signup(ctx context.Context, req *model.SignupEmployerRequest) (*model.Employer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, req, string(hash), websiteDomain(req.Website))
}

// LoginResult is a completed employer login: the signed token plus the
// profile payload cached in the session.
type LoginResult struct {
	Token    string
	Employer *model.Employer
}

// Login checks the credentials, issues a token and records the employer
// session, caching the company profile.
func (s *EmployerService) Login(ctx context.Context, visitorID string, req *model.EmployerLoginRequest) (*LoginResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate login: %w", err)
	}

	employer, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrEmployerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(employer.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.establishSession(ctx, visitorID, employer)
}

// establishSession issues a token and writes the employer session record.
func (s *EmployerService) establishSession(ctx context.Context, visitorID string, employer *model.Employer) (*LoginResult, error) {
	token, err := s.issueToken(employer)
	if err != nil {
		return nil, err
	}

	profile, err := employer.CompanyProfile().MarshalRaw()
	if err != nil {
		return nil, fmt.Errorf("marshal company profile: %w", err)
	}

	if sessErr := s.sessions.Login(ctx, visitorID, token, employer.ID, profile); sessErr != nil {
		return nil, sessErr
	}
	return &LoginResult{Token: token, Employer: employer}, nil
}

func (s *EmployerService) issueToken(employer *model.Employer) (string, error) {
	now := time.Now()
	claims := &employerClaims{
		EmployerID: employer.ID,
		Email:      employer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employer.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyEmployerToken checks the token signature and expiry and confirms the
// employer still exists. All failures fold into ErrTokenRejected so callers
// cannot leak why verification failed.
func (s *EmployerService) VerifyEmployerToken(ctx context.Context, token string) (ports.EmployerIdentity, error) {
	if token == "" {
		return ports.EmployerIdentity{}, ErrTokenRejected
	}

	claims := &employerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.tokenSecret, nil
	})
	if err != nil || !parsed.Valid || claims.EmployerID == "" {
		return ports.EmployerIdentity{}, ErrTokenRejected
	}

	if _, lookupErr := s.repo.GetByID(ctx, claims.EmployerID); lookupErr != nil {
		return ports.EmployerIdentity{}, ErrTokenRejected
	}

	return ports.EmployerIdentity{EmployerID: claims.EmployerID, Email: claims.Email}, nil
}

// SSOEnabled reports whether an SSO identity provider is configured.
func (s *EmployerService) SSOEnabled() bool { return s.sso != nil }

// BeginSSO starts the OIDC login flow. Only available in oidc auth mode.
func (s *EmployerService) BeginSSO(ctx context.Context, redirectURL string) (authURL, state, nonce string, err error) {
	if s.sso == nil {
		return "", "", "", errors.New("sso is not configured")
	}
	return s.sso.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
}

// CompleteSSO finishes the OIDC flow and logs the matching employer in. The
// identity email must belong to an existing employer account; SSO does not
// auto-provision.
func (s *EmployerService) CompleteSSO(ctx context.Context, visitorID string, in ports.ExchangeInput) (*LoginResult, error) {
	if s.sso == nil {
		return nil, errors.New("sso is not configured")
	}

	identity, err := s.sso.Exchange(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("sso exchange: %w", err)
	}

	employer, err := s.repo.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, data.ErrEmployerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.establishSession(ctx, visitorID, employer)
}

// Get retrieves an employer by id.
func (s *EmployerService) Get(ctx context.Context, id string) (*model.Employer, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial company-profile update. When the website changes,
// its registrable domain is recomputed.
func (s *EmployerService) Update(ctx context.Context, id string, req *model.UpdateEmployerRequest) (*model.Employer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate profile update: %w", err)
	}

	var domain *string
	if req.Website != nil {
		d := websiteDomain(*req.Website)
		domain = &d
	}
	return s.repo.Update(ctx, id, req, domain)
}

// CompanyProfileFromSession decodes the cached company profile payload.
func CompanyProfileFromSession(raw json.RawMessage) (model.CompanyProfile, error) {
	var p model.CompanyProfile
	if len(raw) == 0 {
		return p, errors.New("no cached company profile")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode company profile: %w", err)
	}
	return p, nil
}

// websiteDomain reduces a website URL to its registrable domain (eTLD+1),
// e.g. "https://jobs.acme.co.uk/careers" to "acme.co.uk". Unparseable input
// yields an empty string rather than an error.
func websiteDomain(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil {
		return ""
	}
	return domain
}
