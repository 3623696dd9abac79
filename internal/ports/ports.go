// Package ports defines interfaces (hexagonal ports) for session persistence,
// token verification and SSO. Implementations live in internal/adapters and
// internal/service; orchestration in internal/service.
package ports

import (
	"context"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
)

// SessionStore persists and retrieves visitor session records, keyed by the
// opaque visitor id carried in the sid cookie.
type SessionStore interface {
	Save(ctx context.Context, visitorID string, rec domainsession.Record) error
	Get(ctx context.Context, visitorID string) (domainsession.Record, error)
	Delete(ctx context.Context, visitorID string) error
}

// EmployerIdentity is the verified principal behind an employer token.
type EmployerIdentity struct {
	EmployerID string
	Email      string
}

// TokenVerifier checks an employer credential against the backing store. The
// gate folds every failure (bad signature, expiry, unknown employer, transport
// error) into a denial; callers must not retry.
type TokenVerifier interface {
	VerifyEmployerToken(ctx context.Context, token string) (EmployerIdentity, error)
}

// BeginInput carries inputs for initiating an SSO flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOIdentity is the principal returned by an identity provider.
type SSOIdentity struct {
	Email    string
	FullName string
}

// SSOProvider initiates and completes an employer single-sign-on flow against
// an IdP. Only used when the employer auth mode is oidc.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (SSOIdentity, error)
}

// ResumeTextExtractor pulls plain text out of an uploaded resume document so
// bench records can be matched on resume content. Extraction failures are
// non-fatal; callers store the record with empty text.
type ResumeTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// MatchScorer calls the external matching proxy and returns a 0..100 fit
// score for a candidate/job pair. Internals are out of scope; failures are
// surfaced as-is with no retry.
type MatchScorer interface {
	Score(ctx context.Context, in MatchInput) (float64, error)
}

// MatchInput is the payload forwarded to the matching proxy.
type MatchInput struct {
	JobTitle        string   `json:"job_title"`
	JobDescription  string   `json:"job_description"`
	JobSkills       []string `json:"job_skills"`
	CandidateSkills []string `json:"candidate_skills"`
	ResumeText      string   `json:"resume_text,omitempty"`
}
