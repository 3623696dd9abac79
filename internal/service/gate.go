package service

import (
	"context"
	"log/slog"

	"github.com/hireloop/hireloop/internal/domain/view"
	"github.com/hireloop/hireloop/internal/ports"
)

// Decision is the gate's verdict for one page-render attempt: either render
// the page, or perform exactly one redirect and render nothing. Denial is
// silent navigation; no error reaches the visitor.
type Decision struct {
	Allowed bool
	// Page is the component to render. Set only when Allowed.
	Page view.Page
	// Redirect is the view to bounce to. Set only when denied.
	Redirect view.View
}

func allowed(p view.Page) Decision  { return Decision{Allowed: true, Page: p} }
func deniedTo(v view.View) Decision { return Decision{Redirect: v} }

// GateOptions groups dependencies for Gate.
type GateOptions struct {
	Sessions *SessionService
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// Gate decides, for a view that declares an access requirement, whether to
// render it or redirect. Decisions are computed fresh from the latest session
// snapshot on every call; nothing is cached.
type Gate struct {
	sessions *SessionService
	verifier ports.TokenVerifier
	logger   *slog.Logger
}

// NewGate constructs a new Gate.
func NewGate(opts GateOptions) *Gate {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		sessions: opts.Sessions,
		verifier: opts.Verifier,
		logger:   logger,
	}
}

// Resolve evaluates v's access requirement against the visitor's session.
// Every failure, including storage and verification transport errors, folds
// into a denial; Resolve never returns an error.
func (g *Gate) Resolve(ctx context.Context, visitorID string, v view.View) Decision {
	switch v.Requirement() {
	case view.RequireNone:
		return allowed(v.Page())
	case view.RequireCandidateLogin:
		return g.resolveCandidateLogin(ctx, visitorID, v)
	case view.RequireCandidateSignup:
		return g.resolveCandidateSignup(ctx, visitorID, v)
	case view.RequireEmployerVerified:
		return g.resolveEmployer(ctx, visitorID, v)
	}
	return allowed(v.Page())
}

func (g *Gate) resolveCandidateLogin(ctx context.Context, visitorID string, v view.View) Decision {
	rec, err := g.sessions.Get(ctx, visitorID)
	if err != nil {
		g.logger.WarnContext(ctx, "session read failed, denying", "view", v.String(), "err", err)
		return deniedTo(view.ViewLogin)
	}
	if !rec.IsLoggedIn() {
		return deniedTo(view.ViewLogin)
	}
	return allowed(v.Page())
}

func (g *Gate) resolveCandidateSignup(ctx context.Context, visitorID string, v view.View) Decision {
	rec, err := g.sessions.Get(ctx, visitorID)
	if err != nil {
		g.logger.WarnContext(ctx, "session read failed, denying", "view", v.String(), "err", err)
		return deniedTo(view.ViewSignup)
	}
	// A fully logged-in candidate must not revisit the signup-only wizard.
	if rec.IsLoggedIn() {
		return deniedTo(view.ViewProfile)
	}
	if !rec.SignedUp {
		return deniedTo(view.ViewSignup)
	}
	return allowed(v.Page())
}

func (g *Gate) resolveEmployer(ctx context.Context, visitorID string, v view.View) Decision {
	rec, err := g.sessions.Get(ctx, visitorID)
	if err != nil {
		g.logger.WarnContext(ctx, "session read failed, denying", "view", v.String(), "err", err)
		return deniedTo(view.ViewEmployerLogin)
	}

	// No token means no verification call at all.
	if !rec.HasEmployerToken() {
		return deniedTo(view.ViewEmployerLogin)
	}

	if _, verifyErr := g.verifier.VerifyEmployerToken(ctx, rec.Token); verifyErr != nil {
		g.logger.InfoContext(ctx, "employer token rejected",
			"view", v.String(), "err", verifyErr)
		if clearErr := g.sessions.ClearEmployerKeys(ctx, visitorID); clearErr != nil {
			g.logger.ErrorContext(ctx, "failed to clear employer session keys", "err", clearErr)
		}
		return deniedTo(view.ViewEmployerLogin)
	}

	return allowed(v.Page())
}
