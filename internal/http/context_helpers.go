package httpx

import (
	"context"

	"github.com/hireloop/hireloop/internal/ports"
)

// visitorKey and principal keys are unexported context key types to avoid
// collisions across packages.
type (
	visitorKey   struct{}
	candidateKey struct{}
	employerKey  struct{}
)

// SetVisitorID returns a child context carrying the visitor id from the sid
// cookie.
func SetVisitorID(ctx context.Context, visitorID string) context.Context {
	if visitorID == "" {
		return ctx
	}
	return context.WithValue(ctx, visitorKey{}, visitorID)
}

// VisitorID returns the visitor id for the request, or "" when the cookie
// middleware did not run.
func VisitorID(ctx context.Context) string {
	if id, ok := ctx.Value(visitorKey{}).(string); ok {
		return id
	}
	return ""
}

// SetCandidateID returns a child context carrying the authenticated
// candidate's id.
func SetCandidateID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, candidateKey{}, id)
}

// CandidateID returns the authenticated candidate id, or "" for guests.
func CandidateID(ctx context.Context) string {
	if id, ok := ctx.Value(candidateKey{}).(string); ok {
		return id
	}
	return ""
}

// SetEmployer returns a child context carrying the verified employer identity.
func SetEmployer(ctx context.Context, identity ports.EmployerIdentity) context.Context {
	if identity.EmployerID == "" {
		return ctx
	}
	return context.WithValue(ctx, employerKey{}, identity)
}

// Employer returns the verified employer identity and whether one is present.
func Employer(ctx context.Context) (ports.EmployerIdentity, bool) {
	identity, ok := ctx.Value(employerKey{}).(ports.EmployerIdentity)
	return identity, ok
}
