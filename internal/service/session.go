// Package service contains the application's business logic, orchestrating
// repositories, session storage and external adapters.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redisstore "github.com/hireloop/hireloop/internal/adapters/redis"
	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	"github.com/hireloop/hireloop/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store ports.SessionStore
}

// SessionService is the only writer of visitor session records. Every
// mutation goes through one of its named operations; handlers never write to
// the store directly.
//
// Sessions are single-role: each candidate mutator clears the employer keys
// and vice versa, so a record never carries both identities.
type SessionService struct {
	store ports.SessionStore
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	return &SessionService{store: opts.Store}
}

// Get returns the record for visitorID. A missing record reads as an empty
// one; storage failures are surfaced.
func (s *SessionService) Get(ctx context.Context, visitorID string) (domainsession.Record, error) {
	rec, err := s.store.Get(ctx, visitorID)
	if err != nil {
		if errors.Is(err, redisstore.ErrNotFound) {
			return domainsession.Record{}, nil
		}
		return domainsession.Record{}, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

// Login records a completed employer login: token, employer id and the cached
// company profile. The token format is not validated here; the gate verifies
// it on every protected page visit. Any candidate state is dropped.
func (s *SessionService) Login(ctx context.Context, visitorID, token, employerID string, companyProfile json.RawMessage) error {
	if token == "" || employerID == "" {
		return errors.New("token and employer id are required")
	}

	rec, err := s.Get(ctx, visitorID)
	if err != nil {
		return err
	}
	rec.ClearCandidate()
	rec.Token = token
	rec.EmployerID = employerID
	rec.CompanyProfile = companyProfile

	if saveErr := s.store.Save(ctx, visitorID, rec); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// Logout clears every session key. It is unconditional and idempotent:
// logging out an already-empty session succeeds.
func (s *SessionService) Logout(ctx context.Context, visitorID string) error {
	if err := s.store.Delete(ctx, visitorID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MarkSignedUp records candidate signup step 1. It deliberately does not set
// the logged-in flag: the candidate must finish profile setup and then log in.
func (s *SessionService) MarkSignedUp(ctx context.Context, visitorID, email string) error {
	rec, err := s.Get(ctx, visitorID)
	if err != nil {
		return err
	}
	rec.ClearEmployer()
	rec.SignedUp = true
	rec.Email = email

	if saveErr := s.store.Save(ctx, visitorID, rec); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// MarkLoggedIn records a completed candidate login.
func (s *SessionService) MarkLoggedIn(ctx context.Context, visitorID, email, userID string) error {
	if userID == "" {
		return errors.New("user id is required")
	}

	rec, err := s.Get(ctx, visitorID)
	if err != nil {
		return err
	}
	rec.ClearEmployer()
	rec.UserID = userID
	rec.LoggedIn = true
	rec.Email = email

	if saveErr := s.store.Save(ctx, visitorID, rec); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// MarkProfileSetupCompleted clears the signup flag and forces the session
// unauthenticated. Completing profile setup always demands a fresh login
// rather than silently promoting the session; callers redirect to login.
func (s *SessionService) MarkProfileSetupCompleted(ctx context.Context, visitorID string) error {
	rec, err := s.Get(ctx, visitorID)
	if err != nil {
		return err
	}
	rec.SignedUp = false
	rec.LoggedIn = false
	rec.UserID = ""

	if saveErr := s.store.Save(ctx, visitorID, rec); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// ClearEmployerKeys removes the employer keys after a rejected verification,
// leaving any candidate state untouched.
func (s *SessionService) ClearEmployerKeys(ctx context.Context, visitorID string) error {
	rec, err := s.Get(ctx, visitorID)
	if err != nil {
		return err
	}
	rec.ClearEmployer()

	if saveErr := s.store.Save(ctx, visitorID, rec); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}
