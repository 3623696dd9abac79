// Package auth contains simple hand-written test doubles for session and
// auth ports. These are lightweight and suitable for unit tests without
// codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	redisstore "github.com/hireloop/hireloop/internal/adapters/redis"
	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	"github.com/hireloop/hireloop/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore        = (*MemorySessionStore)(nil)
	_ ports.TokenVerifier       = (*MockTokenVerifier)(nil)
	_ ports.SSOProvider         = (*MockSSOProvider)(nil)
	_ ports.MatchScorer         = (*StaticMatchScorer)(nil)
	_ ports.ResumeTextExtractor = (*StaticResumeTextExtractor)(nil)
)

// ErrSessionNotFound is returned by MemorySessionStore.Get for unknown
// visitors. It aliases the production store's sentinel so callers that map
// missing records to empty ones behave identically against this store.
var ErrSessionNotFound = redisstore.ErrNotFound

// MemorySessionStore is an in-memory ports.SessionStore safe for concurrent use.
type MemorySessionStore struct {
	mu      sync.Mutex
	records map[string]domainsession.Record

	// Optional error injection for failure-path tests.
	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{records: map[string]domainsession.Record{}}
}

func (s *MemorySessionStore) Save(_ context.Context, visitorID string, rec domainsession.Record) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.IsEmpty() {
		delete(s.records, visitorID)
		return nil
	}
	s.records[visitorID] = rec
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, visitorID string) (domainsession.Record, error) {
	if s.GetErr != nil {
		return domainsession.Record{}, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[visitorID]
	if !ok {
		return domainsession.Record{}, ErrSessionNotFound
	}
	return rec, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, visitorID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, visitorID)
	return nil
}

// Peek returns the raw stored record without error semantics, for assertions.
func (s *MemorySessionStore) Peek(visitorID string) (domainsession.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[visitorID]
	return rec, ok
}

// Len reports how many sessions are stored.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// MockTokenVerifier simulates employer token verification with a fixed
// identity or an injected error, and counts calls.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (ports.EmployerIdentity, error)

	Identity ports.EmployerIdentity
	Err      error

	mu    sync.Mutex
	calls int
}

// NewMockTokenVerifier creates a verifier that accepts every token as the
// given employer.
func NewMockTokenVerifier(employerID, email string) *MockTokenVerifier {
	return &MockTokenVerifier{Identity: ports.EmployerIdentity{EmployerID: employerID, Email: email}}
}

func (m *MockTokenVerifier) VerifyEmployerToken(ctx context.Context, token string) (ports.EmployerIdentity, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	if m.Err != nil {
		return ports.EmployerIdentity{}, m.Err
	}
	return m.Identity, nil
}

// Calls reports how many times VerifyEmployerToken was invoked.
func (m *MockTokenVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSSOProvider simulates an IdP with deterministic state/nonce handling.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error)

	AuthURL  string
	Identity ports.SSOIdentity

	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL:  "https://mock-idp/auth",
		Identity: ports.SSOIdentity{Email: "mock.employer@example.com", FullName: "Mock Employer"},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	state := fmt.Sprintf("state-%d", m.callCount)
	nonce := fmt.Sprintf("nonce-%d", m.callCount)
	return authURL, state, nonce, nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return ports.SSOIdentity{}, errors.New("missing authorization code")
	}
	return m.Identity, nil
}

// StaticMatchScorer returns a fixed score or error for every pair.
type StaticMatchScorer struct {
	ScoreFunc func(ctx context.Context, in ports.MatchInput) (float64, error)

	Value float64
	Err   error
}

func (s *StaticMatchScorer) Score(ctx context.Context, in ports.MatchInput) (float64, error) {
	if s.ScoreFunc != nil {
		return s.ScoreFunc(ctx, in)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Value, nil
}

// StaticResumeTextExtractor returns fixed text or an error for every document.
type StaticResumeTextExtractor struct {
	Text string
	Err  error
}

func (s *StaticResumeTextExtractor) ExtractText(_ []byte) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}
