// Package redis provides Redis-based adapters for the hireloop system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
)

// SessionStore persists visitor session records in Redis, one hash per
// visitor. The hash field names (token, userId, employerId, companyProfile,
// signedUp, loggedIn, email) mirror the key set of the browser storage this
// service replaces and must not be renamed.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// DefaultSessionTTL is the sliding lifetime of a visitor session.
const DefaultSessionTTL = 7 * 24 * time.Hour

// NewSessionStore creates a Redis-based session store with the default
// prefix and TTL.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, prefix: "visitor:", ttl: DefaultSessionTTL}
}

// NewSessionStoreWithOptions creates a Redis session store with a custom key
// prefix and TTL. Zero values fall back to the defaults.
func NewSessionStoreWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = "visitor:"
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

const (
	fieldToken          = "token"
	fieldUserID         = "userId"
	fieldEmployerID     = "employerId"
	fieldCompanyProfile = "companyProfile"
	fieldSignedUp       = "signedUp"
	fieldLoggedIn       = "loggedIn"
	fieldEmail          = "email"
)

// Save writes the full record, replacing whatever was stored, and refreshes
// the TTL. An empty record is saved as a deletion so stale keys cannot
// outlive a logout.
func (s *SessionStore) Save(ctx context.Context, visitorID string, rec domainsession.Record) error {
	if visitorID == "" {
		return errors.New("visitor ID cannot be empty")
	}
	if rec.IsEmpty() {
		return s.Delete(ctx, visitorID)
	}

	fields := map[string]any{
		fieldToken:          rec.Token,
		fieldUserID:         rec.UserID,
		fieldEmployerID:     rec.EmployerID,
		fieldCompanyProfile: string(rec.CompanyProfile),
		fieldSignedUp:       boolField(rec.SignedUp),
		fieldLoggedIn:       boolField(rec.LoggedIn),
		fieldEmail:          rec.Email,
	}

	key := s.prefix + visitorID
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Get retrieves the record for visitorID. A missing key returns ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, visitorID string) (domainsession.Record, error) {
	if visitorID == "" {
		return domainsession.Record{}, ErrNotFound
	}

	fields, err := s.client.HGetAll(ctx, s.prefix+visitorID).Result()
	if err != nil {
		return domainsession.Record{}, fmt.Errorf("redis get session: %w", err)
	}
	if len(fields) == 0 {
		return domainsession.Record{}, ErrNotFound
	}

	rec := domainsession.Record{
		Token:      fields[fieldToken],
		UserID:     fields[fieldUserID],
		EmployerID: fields[fieldEmployerID],
		SignedUp:   fields[fieldSignedUp] == "true",
		LoggedIn:   fields[fieldLoggedIn] == "true",
		Email:      fields[fieldEmail],
	}
	if raw := fields[fieldCompanyProfile]; raw != "" {
		rec.CompanyProfile = json.RawMessage(raw)
	}
	return rec, nil
}

// Delete removes the record for visitorID. Deleting a missing key is a no-op.
func (s *SessionStore) Delete(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+visitorID).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ErrNotFound is returned when a session record is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}
