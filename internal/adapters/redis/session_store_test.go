package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	"github.com/hireloop/hireloop/internal/testutil"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	rec := domainsession.Record{
		Token:          "emp-token-abc",
		EmployerID:     "employer-123",
		CompanyProfile: json.RawMessage(`{"company_name":"Acme"}`),
	}

	err := store.Save(ctx, "visitor-1", rec)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Token, retrieved.Token)
	assert.Equal(t, rec.EmployerID, retrieved.EmployerID)
	assert.JSONEq(t, string(rec.CompanyProfile), string(retrieved.CompanyProfile))
	assert.Equal(t, domainsession.RoleEmployer, retrieved.Role())
}

func TestSessionStore_CandidateFlags(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	rec := domainsession.Record{
		UserID:   "user-123",
		SignedUp: true,
		LoggedIn: true,
		Email:    "jane@example.com",
	}

	require.NoError(t, store.Save(ctx, "visitor-2", rec))

	retrieved, err := store.Get(ctx, "visitor-2")
	require.NoError(t, err)
	assert.True(t, retrieved.SignedUp)
	assert.True(t, retrieved.LoggedIn)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "jane@example.com", retrieved.Email)
	assert.Empty(t, retrieved.Token)
	assert.Empty(t, retrieved.CompanyProfile)
}

func TestSessionStore_HashFieldNames(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	rec := domainsession.Record{
		Token:      "tok",
		EmployerID: "emp-1",
	}
	require.NoError(t, store.Save(ctx, "visitor-names", rec))

	// The hash field names are a storage compatibility contract.
	fields, err := client.HGetAll(ctx, "visitor:visitor-names").Result()
	require.NoError(t, err)
	assert.Equal(t, "tok", fields["token"])
	assert.Equal(t, "emp-1", fields["employerId"])
	assert.Contains(t, fields, "companyProfile")
	assert.Contains(t, fields, "userId")
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor-delete", domainsession.Record{UserID: "u1", LoggedIn: true}))

	_, err := store.Get(ctx, "visitor-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "visitor-delete"))

	_, err = store.Get(ctx, "visitor-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_SaveEmptyRecordDeletes(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor-empty", domainsession.Record{UserID: "u1", LoggedIn: true}))
	require.NoError(t, store.Save(ctx, "visitor-empty", domainsession.Record{}))

	_, err := store.Get(ctx, "visitor-empty")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_SaveReplacesAllFields(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor-replace", domainsession.Record{
		Token:      "old-token",
		EmployerID: "emp-1",
	}))
	require.NoError(t, store.Save(ctx, "visitor-replace", domainsession.Record{
		UserID:   "user-9",
		LoggedIn: true,
	}))

	retrieved, err := store.Get(ctx, "visitor-replace")
	require.NoError(t, err)
	assert.Empty(t, retrieved.Token)
	assert.Empty(t, retrieved.EmployerID)
	assert.Equal(t, "user-9", retrieved.UserID)
	assert.Equal(t, domainsession.RoleCandidate, retrieved.Role())
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithOptions(client, "", 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor-ttl", domainsession.Record{UserID: "u1", LoggedIn: true}))

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "visitor-ttl")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithOptions(client, "test-prefix:", 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "prefix-test", domainsession.Record{UserID: "u1", LoggedIn: true}))

	exists := client.Exists(ctx, "test-prefix:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	retrieved, err := store.Get(ctx, "prefix-test")
	require.NoError(t, err)
	assert.Equal(t, "u1", retrieved.UserID)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, "", domainsession.Record{UserID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visitor ID cannot be empty")
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)
}
