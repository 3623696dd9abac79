package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	mockauth "github.com/hireloop/hireloop/internal/mocks/auth"
)

func newSessionFixture(t *testing.T) (*SessionService, *mockauth.MemorySessionStore) {
	t.Helper()
	store := mockauth.NewMemorySessionStore()
	return NewSessionService(SessionServiceOptions{Store: store}), store
}

func TestSessionService_Get_MissingReadsEmpty(t *testing.T) {
	svc, _ := newSessionFixture(t)

	rec, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())
}

func TestSessionService_Get_StorageFailureSurfaces(t *testing.T) {
	svc, store := newSessionFixture(t)
	store.GetErr = errors.New("redis down")

	_, err := svc.Get(context.Background(), "visitor-1")
	assert.Error(t, err)
}

func TestSessionService_Login_RequiresTokenAndEmployerID(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	assert.Error(t, svc.Login(ctx, "v1", "", "emp-1", nil))
	assert.Error(t, svc.Login(ctx, "v1", "tok", "", nil))
}

func TestSessionService_Login_DropsCandidateState(t *testing.T) {
	svc, store := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkLoggedIn(ctx, "v1", "c@example.com", "u1"))
	require.NoError(t, svc.Login(ctx, "v1", "tok", "emp-1", json.RawMessage(`{"name":"Acme"}`)))

	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, domainsession.RoleEmployer, rec.Role())
	assert.Equal(t, "tok", rec.Token)
	assert.Equal(t, "emp-1", rec.EmployerID)
	assert.JSONEq(t, `{"name":"Acme"}`, string(rec.CompanyProfile))
	assert.Empty(t, rec.UserID)
	assert.False(t, rec.LoggedIn)
	assert.False(t, rec.SignedUp)

	// The single-role invariant holds in the stored record too.
	stored, ok := store.Peek("v1")
	require.True(t, ok)
	assert.Equal(t, domainsession.RoleEmployer, stored.Role())
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkLoggedIn(ctx, "v1", "c@example.com", "u1"))
	require.NoError(t, svc.Logout(ctx, "v1"))

	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())

	// Logging out again, and logging out a visitor that never logged in,
	// both succeed.
	assert.NoError(t, svc.Logout(ctx, "v1"))
	assert.NoError(t, svc.Logout(ctx, "v-never-seen"))
}

func TestSessionService_MarkSignedUp_DoesNotLogIn(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkSignedUp(ctx, "v1", "c@example.com"))

	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, rec.SignedUp)
	assert.False(t, rec.IsLoggedIn())
	assert.Equal(t, "c@example.com", rec.Email)
	assert.Equal(t, domainsession.RoleGuest, rec.Role())
}

func TestSessionService_MarkSignedUp_DropsEmployerState(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "v1", "tok", "emp-1", json.RawMessage(`{}`)))
	require.NoError(t, svc.MarkSignedUp(ctx, "v1", "c@example.com"))

	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
	assert.Empty(t, rec.EmployerID)
	assert.Nil(t, rec.CompanyProfile)
	assert.True(t, rec.SignedUp)
}

func TestSessionService_MarkLoggedIn(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	assert.Error(t, svc.MarkLoggedIn(ctx, "v1", "c@example.com", ""))

	require.NoError(t, svc.MarkLoggedIn(ctx, "v1", "c@example.com", "u1"))
	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, rec.IsLoggedIn())
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, domainsession.RoleCandidate, rec.Role())
}

func TestSessionService_MarkProfileSetupCompleted_AlwaysUnauthenticates(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	// From any starting state, completing the wizard leaves the visitor
	// logged out and no longer mid-signup.
	starts := []func() error{
		func() error { return svc.MarkSignedUp(ctx, "v1", "c@example.com") },
		func() error { return svc.MarkLoggedIn(ctx, "v1", "c@example.com", "u1") },
		func() error { return nil },
	}
	for i, start := range starts {
		require.NoError(t, svc.Logout(ctx, "v1"))
		require.NoError(t, start())
		require.NoError(t, svc.MarkProfileSetupCompleted(ctx, "v1"))

		rec, err := svc.Get(ctx, "v1")
		require.NoError(t, err, "start %d", i)
		assert.False(t, rec.SignedUp, "start %d", i)
		assert.False(t, rec.IsLoggedIn(), "start %d", i)
		assert.Empty(t, rec.UserID, "start %d", i)
	}
}

func TestSessionService_ClearEmployerKeys(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "v1", "tok", "emp-1", json.RawMessage(`{"name":"Acme"}`)))
	require.NoError(t, svc.ClearEmployerKeys(ctx, "v1"))

	rec, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, rec.Token)
	assert.Empty(t, rec.EmployerID)
	assert.Nil(t, rec.CompanyProfile)
}
