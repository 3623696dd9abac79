package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/domain/model"
	domainsession "github.com/hireloop/hireloop/internal/domain/session"
	"github.com/hireloop/hireloop/internal/mocks"
	mockauth "github.com/hireloop/hireloop/internal/mocks/auth"
	"github.com/hireloop/hireloop/internal/ports"
)

const testTokenSecret = "test-secret-not-for-production"

func newEmployerFixture(t *testing.T, sso ports.SSOProvider) (*EmployerService, *mocks.MockEmployerRepository, *mockauth.MemorySessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEmployerRepository(ctrl)
	store := mockauth.NewMemorySessionStore()
	svc, err := NewEmployerService(EmployerServiceOptions{
		Repo:        repo,
		Sessions:    NewSessionService(SessionServiceOptions{Store: store}),
		TokenSecret: testTokenSecret,
		SSO:         sso,
		BcryptCost:  bcrypt.MinCost,
	})
	require.NoError(t, err)
	return svc, repo, store
}

func TestNewEmployerService_RequiresSecret(t *testing.T) {
	_, err := NewEmployerService(EmployerServiceOptions{})
	assert.Error(t, err)
}

func TestEmployerService_Signup_StoresRegistrableDomain(t *testing.T) {
	svc, repo, _ := newEmployerFixture(t, nil)
	ctx := context.Background()

	req := &model.SignupEmployerRequest{
		Email:       "owner@acme.test",
		Password:    "hunter2hunter2",
		CompanyName: "Acme",
		Website:     "https://jobs.acme.co.uk/careers",
	}
	repo.EXPECT().
		Create(gomock.Any(), req, gomock.Any(), "acme.co.uk").
		Return(&model.Employer{ID: "emp-1", Email: req.Email, CompanyName: req.CompanyName}, nil)

	employer, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employer.ID)
}

func TestEmployerService_LoginIssuesVerifiableToken(t *testing.T) {
	svc, repo, store := newEmployerFixture(t, nil)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	employer := &model.Employer{
		ID:           "emp-1",
		Email:        "owner@acme.test",
		PasswordHash: string(hash),
		CompanyName:  "Acme",
	}
	repo.EXPECT().GetByEmail(gomock.Any(), "owner@acme.test").Return(employer, nil)
	repo.EXPECT().GetByID(gomock.Any(), "emp-1").Return(employer, nil)

	result, err := svc.Login(ctx, "v1", &model.EmployerLoginRequest{Email: "owner@acme.test", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	// The session carries the token, employer id and cached profile.
	rec, ok := store.Peek("v1")
	require.True(t, ok)
	assert.Equal(t, result.Token, rec.Token)
	assert.Equal(t, "emp-1", rec.EmployerID)
	assert.NotEmpty(t, rec.CompanyProfile)
	assert.Equal(t, domainsession.RoleEmployer, rec.Role())

	// The freshly issued token verifies.
	identity, err := svc.VerifyEmployerToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", identity.EmployerID)
	assert.Equal(t, "owner@acme.test", identity.Email)
}

func TestEmployerService_Login_BadCredentials(t *testing.T) {
	svc, repo, store := newEmployerFixture(t, nil)
	ctx := context.Background()

	repo.EXPECT().GetByEmail(gomock.Any(), "ghost@acme.test").Return(nil, data.ErrEmployerNotFound)
	_, err := svc.Login(ctx, "v1", &model.EmployerLoginRequest{Email: "ghost@acme.test", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.EXPECT().GetByEmail(gomock.Any(), "owner@acme.test").
		Return(&model.Employer{ID: "emp-1", PasswordHash: string(hash)}, nil)
	_, err = svc.Login(ctx, "v1", &model.EmployerLoginRequest{Email: "owner@acme.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Zero(t, store.Len())
}

func TestEmployerService_VerifyEmployerToken_Failures(t *testing.T) {
	svc, repo, _ := newEmployerFixture(t, nil)
	ctx := context.Background()

	// Empty and garbage tokens.
	_, err := svc.VerifyEmployerToken(ctx, "")
	assert.ErrorIs(t, err, ErrTokenRejected)
	_, err = svc.VerifyEmployerToken(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenRejected)

	// Token signed with a different secret.
	other, err := NewEmployerService(EmployerServiceOptions{
		Repo:        repo,
		TokenSecret: "a-different-secret",
	})
	require.NoError(t, err)
	forged, err := other.issueToken(&model.Employer{ID: "emp-1", Email: "owner@acme.test"})
	require.NoError(t, err)
	_, err = svc.VerifyEmployerToken(ctx, forged)
	assert.ErrorIs(t, err, ErrTokenRejected)

	// Expired token.
	expiredSvc, err := NewEmployerService(EmployerServiceOptions{
		Repo:        repo,
		TokenSecret: testTokenSecret,
		TokenTTL:    time.Nanosecond,
	})
	require.NoError(t, err)
	expired, err := expiredSvc.issueToken(&model.Employer{ID: "emp-1", Email: "owner@acme.test"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.VerifyEmployerToken(ctx, expired)
	assert.ErrorIs(t, err, ErrTokenRejected)
}

func TestEmployerService_VerifyEmployerToken_DeletedEmployer(t *testing.T) {
	svc, repo, _ := newEmployerFixture(t, nil)
	ctx := context.Background()

	token, err := svc.issueToken(&model.Employer{ID: "emp-gone", Email: "gone@acme.test"})
	require.NoError(t, err)

	// A well-signed token for an account that no longer exists is rejected.
	repo.EXPECT().GetByID(gomock.Any(), "emp-gone").Return(nil, data.ErrEmployerNotFound)
	_, err = svc.VerifyEmployerToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRejected)
}

func TestEmployerService_SSO(t *testing.T) {
	sso := mockauth.NewMockSSOProvider()
	sso.Identity = ports.SSOIdentity{Email: "owner@acme.test", FullName: "Acme Owner"}
	svc, repo, store := newEmployerFixture(t, sso)
	ctx := context.Background()

	authURL, state, nonce, err := svc.BeginSSO(ctx, "https://portal.test/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, authURL)
	assert.NotEmpty(t, state)
	assert.NotEmpty(t, nonce)

	employer := &model.Employer{ID: "emp-1", Email: "owner@acme.test", CompanyName: "Acme"}
	repo.EXPECT().GetByEmail(gomock.Any(), "owner@acme.test").Return(employer, nil)

	result, err := svc.CompleteSSO(ctx, "v1", ports.ExchangeInput{Code: "code", State: state, Nonce: nonce})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	rec, ok := store.Peek("v1")
	require.True(t, ok)
	assert.Equal(t, "emp-1", rec.EmployerID)
}

func TestEmployerService_SSO_NoAutoProvision(t *testing.T) {
	sso := mockauth.NewMockSSOProvider()
	sso.Identity = ports.SSOIdentity{Email: "stranger@example.com"}
	svc, repo, _ := newEmployerFixture(t, sso)

	repo.EXPECT().GetByEmail(gomock.Any(), "stranger@example.com").Return(nil, data.ErrEmployerNotFound)
	_, err := svc.CompleteSSO(context.Background(), "v1", ports.ExchangeInput{Code: "code"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEmployerService_SSO_Unconfigured(t *testing.T) {
	svc, _, _ := newEmployerFixture(t, nil)
	ctx := context.Background()

	_, _, _, err := svc.BeginSSO(ctx, "https://portal.test/callback")
	assert.Error(t, err)
	_, err = svc.CompleteSSO(ctx, "v1", ports.ExchangeInput{Code: "code"})
	assert.Error(t, err)
}

func TestEmployerService_Update_RecomputesDomain(t *testing.T) {
	svc, repo, _ := newEmployerFixture(t, nil)
	ctx := context.Background()

	website := "https://jobs.initech.example"
	req := &model.UpdateEmployerRequest{Website: &website}
	repo.EXPECT().
		Update(gomock.Any(), "emp-1", req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ *model.UpdateEmployerRequest, domain *string) (*model.Employer, error) {
			require.NotNil(t, domain)
			assert.Equal(t, "initech.example", *domain)
			return &model.Employer{ID: "emp-1"}, nil
		})
	_, err := svc.Update(ctx, "emp-1", req)
	require.NoError(t, err)

	// No website change, no domain recomputation.
	name := "Initech"
	req = &model.UpdateEmployerRequest{CompanyName: &name}
	repo.EXPECT().Update(gomock.Any(), "emp-1", req, nil).Return(&model.Employer{ID: "emp-1"}, nil)
	_, err = svc.Update(ctx, "emp-1", req)
	require.NoError(t, err)
}

func TestWebsiteDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://jobs.acme.co.uk/careers", "acme.co.uk"},
		{"http://www.acme.com", "acme.com"},
		{"acme.com", "acme.com"},
		{"WWW.ACME.COM", "acme.com"},
		{"", ""},
		{"   ", ""},
		{"https://", ""},
		{"not a url at all !", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, websiteDomain(tc.in), "input %q", tc.in)
	}
}

func TestCompanyProfileFromSession(t *testing.T) {
	employer := &model.Employer{ID: "emp-1", CompanyName: "Acme", Website: "https://acme.com"}
	raw, err := employer.CompanyProfile().MarshalRaw()
	require.NoError(t, err)

	profile, err := CompanyProfileFromSession(raw)
	require.NoError(t, err)
	assert.Equal(t, "Acme", profile.CompanyName)

	_, err = CompanyProfileFromSession(nil)
	assert.Error(t, err)
	_, err = CompanyProfileFromSession([]byte("{broken"))
	assert.Error(t, err)
}

func TestEmployerService_Login_RepoFailureSurfaces(t *testing.T) {
	svc, repo, _ := newEmployerFixture(t, nil)

	repo.EXPECT().GetByEmail(gomock.Any(), "owner@acme.test").Return(nil, errors.New("db down"))
	_, err := svc.Login(context.Background(), "v1", &model.EmployerLoginRequest{Email: "owner@acme.test", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
