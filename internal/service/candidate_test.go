package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/mocks"
	mockauth "github.com/hireloop/hireloop/internal/mocks/auth"
)

func newCandidateFixture(t *testing.T) (*CandidateService, *mocks.MockCandidateRepository, *mockauth.MemorySessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCandidateRepository(ctrl)
	store := mockauth.NewMemorySessionStore()
	svc := NewCandidateService(CandidateServiceOptions{
		Repo:       repo,
		Sessions:   NewSessionService(SessionServiceOptions{Store: store}),
		BcryptCost: bcrypt.MinCost,
	})
	return svc, repo, store
}

func TestCandidateService_Signup(t *testing.T) {
	svc, repo, store := newCandidateFixture(t)
	ctx := context.Background()

	req := &model.SignupCandidateRequest{
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
		FullName: "Jane Doe",
	}
	repo.EXPECT().
		Create(gomock.Any(), req, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *model.SignupCandidateRequest, hash string) (*model.Candidate, error) {
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(r.Password)))
			return &model.Candidate{ID: "u1", Email: r.Email, FullName: r.FullName}, nil
		})

	candidate, err := svc.Signup(ctx, "v1", req)
	require.NoError(t, err)
	assert.Equal(t, "u1", candidate.ID)

	// The session is marked signed up but not logged in.
	rec, ok := store.Peek("v1")
	require.True(t, ok)
	assert.True(t, rec.SignedUp)
	assert.False(t, rec.IsLoggedIn())
	assert.Equal(t, "jane@example.com", rec.Email)
}

func TestCandidateService_Signup_Validation(t *testing.T) {
	svc, _, store := newCandidateFixture(t)
	ctx := context.Background()

	tests := []*model.SignupCandidateRequest{
		{Email: "not-an-email", Password: "hunter2hunter2", FullName: "Jane"},
		{Email: "jane@example.com", Password: "short", FullName: "Jane"},
		{Email: "jane@example.com", Password: "hunter2hunter2"},
	}
	for i, req := range tests {
		_, err := svc.Signup(ctx, "v1", req)
		assert.Error(t, err, "case %d", i)
	}
	assert.Zero(t, store.Len())
}

func TestCandidateService_Login(t *testing.T) {
	svc, repo, store := newCandidateFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		Return(&model.Candidate{ID: "u1", Email: "jane@example.com", PasswordHash: string(hash)}, nil)

	candidate, err := svc.Login(ctx, "v1", &model.CandidateLoginRequest{Email: "jane@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "u1", candidate.ID)

	rec, ok := store.Peek("v1")
	require.True(t, ok)
	assert.True(t, rec.IsLoggedIn())
	assert.Equal(t, "u1", rec.UserID)
}

func TestCandidateService_Login_BadCredentials(t *testing.T) {
	svc, repo, store := newCandidateFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	repo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, data.ErrCandidateNotFound)
	_, err = svc.Login(ctx, "v1", &model.CandidateLoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		Return(&model.Candidate{ID: "u1", PasswordHash: string(hash)}, nil)
	_, err = svc.Login(ctx, "v1", &model.CandidateLoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Zero(t, store.Len())
}

func TestCandidateService_Login_RepoFailureSurfaces(t *testing.T) {
	svc, repo, _ := newCandidateFixture(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		Return(nil, errors.New("db down"))
	_, err := svc.Login(context.Background(), "v1", &model.CandidateLoginRequest{Email: "jane@example.com", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestCandidateService_CompleteSetup_DowngradesSession(t *testing.T) {
	svc, repo, store := newCandidateFixture(t)
	ctx := context.Background()

	// Mid-wizard session state.
	sessions := NewSessionService(SessionServiceOptions{Store: store})
	require.NoError(t, sessions.MarkSignedUp(ctx, "v1", "jane@example.com"))

	req := &model.SetupProfileRequest{
		Headline: "Backend engineer",
		Skills:   []string{"go", "postgres"},
	}
	repo.EXPECT().GetByID(gomock.Any(), "u1").
		Return(&model.Candidate{ID: "u1", Email: "jane@example.com"}, nil)
	repo.EXPECT().CompleteSetup(gomock.Any(), "u1", req).
		Return(&model.Candidate{ID: "u1", SetupDone: true}, nil)

	candidate, err := svc.CompleteSetup(ctx, "v1", "u1", req)
	require.NoError(t, err)
	assert.True(t, candidate.SetupDone)

	rec, _ := store.Peek("v1")
	assert.False(t, rec.SignedUp)
	assert.False(t, rec.IsLoggedIn())
}

func TestCandidateService_CompleteSetup_RejectsForeignSession(t *testing.T) {
	svc, repo, store := newCandidateFixture(t)
	ctx := context.Background()
	sessions := NewSessionService(SessionServiceOptions{Store: store})

	req := &model.SetupProfileRequest{
		Headline: "Backend engineer",
		Skills:   []string{"go"},
	}

	// Anonymous visitors never reach the repository.
	_, err := svc.CompleteSetup(ctx, "v-anon", "u1", req)
	assert.ErrorIs(t, err, ErrSetupNotAllowed)

	// A signed-up session cannot finish someone else's wizard.
	require.NoError(t, sessions.MarkSignedUp(ctx, "v1", "mallory@example.com"))
	repo.EXPECT().GetByID(gomock.Any(), "u1").
		Return(&model.Candidate{ID: "u1", Email: "jane@example.com"}, nil)

	_, err = svc.CompleteSetup(ctx, "v1", "u1", req)
	assert.ErrorIs(t, err, ErrSetupNotAllowed)
}

func TestCandidateService_CompleteSetup_Validation(t *testing.T) {
	svc, _, _ := newCandidateFixture(t)

	// Skills are required for a searchable profile.
	_, err := svc.CompleteSetup(context.Background(), "v1", "u1", &model.SetupProfileRequest{Headline: "Engineer"})
	assert.Error(t, err)
}

func TestCandidateService_Update(t *testing.T) {
	svc, repo, _ := newCandidateFixture(t)
	ctx := context.Background()

	headline := "Staff engineer"
	req := &model.UpdateCandidateRequest{Headline: &headline}
	repo.EXPECT().Update(gomock.Any(), "u1", req).
		Return(&model.Candidate{ID: "u1", Headline: headline}, nil)

	candidate, err := svc.Update(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, headline, candidate.Headline)

	short := "x"
	_, err = svc.Update(ctx, "u1", &model.UpdateCandidateRequest{Headline: &short})
	assert.Error(t, err)
}

func TestCandidateService_Search(t *testing.T) {
	svc, repo, _ := newCandidateFixture(t)

	filter := model.CandidateFilter{Skill: "go", Limit: 10}
	repo.EXPECT().Search(gomock.Any(), filter).
		Return([]*model.Candidate{{ID: "u1"}, {ID: "u2"}}, nil)

	out, err := svc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
