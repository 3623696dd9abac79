package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/mocks"
)

func newApplicationFixture(t *testing.T) (*ApplicationService, *mocks.MockApplicationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockApplicationRepository(ctrl)
	return NewApplicationService(ApplicationServiceOptions{Repo: repo}), repo
}

func TestApplicationService_Apply(t *testing.T) {
	svc, repo := newApplicationFixture(t)
	ctx := context.Background()

	req := &model.CreateApplicationRequest{JobID: uuid.NewString(), CoverNote: "I would love this role."}
	repo.EXPECT().Create(gomock.Any(), "u1", req).
		Return(&model.Application{ID: "app-1", JobID: req.JobID, CandidateID: "u1", Status: model.StatusSent}, nil)

	app, err := svc.Apply(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, app.Status)
}

func TestApplicationService_Apply_Validation(t *testing.T) {
	svc, _ := newApplicationFixture(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "u1", &model.CreateApplicationRequest{JobID: "not-a-uuid"})
	assert.Error(t, err)
	_, err = svc.Apply(ctx, "u1", &model.CreateApplicationRequest{})
	assert.Error(t, err)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	svc, repo := newApplicationFixture(t)
	ctx := context.Background()

	repo.EXPECT().UpdateStatus(gomock.Any(), "app-1", "emp-1", model.StatusUnderReview).
		Return(&model.Application{ID: "app-1", Status: model.StatusUnderReview}, nil)

	app, err := svc.UpdateStatus(ctx, "app-1", "emp-1", model.StatusUnderReview)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderReview, app.Status)
}

func TestApplicationService_UpdateStatus_UnknownStatusRejected(t *testing.T) {
	svc, _ := newApplicationFixture(t)

	// The repository is never reached for an unknown status.
	_, err := svc.UpdateStatus(context.Background(), "app-1", "emp-1", model.ApplicationStatus("Archived"))
	assert.ErrorIs(t, err, model.ErrIllegalTransition)
}

func TestApplicationService_Listings(t *testing.T) {
	svc, repo := newApplicationFixture(t)
	ctx := context.Background()

	repo.EXPECT().ListByCandidate(gomock.Any(), "u1").
		Return([]*model.Application{{ID: "a1"}}, nil)
	sent, err := svc.ListSent(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	repo.EXPECT().ListByEmployer(gomock.Any(), "emp-1").
		Return([]*model.Application{{ID: "a1"}, {ID: "a2"}}, nil)
	received, err := svc.ListReceived(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, received, 2)

	repo.EXPECT().ListByJob(gomock.Any(), "job-1").
		Return(nil, nil)
	forJob, err := svc.ListForJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Empty(t, forJob)
}
