package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/mocks"
)

func newJobFixture(t *testing.T) (*JobService, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJobRepository(ctrl)
	return NewJobService(JobServiceOptions{Repo: repo}), repo
}

func TestJobService_Create(t *testing.T) {
	svc, repo := newJobFixture(t)
	ctx := context.Background()

	req := &model.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Build and run Go services.",
		Location:    "Remote",
		Skills:      []string{"go", "postgres"},
	}
	repo.EXPECT().Create(gomock.Any(), "emp-1", req).
		Return(&model.Job{ID: "job-1", EmployerID: "emp-1", Status: model.JobStatusOpen}, nil)

	job, err := svc.Create(ctx, "emp-1", req)
	require.NoError(t, err)
	assert.True(t, job.Open())
}

func TestJobService_Create_Validation(t *testing.T) {
	svc, _ := newJobFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "emp-1", &model.CreateJobRequest{Title: "x", Description: "too short? no, title is"})
	assert.Error(t, err)
	_, err = svc.Create(ctx, "emp-1", &model.CreateJobRequest{Title: "Backend Engineer", Description: "short"})
	assert.Error(t, err)
}

func TestJobService_Update_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newJobFixture(t)

	bad := model.JobStatus("archived")
	_, err := svc.Update(context.Background(), "job-1", "emp-1", &model.UpdateJobRequest{Status: &bad})
	assert.Error(t, err)
}

func TestJobService_Update(t *testing.T) {
	svc, repo := newJobFixture(t)
	ctx := context.Background()

	closed := model.JobStatusClosed
	req := &model.UpdateJobRequest{Status: &closed}
	repo.EXPECT().Update(gomock.Any(), "job-1", "emp-1", req).
		Return(&model.Job{ID: "job-1", Status: model.JobStatusClosed}, nil)

	job, err := svc.Update(ctx, "job-1", "emp-1", req)
	require.NoError(t, err)
	assert.False(t, job.Open())
}

func TestJobService_Search_ForcesOpenOnly(t *testing.T) {
	svc, repo := newJobFixture(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter model.JobFilter) ([]*model.Job, error) {
			assert.True(t, filter.OpenOnly)
			assert.Equal(t, "go", filter.Skill)
			return []*model.Job{{ID: "job-1"}}, nil
		})

	// Even a caller-supplied OpenOnly=false is overridden.
	out, err := svc.Search(context.Background(), model.JobFilter{Skill: "go", OpenOnly: false})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestJobService_ListByEmployer(t *testing.T) {
	svc, repo := newJobFixture(t)

	repo.EXPECT().
		List(gomock.Any(), model.JobFilter{EmployerID: "emp-1", Limit: 20, Offset: 40}).
		Return(nil, nil)

	_, err := svc.ListByEmployer(context.Background(), "emp-1", 20, 40)
	require.NoError(t, err)
}
