package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/mocks"
	mockauth "github.com/hireloop/hireloop/internal/mocks/auth"
	"github.com/hireloop/hireloop/internal/ports"
)

func newMatchFixture(t *testing.T) (*MatchService, *mocks.MockJobRepository, *mocks.MockCandidateRepository, *mocks.MockBenchRepository, *mockauth.StaticMatchScorer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockJobRepository(ctrl)
	candidates := mocks.NewMockCandidateRepository(ctrl)
	bench := mocks.NewMockBenchRepository(ctrl)
	scorer := &mockauth.StaticMatchScorer{Value: 72.5}
	svc := NewMatchService(MatchServiceOptions{
		Jobs:       jobs,
		Candidates: candidates,
		Bench:      bench,
		Scorer:     scorer,
	})
	return svc, jobs, candidates, bench, scorer
}

func TestMatchService_ScoreCandidate(t *testing.T) {
	svc, jobs, candidates, _, scorer := newMatchFixture(t)
	ctx := context.Background()

	jobs.EXPECT().GetByID(gomock.Any(), "job-1").
		Return(&model.Job{ID: "job-1", Title: "Backend Engineer", Skills: []string{"go"}}, nil)
	candidates.EXPECT().GetByID(gomock.Any(), "u1").
		Return(&model.Candidate{ID: "u1", Skills: []string{"go", "postgres"}, Experience: "5y Go"}, nil)

	var got ports.MatchInput
	scorer.ScoreFunc = func(_ context.Context, in ports.MatchInput) (float64, error) {
		got = in
		return 88, nil
	}

	result, err := svc.ScoreCandidate(ctx, "job-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 88.0, result.Score)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, []string{"go", "postgres"}, got.CandidateSkills)
	assert.Equal(t, "5y Go", got.ResumeText)
}

func TestMatchService_ScoreBenchCandidate_PrefersResumeText(t *testing.T) {
	svc, jobs, _, bench, scorer := newMatchFixture(t)
	ctx := context.Background()

	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(&model.Job{ID: "job-1"}, nil).Times(2)
	bench.EXPECT().GetByID(gomock.Any(), "bc-1").
		Return(&model.BenchCandidate{ID: "bc-1", ResumeText: "extracted text", Experience: "fallback"}, nil)
	bench.EXPECT().GetByID(gomock.Any(), "bc-2").
		Return(&model.BenchCandidate{ID: "bc-2", Experience: "fallback"}, nil)

	var got ports.MatchInput
	scorer.ScoreFunc = func(_ context.Context, in ports.MatchInput) (float64, error) {
		got = in
		return 50, nil
	}

	_, err := svc.ScoreBenchCandidate(ctx, "job-1", "bc-1")
	require.NoError(t, err)
	assert.Equal(t, "extracted text", got.ResumeText)

	_, err = svc.ScoreBenchCandidate(ctx, "job-1", "bc-2")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.ResumeText)
}

func TestMatchService_ScorerFailureSurfaces(t *testing.T) {
	svc, jobs, candidates, _, scorer := newMatchFixture(t)
	ctx := context.Background()

	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(&model.Job{ID: "job-1"}, nil)
	candidates.EXPECT().GetByID(gomock.Any(), "u1").Return(&model.Candidate{ID: "u1"}, nil)
	scorer.Err = errors.New("proxy unavailable")

	_, err := svc.ScoreCandidate(ctx, "job-1", "u1")
	assert.Error(t, err)
}

func TestMatchService_Unconfigured(t *testing.T) {
	svc := NewMatchService(MatchServiceOptions{})

	_, err := svc.ScoreCandidate(context.Background(), "job-1", "u1")
	assert.Error(t, err)
	_, err = svc.ScoreBenchCandidate(context.Background(), "job-1", "bc-1")
	assert.Error(t, err)
}
