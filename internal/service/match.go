package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/ports"
)

// MatchServiceOptions groups dependencies for MatchService.
type MatchServiceOptions struct {
	Jobs       JobRepository
	Candidates CandidateRepository
	Bench      BenchRepository
	Scorer     ports.MatchScorer
}

// MatchService scores candidate/job fit via the external matching proxy. It
// composes the pair's data locally and forwards it; the score is best-effort
// and failures surface to the caller without retry.
type MatchService struct {
	jobs       JobRepository
	candidates CandidateRepository
	bench      BenchRepository
	scorer     ports.MatchScorer
}

// NewMatchService constructs a new MatchService.
func NewMatchService(opts MatchServiceOptions) *MatchService {
	return &MatchService{
		jobs:       opts.Jobs,
		candidates: opts.Candidates,
		bench:      opts.Bench,
		scorer:     opts.Scorer,
	}
}

// MatchResult pairs a score with the subjects it was computed for.
type MatchResult struct {
	JobID       string  `json:"job_id"`
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
}

// ScoreCandidate scores a registered candidate against a posting.
func (s *MatchService) ScoreCandidate(ctx context.Context, jobID, candidateID string) (*MatchResult, error) {
	if s.scorer == nil {
		return nil, errors.New("matching is not configured")
	}

	// Fetch both sides of the pair concurrently.
	var (
		job       *model.Job
		candidate *model.Candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = s.jobs.GetByID(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		candidate, err = s.candidates.GetByID(gctx, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	score, err := s.scorer.Score(ctx, ports.MatchInput{
		JobTitle:        job.Title,
		JobDescription:  job.Description,
		JobSkills:       job.Skills,
		CandidateSkills: candidate.Skills,
		ResumeText:      candidate.Experience,
	})
	if err != nil {
		return nil, fmt.Errorf("score candidate: %w", err)
	}

	return &MatchResult{JobID: jobID, CandidateID: candidateID, Score: score}, nil
}

// ScoreBenchCandidate scores a bench record against a posting, using the
// extracted resume text when present.
func (s *MatchService) ScoreBenchCandidate(ctx context.Context, jobID, benchCandidateID string) (*MatchResult, error) {
	if s.scorer == nil {
		return nil, errors.New("matching is not configured")
	}

	var (
		job *model.Job
		bc  *model.BenchCandidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = s.jobs.GetByID(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		bc, err = s.bench.GetByID(gctx, benchCandidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resumeText := bc.ResumeText
	if resumeText == "" {
		resumeText = bc.Experience
	}

	score, err := s.scorer.Score(ctx, ports.MatchInput{
		JobTitle:        job.Title,
		JobDescription:  job.Description,
		JobSkills:       job.Skills,
		CandidateSkills: bc.Skills,
		ResumeText:      resumeText,
	})
	if err != nil {
		return nil, fmt.Errorf("score bench candidate: %w", err)
	}

	return &MatchResult{JobID: jobID, CandidateID: benchCandidateID, Score: score}, nil
}
