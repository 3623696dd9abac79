package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hireloop/hireloop/internal/domain/model"
)

// JobRepository is the persistence surface JobService needs.
type JobRepository interface {
	Create(ctx context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, id, employerID string, req *model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id, employerID string) error
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
}

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo     JobRepository
	Validate *validator.Validate
}

// JobService orchestrates job posting CRUD and search.
type JobService struct {
	repo     JobRepository
	validate *validator.Validate
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	v := opts.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &JobService{repo: opts.Repo, validate: v}
}

// Create posts a new open job owned by employerID.
func (s *JobService) Create(ctx context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate job: %w", err)
	}
	return s.repo.Create(ctx, employerID, req)
}

// Get retrieves a posting by id.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to a posting owned by employerID.
func (s *JobService) Update(ctx context.Context, id, employerID string, req *model.UpdateJobRequest) (*model.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate job update: %w", err)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, errors.New("invalid job status")
	}
	return s.repo.Update(ctx, id, employerID, req)
}

// Delete removes a posting owned by employerID.
func (s *JobService) Delete(ctx context.Context, id, employerID string) error {
	return s.repo.Delete(ctx, id, employerID)
}

// Search lists open postings matching the filter. Used by the public job
// views; closed postings are excluded.
func (s *JobService) Search(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	filter.OpenOnly = true
	return s.repo.List(ctx, filter)
}

// ListByEmployer lists all of an employer's postings, open and closed.
func (s *JobService) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]*model.Job, error) {
	return s.repo.List(ctx, model.JobFilter{EmployerID: employerID, Limit: limit, Offset: offset})
}
