package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hireloop/hireloop/internal/domain/model"
)

// ApplicationRepository is the persistence surface ApplicationService needs.
type ApplicationRepository interface {
	Create(ctx context.Context, candidateID string, req *model.CreateApplicationRequest) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, id, employerID string, next model.ApplicationStatus) (*model.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*model.Application, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*model.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*model.Application, error)
}

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Repo     ApplicationRepository
	Validate *validator.Validate
}

// ApplicationService orchestrates the application lifecycle: filing,
// employer-driven status transitions, and the sent/received trackers.
type ApplicationService struct {
	repo     ApplicationRepository
	validate *validator.Validate
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	v := opts.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &ApplicationService{repo: opts.Repo, validate: v}
}

// Apply files a new application in the Sent state.
func (s *ApplicationService) Apply(ctx context.Context, candidateID string, req *model.CreateApplicationRequest) (*model.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate application: %w", err)
	}
	return s.repo.Create(ctx, candidateID, req)
}

// Get retrieves an application by id.
func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves an application owned by employerID to next. The
// pipeline only moves forward; illegal jumps are rejected with
// model.ErrIllegalTransition.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, employerID string, next model.ApplicationStatus) (*model.Application, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", model.ErrIllegalTransition, next)
	}
	return s.repo.UpdateStatus(ctx, id, employerID, next)
}

// ListSent lists the candidate's own applications, newest first.
func (s *ApplicationService) ListSent(ctx context.Context, candidateID string) ([]*model.Application, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

// ListReceived lists applications received across the employer's postings.
func (s *ApplicationService) ListReceived(ctx context.Context, employerID string) ([]*model.Application, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

// ListForJob lists applications to one posting.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	return s.repo.ListByJob(ctx, jobID)
}
