package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/domain/model"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSetupNotAllowed is returned when a profile-setup submission does not
// come from the session that owns the account.
var ErrSetupNotAllowed = errors.New("profile setup not allowed for this session")

// CandidateRepository is the persistence surface CandidateService needs.
type CandidateRepository interface {
	Create(ctx context.Context, req *model.SignupCandidateRequest, passwordHash string) (*model.Candidate, error)
	GetByID(ctx context.Context, id string) (*model.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*model.Candidate, error)
	CompleteSetup(ctx context.Context, id string, req *model.SetupProfileRequest) (*model.Candidate, error)
	Update(ctx context.Context, id string, req *model.UpdateCandidateRequest) (*model.Candidate, error)
	Search(ctx context.Context, filter model.CandidateFilter) ([]*model.Candidate, error)
}

// CandidateServiceOptions groups dependencies for CandidateService.
type CandidateServiceOptions struct {
	Repo     CandidateRepository
	Sessions *SessionService
	Validate *validator.Validate
	// BcryptCost overrides the password hashing cost; zero means the library
	// default. Tests lower it.
	BcryptCost int
}

// CandidateService orchestrates candidate signup, login and profile flows.
type CandidateService struct {
	repo       CandidateRepository
	sessions   *SessionService
	validate   *validator.Validate
	bcryptCost int
}

// NewCandidateService constructs a new CandidateService.
func NewCandidateService(opts CandidateServiceOptions) *CandidateService {
	v := opts.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CandidateService{
		repo:       opts.Repo,
		sessions:   opts.Sessions,
		validate:   v,
		bcryptCost: cost,
	}
}

// Signup registers a candidate account and marks the visitor session as
// signed up. The candidate is not logged in yet; profile setup comes first.
func (s *CandidateService) Signup(ctx context.Context, visitorID string, req *model.SignupCandidateRequest) (*model.Candidate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	candidate, err := s.repo.Create(ctx, req, string(hash))
	if err != nil {
		return nil, err
	}

	if sessErr := s.sessions.MarkSignedUp(ctx, visitorID, candidate.Email); sessErr != nil {
		return nil, sessErr
	}
	return candidate, nil
}

// Login checks the credentials and marks the visitor session logged in.
func (s *CandidateService) Login(ctx context.Context, visitorID string, req *model.CandidateLoginRequest) (*model.Candidate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate login: %w", err)
	}

	candidate, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrCandidateNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(candidate.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if sessErr := s.sessions.MarkLoggedIn(ctx, visitorID, candidate.Email, candidate.ID); sessErr != nil {
		return nil, sessErr
	}
	return candidate, nil
}

// CompleteSetup stores the wizard fields, then downgrades the session: the
// signup flag is cleared and the candidate must log in fresh. Only the
// session that owns the account (matching email, signed up or logged in)
// may submit the wizard.
func (s *CandidateService) CompleteSetup(ctx context.Context, visitorID, candidateID string, req *model.SetupProfileRequest) (*model.Candidate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate profile setup: %w", err)
	}

	rec, err := s.sessions.Get(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if !rec.SignedUp && !rec.IsLoggedIn() {
		return nil, ErrSetupNotAllowed
	}

	owner, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(owner.Email, rec.Email) {
		return nil, ErrSetupNotAllowed
	}

	candidate, err := s.repo.CompleteSetup(ctx, candidateID, req)
	if err != nil {
		return nil, err
	}

	if sessErr := s.sessions.MarkProfileSetupCompleted(ctx, visitorID); sessErr != nil {
		return nil, sessErr
	}
	return candidate, nil
}

// Get retrieves a candidate by id.
func (s *CandidateService) Get(ctx context.Context, id string) (*model.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial profile update.
func (s *CandidateService) Update(ctx context.Context, id string, req *model.UpdateCandidateRequest) (*model.Candidate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate profile update: %w", err)
	}
	return s.repo.Update(ctx, id, req)
}

// Search lists setup-complete candidates matching the filter.
func (s *CandidateService) Search(ctx context.Context, filter model.CandidateFilter) ([]*model.Candidate, error) {
	return s.repo.Search(ctx, filter)
}
