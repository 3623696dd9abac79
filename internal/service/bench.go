package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hireloop/hireloop/internal/domain/model"
	"github.com/hireloop/hireloop/internal/ports"
)

// BenchRepository is the persistence surface BenchService needs.
type BenchRepository interface {
	Create(ctx context.Context, employerID string, req *model.CreateBenchCandidateRequest, resumeText string) (*model.BenchCandidate, error)
	GetByID(ctx context.Context, id string) (*model.BenchCandidate, error)
	Delete(ctx context.Context, id, employerID string) error
	ListInternal(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error)
	ListExternal(ctx context.Context, limit, offset int) ([]*model.BenchCandidate, error)
	ListOtherCompanies(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error)
	Search(ctx context.Context, employerID, query string, limit, offset int) ([]*model.BenchCandidate, error)
}

// FileFetcher retrieves stored files so resume text can be extracted.
type FileFetcher interface {
	GetByID(ctx context.Context, id string) (*model.StoredFile, error)
}

// maxBulkRows caps one roster upload.
const maxBulkRows = 1000

// BenchServiceOptions groups dependencies for BenchService.
type BenchServiceOptions struct {
	Repo      BenchRepository
	Files     FileFetcher
	Extractor ports.ResumeTextExtractor
	Validate  *validator.Validate
	Logger    *slog.Logger
}

// BenchService manages employer bench rosters: single and bulk candidate
// uploads, visibility-scoped listings and free-text search.
type BenchService struct {
	repo      BenchRepository
	files     FileFetcher
	extractor ports.ResumeTextExtractor
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewBenchService constructs a new BenchService.
func NewBenchService(opts BenchServiceOptions) *BenchService {
	v := opts.Validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BenchService{
		repo:      opts.Repo,
		files:     opts.Files,
		extractor: opts.Extractor,
		validate:  v,
		logger:    logger,
	}
}

// Create adds a single candidate to employerID's bench. When a resume file is
// attached its text is extracted for search; extraction failures are logged
// and the record is stored with empty text.
func (s *BenchService) Create(ctx context.Context, employerID string, req *model.CreateBenchCandidateRequest) (*model.BenchCandidate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate bench candidate: %w", err)
	}
	if req.Visibility != "" && !req.Visibility.Valid() {
		return nil, errors.New("invalid visibility")
	}

	resumeText := s.extractResumeText(ctx, req.ResumeID)
	return s.repo.Create(ctx, employerID, req, resumeText)
}

func (s *BenchService) extractResumeText(ctx context.Context, resumeID *string) string {
	if resumeID == nil || s.files == nil || s.extractor == nil {
		return ""
	}
	file, err := s.files.GetByID(ctx, *resumeID)
	if err != nil {
		s.logger.WarnContext(ctx, "resume fetch failed, storing without text", "resume_id", *resumeID, "err", err)
		return ""
	}
	text, err := s.extractor.ExtractText(file.Data)
	if err != nil {
		s.logger.WarnContext(ctx, "resume text extraction failed", "resume_id", *resumeID, "err", err)
		return ""
	}
	return text
}

// BulkUpload reads a CSV roster and creates one bench record per row. The
// expected header is full_name,email,headline,location,skills,experience
// with skills separated by semicolons. Row failures are collected instead of
// aborting the batch.
func (s *BenchService) BulkUpload(ctx context.Context, employerID string, r io.Reader, visibility model.BenchVisibility) (*model.BulkUploadResult, error) {
	if visibility == "" {
		visibility = model.BenchVisibilityInternal
	}
	if !visibility.Valid() {
		return nil, errors.New("invalid visibility")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	cols, err := rosterColumns(header)
	if err != nil {
		return nil, err
	}

	result := &model.BulkUploadResult{}
	for line := 2; ; line++ {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.BulkUploadError{Line: line, Reason: readErr.Error()})
			continue
		}
		if result.Created+result.Failed >= maxBulkRows {
			return nil, fmt.Errorf("roster exceeds %d rows", maxBulkRows)
		}

		req := cols.toRequest(record, visibility)
		if validateErr := s.validate.Struct(req); validateErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.BulkUploadError{Line: line, Reason: validateErr.Error()})
			continue
		}

		if _, createErr := s.repo.Create(ctx, employerID, req, ""); createErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.BulkUploadError{Line: line, Reason: createErr.Error()})
			continue
		}
		result.Created++
	}

	return result, nil
}

// rosterCols maps roster header names to column indexes.
type rosterCols map[string]int

func rosterColumns(header []string) (rosterCols, error) {
	cols := make(rosterCols, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"full_name", "email"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("roster is missing required column %q", required)
		}
	}
	return cols, nil
}

func (c rosterCols) field(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c rosterCols) toRequest(record []string, visibility model.BenchVisibility) *model.CreateBenchCandidateRequest {
	req := &model.CreateBenchCandidateRequest{
		FullName:   c.field(record, "full_name"),
		Email:      c.field(record, "email"),
		Headline:   c.field(record, "headline"),
		Location:   c.field(record, "location"),
		Experience: c.field(record, "experience"),
		Visibility: visibility,
	}
	if raw := c.field(record, "skills"); raw != "" {
		for _, skill := range strings.Split(raw, ";") {
			if skill = strings.TrimSpace(skill); skill != "" {
				req.Skills = append(req.Skills, skill)
			}
		}
	}
	return req
}

// Get retrieves a bench record by id.
func (s *BenchService) Get(ctx context.Context, id string) (*model.BenchCandidate, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a bench record owned by employerID.
func (s *BenchService) Delete(ctx context.Context, id, employerID string) error {
	return s.repo.Delete(ctx, id, employerID)
}

// ListInternal lists the employer's own bench.
func (s *BenchService) ListInternal(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error) {
	return s.repo.ListInternal(ctx, employerID, limit, offset)
}

// ListExternal lists externally visible bench candidates across employers.
func (s *BenchService) ListExternal(ctx context.Context, limit, offset int) ([]*model.BenchCandidate, error) {
	return s.repo.ListExternal(ctx, limit, offset)
}

// ListOtherCompanies lists externally visible bench candidates owned by other
// employers.
func (s *BenchService) ListOtherCompanies(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error) {
	return s.repo.ListOtherCompanies(ctx, employerID, limit, offset)
}

// Search matches the employer's bench against a free-text query.
func (s *BenchService) Search(ctx context.Context, employerID, query string, limit, offset int) ([]*model.BenchCandidate, error) {
	return s.repo.Search(ctx, employerID, query, limit, offset)
}
