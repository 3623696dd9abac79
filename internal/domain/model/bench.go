package model

import "time"

// BenchVisibility controls which portals may list a bench candidate.
type BenchVisibility string

const (
	// BenchVisibilityInternal keeps the record private to the owning employer.
	BenchVisibilityInternal BenchVisibility = "internal"
	// BenchVisibilityExternal publishes the record on the public external
	// candidate views, including other companies' portals.
	BenchVisibilityExternal BenchVisibility = "external"
)

// Valid returns true if the BenchVisibility is a known value.
func (v BenchVisibility) Valid() bool {
	return v == BenchVisibilityInternal || v == BenchVisibilityExternal
}

// BenchCandidate is an employer-owned record on the internal candidate bench.
// Unlike Candidate it is not a login account; it is roster data an employer
// maintains about consultants available for placement.
type BenchCandidate struct {
	ID         string          `json:"id"          db:"id"`
	EmployerID string          `json:"employer_id" db:"employer_id"`
	FullName   string          `json:"full_name"   db:"full_name"`
	Email      string          `json:"email"       db:"email"`
	Headline   string          `json:"headline"    db:"headline"`
	Location   string          `json:"location"    db:"location"`
	Skills     []string        `json:"skills"      db:"skills"`
	Experience string          `json:"experience"  db:"experience"`
	ResumeID   *string         `json:"resume_id,omitempty" db:"resume_id"`
	// ResumeText is extracted from the uploaded resume PDF to make the
	// record searchable.
	ResumeText string          `json:"-"           db:"resume_text"`
	Visibility BenchVisibility `json:"visibility"  db:"visibility"`
	CreatedAt  time.Time       `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"  db:"updated_at"`
}

// CreateBenchCandidateRequest adds a single candidate to the bench.
type CreateBenchCandidateRequest struct {
	FullName   string   `json:"full_name"  validate:"required,min=1,max=200"`
	Email      string   `json:"email"      validate:"required,email"`
	Headline   string   `json:"headline"   validate:"max=200"`
	Location   string   `json:"location"   validate:"max=200"`
	Skills     []string `json:"skills"     validate:"max=50,dive,min=1,max=80"`
	Experience string   `json:"experience" validate:"max=8000"`
	ResumeID   *string  `json:"resume_id,omitempty" validate:"omitempty,uuid4"`
	Visibility BenchVisibility `json:"visibility"`
}

// BulkUploadResult summarizes a roster upload: one row per CSV line, with
// per-row failures collected instead of aborting the whole batch.
type BulkUploadResult struct {
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
	Errors  []BulkUploadError `json:"errors,omitempty"`
}

// BulkUploadError records why a single roster row was rejected.
type BulkUploadError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
