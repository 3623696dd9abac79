package model

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle status of a job posting.
type JobStatus string

const (
	// JobStatusOpen means the posting accepts applications.
	JobStatusOpen JobStatus = "open"
	// JobStatusClosed means the posting no longer accepts applications but
	// stays visible on existing applications.
	JobStatusClosed JobStatus = "closed"
)

// Valid returns true if the JobStatus is a known value.
func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Job is an employer's job posting.
type Job struct {
	ID          string    `json:"id"           db:"id"`
	EmployerID  string    `json:"employer_id"  db:"employer_id"`
	Title       string    `json:"title"        db:"title"`
	Description string    `json:"description"  db:"description"`
	Location    string    `json:"location"     db:"location"`
	Skills      []string  `json:"skills"       db:"skills"`
	SalaryRange string    `json:"salary_range" db:"salary_range"`
	Status      JobStatus `json:"status"       db:"status"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updated_at"`
}

// Open reports whether the posting currently accepts applications.
func (j Job) Open() bool { return j.Status == JobStatusOpen }

// CreateJobRequest carries the fields of a new posting.
type CreateJobRequest struct {
	Title       string   `json:"title"        validate:"required,min=2,max=200"`
	Description string   `json:"description"  validate:"required,min=10"`
	Location    string   `json:"location"     validate:"max=200"`
	Skills      []string `json:"skills"       validate:"max=50,dive,min=1,max=80"`
	SalaryRange string   `json:"salary_range" validate:"max=100"`
}

// UpdateJobRequest carries a partial update; nil fields are left unchanged.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty"        validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description,omitempty"  validate:"omitempty,min=10"`
	Location    *string    `json:"location,omitempty"     validate:"omitempty,max=200"`
	Skills      *[]string  `json:"skills,omitempty"       validate:"omitempty,max=50,dive,min=1,max=80"`
	SalaryRange *string    `json:"salary_range,omitempty" validate:"omitempty,max=100"`
	Status      *JobStatus `json:"status,omitempty"`
}

// JobFilter narrows job searches. Zero values mean "no constraint".
type JobFilter struct {
	EmployerID string
	Title      string
	Location   string
	Skill      string
	OpenOnly   bool
	Limit      int
	Offset     int
}

// Normalize trims filter terms and clamps pagination to sane bounds.
func (f *JobFilter) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Location = strings.TrimSpace(f.Location)
	f.Skill = strings.TrimSpace(f.Skill)
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
