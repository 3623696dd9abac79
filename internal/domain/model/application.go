package model

import (
	"errors"
	"fmt"
	"time"
)

// ApplicationStatus is the lifecycle stage of a job application. The string
// values are part of the API contract.
type ApplicationStatus string

const (
	StatusSent         ApplicationStatus = "Sent"
	StatusUnderReview  ApplicationStatus = "Under Review"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusHired        ApplicationStatus = "Hired"
	StatusRejected     ApplicationStatus = "Rejected"
)

// Valid returns true if the ApplicationStatus is a known value.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSent, StatusUnderReview, StatusInterviewing, StatusHired, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// CanTransition reports whether moving from s to next is legal. The pipeline
// only moves forward: Sent, Under Review, Interviewing, then Hired. Rejected
// is reachable from any non-terminal stage.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	switch s {
	case StatusSent:
		return next == StatusUnderReview
	case StatusUnderReview:
		return next == StatusInterviewing
	case StatusInterviewing:
		return next == StatusHired
	}
	return false
}

// ErrIllegalTransition is returned when a status update would skip a stage or
// move out of a terminal state.
var ErrIllegalTransition = errors.New("illegal application status transition")

// Application is a candidate's application to a job posting.
type Application struct {
	ID          string            `json:"id"           db:"id"`
	JobID       string            `json:"job_id"       db:"job_id"`
	CandidateID string            `json:"candidate_id" db:"candidate_id"`
	EmployerID  string            `json:"employer_id"  db:"employer_id"`
	Status      ApplicationStatus `json:"status"       db:"status"`
	CoverNote   string            `json:"cover_note"   db:"cover_note"`
	CreatedAt   time.Time         `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"   db:"updated_at"`
}

// Transition moves the application to next, enforcing the pipeline order.
func (a *Application) Transition(next ApplicationStatus) error {
	if !a.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.Status, next)
	}
	a.Status = next
	return nil
}

// CreateApplicationRequest is a candidate applying to a posting.
type CreateApplicationRequest struct {
	JobID     string `json:"job_id"     validate:"required,uuid4"`
	CoverNote string `json:"cover_note" validate:"max=4000"`
}
