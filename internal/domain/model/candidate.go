package model

import "time"

// Candidate is a registered job seeker account with their profile.
type Candidate struct {
	ID           string     `json:"id"             db:"id"`
	Email        string     `json:"email"          db:"email"`
	PasswordHash string     `json:"-"              db:"password_hash"`
	FullName     string     `json:"full_name"      db:"full_name"`
	Headline     string     `json:"headline"       db:"headline"`
	Location     string     `json:"location"       db:"location"`
	Skills       []string   `json:"skills"         db:"skills"`
	Experience   string     `json:"experience"     db:"experience"`
	ResumeID     *string    `json:"resume_id,omitempty" db:"resume_id"`
	SetupDone    bool       `json:"setup_done"     db:"setup_done"`
	CreatedAt    time.Time  `json:"created_at"     db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"     db:"updated_at"`
}

// SignupCandidateRequest is step 1 of candidate registration.
type SignupCandidateRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
}

// CandidateLoginRequest is a candidate login submission.
type CandidateLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetupProfileRequest completes the candidate profile-setup wizard.
type SetupProfileRequest struct {
	Headline   string   `json:"headline"   validate:"required,min=2,max=200"`
	Location   string   `json:"location"   validate:"max=200"`
	Skills     []string `json:"skills"     validate:"required,min=1,max=50,dive,min=1,max=80"`
	Experience string   `json:"experience" validate:"max=8000"`
	ResumeID   *string  `json:"resume_id,omitempty" validate:"omitempty,uuid4"`
}

// UpdateCandidateRequest carries a partial profile update.
type UpdateCandidateRequest struct {
	FullName   *string   `json:"full_name,omitempty"  validate:"omitempty,min=1,max=200"`
	Headline   *string   `json:"headline,omitempty"   validate:"omitempty,min=2,max=200"`
	Location   *string   `json:"location,omitempty"   validate:"omitempty,max=200"`
	Skills     *[]string `json:"skills,omitempty"     validate:"omitempty,max=50,dive,min=1,max=80"`
	Experience *string   `json:"experience,omitempty" validate:"omitempty,max=8000"`
	ResumeID   *string   `json:"resume_id,omitempty"  validate:"omitempty,uuid4"`
}

// CandidateFilter narrows candidate searches. Zero values mean "no constraint".
type CandidateFilter struct {
	Skill    string
	Location string
	Query    string
	Limit    int
	Offset   int
}

// Normalize clamps pagination to sane bounds.
func (f *CandidateFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
