package model

import (
	"encoding/json"
	"time"
)

// Employer is a registered employer account with its company profile.
type Employer struct {
	ID           string    `json:"id"            db:"id"`
	Email        string    `json:"email"         db:"email"`
	PasswordHash string    `json:"-"             db:"password_hash"`
	CompanyName  string    `json:"company_name"  db:"company_name"`
	Website      string    `json:"website"       db:"website"`
	// WebsiteDomain is the registrable domain (eTLD+1) derived from Website,
	// used for duplicate-company detection.
	WebsiteDomain string  `json:"website_domain" db:"website_domain"`
	About         string  `json:"about"          db:"about"`
	Location      string  `json:"location"       db:"location"`
	LogoID        *string `json:"logo_id,omitempty" db:"logo_id"`
	SetupDone     bool    `json:"setup_done"     db:"setup_done"`
	CreatedAt     time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"   db:"updated_at"`
}

// CompanyProfile is the subset of employer data cached in the session record
// and shown on public job listings.
func (e Employer) CompanyProfile() CompanyProfile {
	return CompanyProfile{
		EmployerID:  e.ID,
		CompanyName: e.CompanyName,
		Website:     e.Website,
		About:       e.About,
		Location:    e.Location,
		LogoID:      e.LogoID,
	}
}

// CompanyProfile is the public view of an employer.
type CompanyProfile struct {
	EmployerID  string  `json:"employer_id"`
	CompanyName string  `json:"company_name"`
	Website     string  `json:"website"`
	About       string  `json:"about"`
	Location    string  `json:"location"`
	LogoID      *string `json:"logo_id,omitempty"`
}

// MarshalRaw serializes the profile for session caching.
func (p CompanyProfile) MarshalRaw() (json.RawMessage, error) {
	return json.Marshal(p)
}

// SignupEmployerRequest registers a new employer account.
type SignupEmployerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Website     string `json:"website"      validate:"omitempty,url,max=300"`
}

// EmployerLoginRequest is an employer login submission.
type EmployerLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateEmployerRequest carries a partial company-profile update.
type UpdateEmployerRequest struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,min=1,max=200"`
	Website     *string `json:"website,omitempty"      validate:"omitempty,url,max=300"`
	About       *string `json:"about,omitempty"        validate:"omitempty,max=8000"`
	Location    *string `json:"location,omitempty"     validate:"omitempty,max=200"`
	LogoID      *string `json:"logo_id,omitempty"      validate:"omitempty,uuid4"`
}
