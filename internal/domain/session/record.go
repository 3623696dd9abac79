// Package session contains domain-level types for the visitor session record.
// It is pure and free of storage/transport concerns.
package session

import "encoding/json"

// Role is the visitor's role, derived from which identity key is populated.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Record is the durable authentication/identity state for one visitor.
//
// The JSON field names token, userId, employerId and companyProfile are a
// compatibility contract with the storage model this service replaces; do not
// rename them.
type Record struct {
	// Token is the opaque employer credential. Presence implies an
	// authenticated employer pending server-side verification.
	Token string `json:"token,omitempty"`

	// UserID is the candidate's id. Set by MarkLoggedIn only.
	UserID string `json:"userId,omitempty"`

	// EmployerID is the employer's id. Set by Login only.
	EmployerID string `json:"employerId,omitempty"`

	// CompanyProfile is the employer profile payload cached at login.
	CompanyProfile json.RawMessage `json:"companyProfile,omitempty"`

	// SignedUp records candidate signup step 1 completion. It does not imply
	// LoggedIn; profile setup must finish and the candidate must log in again.
	SignedUp bool `json:"signedUp,omitempty"`

	// LoggedIn records a completed candidate login.
	LoggedIn bool `json:"loggedIn,omitempty"`

	// Email is the address the candidate signed up or logged in with.
	Email string `json:"email,omitempty"`
}

// Role derives the visitor's role. Sessions are single-role: the mutators
// clear the other role's keys, so at most one of UserID/EmployerID is set.
func (r Record) Role() Role {
	switch {
	case r.EmployerID != "":
		return RoleEmployer
	case r.UserID != "":
		return RoleCandidate
	default:
		return RoleGuest
	}
}

// HasEmployerToken reports whether an employer credential is present. The
// gate must not call the verifier when this is false.
func (r Record) HasEmployerToken() bool { return r.Token != "" }

// IsLoggedIn reports a completed candidate login.
func (r Record) IsLoggedIn() bool { return r.LoggedIn && r.UserID != "" }

// ClearEmployer removes every employer key. Used by logout and by the gate
// after a rejected verification.
func (r *Record) ClearEmployer() {
	r.Token = ""
	r.EmployerID = ""
	r.CompanyProfile = nil
}

// ClearCandidate removes every candidate key and flow flag.
func (r *Record) ClearCandidate() {
	r.UserID = ""
	r.SignedUp = false
	r.LoggedIn = false
	r.Email = ""
}

// IsEmpty reports whether the record carries no identity or flow state.
func (r Record) IsEmpty() bool {
	return r.Token == "" && r.UserID == "" && r.EmployerID == "" &&
		len(r.CompanyProfile) == 0 && !r.SignedUp && !r.LoggedIn && r.Email == ""
}
