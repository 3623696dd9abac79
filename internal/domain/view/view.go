// Package view defines the portal's page identifiers and the total mapping
// from URL view tokens to pages. The token set is part of the application's
// URL-compatibility surface and must not drift.
package view

import "time"

// View identifies a routable portal page, keyed by the `view` query parameter.
// Keep string form so values round-trip through URLs and logs unchanged.
type View string

const (
	// ViewHome is the landing page and the fallback for unknown tokens.
	ViewHome View = "home"

	// Candidate-facing views.
	ViewLogin   View = "login"
	ViewSignup  View = "signup"
	ViewProfile View = "profile"
	ViewSetup   View = "setup"

	// Employer-facing views.
	ViewEmployerLogin        View = "employerlogin"
	ViewEmployerSignup       View = "employersignup"
	ViewEmployerSetup        View = "employersetup"
	ViewCompanyProfile       View = "companyprofile"
	ViewUploadCandidates     View = "uploadcandidates"
	ViewInternalCandidates   View = "internalcandidates"
	ViewJobs                 View = "jobs"
	ViewCandidateSearch      View = "candidate-search"
	ViewJobPosting           View = "jobposting"
	ViewApplicationsSent     View = "applications-sent"
	ViewApplicationsReceived View = "applications-received"

	// Public views.
	ViewAllJobs                  View = "alljobs"
	ViewExternalCandidates       View = "externalcandidates"
	ViewOtherCompaniesCandidates View = "othercompaniescandidates"
)

// Page identifies the component rendered for a view. Several views share a
// page (login/signup render the same tabbed auth component).
type Page string

const (
	PageHome                     Page = "home"
	PageCandidateAuth            Page = "candidate_auth"
	PageCandidateProfile         Page = "candidate_profile"
	PageProfileSetup             Page = "profile_setup"
	PageEmployerAuth             Page = "employer_auth"
	PageEmployerSetup            Page = "employer_setup"
	PageCompanyProfile           Page = "company_profile"
	PageUploadCandidates         Page = "upload_candidates"
	PageInternalCandidates       Page = "internal_candidates"
	PageJobSearch                Page = "job_search"
	PageCandidateSearch          Page = "candidate_search"
	PageJobPosting               Page = "job_posting"
	PageAllJobs                  Page = "all_jobs"
	PageExternalCandidates       Page = "external_candidates"
	PageOtherCompaniesCandidates Page = "other_companies_candidates"
	PageApplicationsSent         Page = "applications_sent"
	PageApplicationsReceived     Page = "applications_received"
)

// Requirement is the access rule a view declares. The gate interprets it; the
// resolver only carries it.
type Requirement int

const (
	// RequireNone marks a public view.
	RequireNone Requirement = iota
	// RequireCandidateLogin marks views needing a logged-in candidate.
	RequireCandidateLogin
	// RequireCandidateSignup marks views needing a signed-up (but not yet
	// logged-in) candidate. A fully logged-in candidate is bounced away.
	RequireCandidateSignup
	// RequireEmployerVerified marks views needing a server-verified employer token.
	RequireEmployerVerified
)

// LoadingDelay is how long the portal shell reports a loading placeholder
// after a view change. Purely presentational: resolution and gating never
// wait on it.
const LoadingDelay = 800 * time.Millisecond

// route pairs the page and access requirement for one view.
type route struct {
	page Page
	req  Requirement
}

// routes is the routing table. Tokens absent from this map resolve to home.
// employersetup and jobposting carried no gate in the system this replaces;
// both are employer-only surfaces, so they get the employer requirement here.
var routes = map[View]route{
	ViewHome:                     {PageHome, RequireNone},
	ViewLogin:                    {PageCandidateAuth, RequireNone},
	ViewSignup:                   {PageCandidateAuth, RequireNone},
	ViewProfile:                  {PageCandidateProfile, RequireCandidateLogin},
	ViewSetup:                    {PageProfileSetup, RequireCandidateSignup},
	ViewEmployerLogin:            {PageEmployerAuth, RequireNone},
	ViewEmployerSignup:           {PageEmployerAuth, RequireNone},
	ViewEmployerSetup:            {PageEmployerSetup, RequireEmployerVerified},
	ViewCompanyProfile:           {PageCompanyProfile, RequireEmployerVerified},
	ViewUploadCandidates:         {PageUploadCandidates, RequireEmployerVerified},
	ViewInternalCandidates:       {PageInternalCandidates, RequireEmployerVerified},
	ViewJobs:                     {PageJobSearch, RequireEmployerVerified},
	ViewCandidateSearch:          {PageCandidateSearch, RequireEmployerVerified},
	ViewJobPosting:               {PageJobPosting, RequireEmployerVerified},
	ViewAllJobs:                  {PageAllJobs, RequireNone},
	ViewExternalCandidates:       {PageExternalCandidates, RequireNone},
	ViewOtherCompaniesCandidates: {PageOtherCompaniesCandidates, RequireNone},
	ViewApplicationsSent:         {PageApplicationsSent, RequireEmployerVerified},
	ViewApplicationsReceived:     {PageApplicationsReceived, RequireEmployerVerified},
}

// Parse maps a raw view token to a View. Total: unknown or empty tokens
// resolve to ViewHome, never an error.
func Parse(token string) View {
	v := View(token)
	if _, ok := routes[v]; ok {
		return v
	}
	return ViewHome
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	_, ok := routes[v]
	return ok
}

// Page returns the page component rendered for v. Unknown views fall back to
// the home page so the mapping stays total even for hand-built View values.
func (v View) Page() Page {
	if r, ok := routes[v]; ok {
		return r.page
	}
	return PageHome
}

// Requirement returns the access rule declared by v.
func (v View) Requirement() Requirement {
	if r, ok := routes[v]; ok {
		return r.req
	}
	return RequireNone
}

// String returns the URL token for v.
func (v View) String() string { return string(v) }

// All returns every known view. Order is not specified.
func All() []View {
	out := make([]View, 0, len(routes))
	for v := range routes {
		out = append(out, v)
	}
	return out
}
