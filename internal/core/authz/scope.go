package authz

import "github.com/easework/jobboard-api/internal/core/domain"

// ApplicationScope restricts which applications a listing may return.
// The zero value matches nothing.
type ApplicationScope struct {
	All         bool
	EmployerID  string // applications to jobs posted by this employer
	ApplicantID string // applications submitted by this applicant
}

// Empty reports whether the scope matches no application.
func (s ApplicationScope) Empty() bool {
	return !s.All && s.EmployerID == "" && s.ApplicantID == ""
}

// Matches reports whether a is visible under s.
func (s ApplicationScope) Matches(a *domain.Application) bool {
	switch {
	case s.All:
		return true
	case s.EmployerID != "":
		return a.JobPostedBy == s.EmployerID
	case s.ApplicantID != "":
		return a.ApplicantID == s.ApplicantID
	}
	return false
}

// ApplicationScope derives the listing scope for p.
func (e *Engine) ApplicationScope(p *domain.Principal) ApplicationScope {
	switch {
	case !p.Authenticated():
		return ApplicationScope{}
	case p.Elevated():
		return ApplicationScope{All: true}
	case p.Role == domain.RoleEmployer:
		return ApplicationScope{EmployerID: p.ID}
	case p.Role == domain.RoleApplicant:
		return ApplicationScope{ApplicantID: p.ID}
	}
	return ApplicationScope{}
}
