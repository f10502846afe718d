package ports

import (
	"context"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// Window selects a slice of a result set. A zero Limit returns everything
// from Offset on.
type Window struct {
	Offset int
	Limit  int
}

// JobFilter carries the query parameters for listing jobs.
type JobFilter struct {
	Search     string // optional: partial match on title, type, company, location or industry name
	IndustryID string // optional
	PostedBy   string // optional
	Oldest     bool   // order by posted_at ascending instead of newest first
	Window
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	// List returns summaries matching filter, joined with their industry
	// name, and the total count before windowing.
	List(ctx context.Context, filter JobFilter) ([]domain.JobSummary, int, error)
}

// IndustryFilter carries the query parameters for listing industries.
type IndustryFilter struct {
	Search string // optional: partial match on name
	Window
}

// IndustryRepository defines persistence operations for industries.
// Create and Update return domain.ErrIndustryExists on a name clash.
type IndustryRepository interface {
	Create(ctx context.Context, industry *domain.Industry) error
	FindByID(ctx context.Context, id string) (*domain.Industry, error)
	Update(ctx context.Context, industry *domain.Industry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter IndustryFilter) ([]domain.Industry, int, error)
}

// ApplicationFilter carries the query parameters for listing applications.
// EmployerID and ApplicantID come from the caller's authorization scope.
type ApplicationFilter struct {
	EmployerID  string
	ApplicantID string
	JobID       string
	Search      string // optional: partial match on job title, company, industry name or status
	Window
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	// Create inserts a, returning domain.ErrDuplicateApplication when the
	// (job, applicant) pair already exists.
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.ApplicationView, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ApplicationFilter) ([]domain.ApplicationView, int, error)
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, w Window) ([]domain.UserSummary, int, error)
}

// ProfileRepository defines persistence operations for both profile kinds.
// Lookups are by owning user id.
type ProfileRepository interface {
	CreateUserProfile(ctx context.Context, p *domain.UserProfile) error
	UserProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveUserProfile(ctx context.Context, p *domain.UserProfile) error
	DeleteUserProfile(ctx context.Context, userID string) error

	CreateEmployerProfile(ctx context.Context, p *domain.EmployerProfile) error
	EmployerProfile(ctx context.Context, userID string) (*domain.EmployerProfile, error)
	SaveEmployerProfile(ctx context.Context, p *domain.EmployerProfile) error
	DeleteEmployerProfile(ctx context.Context, userID string) error
}
