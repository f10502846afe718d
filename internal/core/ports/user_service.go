package ports

import (
	"context"
	"encoding/json"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// UserProfileInput carries an applicant profile write; nil fields are unchanged.
type UserProfileInput struct {
	Bio              *string
	PortfolioLinks   map[string]string
	Location         *string
	ExperienceLevel  *string
	SocialMediaLinks map[string]string
}

// EmployerProfileInput carries an employer profile write; nil fields are unchanged.
type EmployerProfileInput struct {
	CompanyWebsite     *string
	CompanyDescription *string
	CompanyLocation    *string
}

type UserService interface {
	List(ctx context.Context, p *domain.Principal, q ListQuery) (json.RawMessage, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.User, error)
	Categorized(ctx context.Context, p *domain.Principal, q ListQuery) (json.RawMessage, error)

	UserProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.UserProfile, error)
	UpdateUserProfile(ctx context.Context, p *domain.Principal, userID string, in UserProfileInput, partial bool) (*domain.UserProfile, error)
	DeleteUserProfile(ctx context.Context, p *domain.Principal, userID string) error

	EmployerProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.EmployerProfile, error)
	UpdateEmployerProfile(ctx context.Context, p *domain.Principal, userID string, in EmployerProfileInput, partial bool) (*domain.EmployerProfile, error)
	DeleteEmployerProfile(ctx context.Context, p *domain.Principal, userID string) error
}
