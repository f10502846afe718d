package ports

import (
	"context"
	"encoding/json"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// JobInput carries a job write. Nil fields are left unchanged on partial
// updates; a full update or create requires Title, Company, Location,
// Types and Description.
type JobInput struct {
	Title            *string
	Company          *string
	Location         *string
	Wage             *int
	Types            []string
	ExperienceLevel  *string
	Description      *string
	RequiredSkills   []string
	Responsibilities []string
	IndustryID       *string
	IsActive         *bool
}

// JobService defines use-case operations for jobs. Read operations return
// the rendered JSON body so cached and fresh responses are identical.
type JobService interface {
	List(ctx context.Context, q ListQuery) (json.RawMessage, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
	Create(ctx context.Context, p *domain.Principal, in JobInput) (*domain.Job, error)
	Update(ctx context.Context, p *domain.Principal, id string, in JobInput, partial bool) (*domain.Job, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error

	Categorized(ctx context.Context, q ListQuery) (json.RawMessage, error)
	UsedCategories(ctx context.Context, q ListQuery) (json.RawMessage, error)
	Applicants(ctx context.Context, p *domain.Principal, jobID string) (json.RawMessage, error)
}
