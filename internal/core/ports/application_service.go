package ports

import (
	"context"
	"encoding/json"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/paginate"
)

// ApplicationInput carries a new application.
type ApplicationInput struct {
	JobID       string
	ResumeLink  string
	CoverLetter string
}

// ApplicationService defines use-case operations for applications.
// Listings are scoped to the caller and therefore not cached.
type ApplicationService interface {
	List(ctx context.Context, p *domain.Principal, q ListQuery) (paginate.Page[domain.ApplicationView], error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.ApplicationView, error)
	Create(ctx context.Context, p *domain.Principal, in ApplicationInput) (*domain.Application, error)
	// Update accepts the raw JSON object of the request body. Any member
	// other than "status" rejects the whole update.
	Update(ctx context.Context, p *domain.Principal, id string, payload map[string]json.RawMessage, partial bool) (*domain.ApplicationView, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
