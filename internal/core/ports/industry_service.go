package ports

import (
	"context"
	"encoding/json"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// IndustryInput carries an industry write; nil fields are unchanged.
type IndustryInput struct {
	Name        *string
	Description *string
}

type IndustryService interface {
	List(ctx context.Context, q ListQuery) (json.RawMessage, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
	Create(ctx context.Context, p *domain.Principal, in IndustryInput) (*domain.Industry, error)
	Update(ctx context.Context, p *domain.Principal, id string, in IndustryInput, partial bool) (*domain.Industry, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
	Jobs(ctx context.Context, id string) (json.RawMessage, error)
}
