package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
)

type IndustryService struct {
	industries ports.IndustryRepository
	jobs       ports.JobRepository
	cache      ports.QueryCache
	authz      *authz.Engine
	limits     paginate.Limits
	log        zerolog.Logger
}

func NewIndustryService(
	industries ports.IndustryRepository,
	jobs ports.JobRepository,
	cache ports.QueryCache,
	engine *authz.Engine,
	limits paginate.Limits,
	log zerolog.Logger,
) *IndustryService {
	return &IndustryService{
		industries: industries,
		jobs:       jobs,
		cache:      cache,
		authz:      engine,
		limits:     limits,
		log:        log,
	}
}

func (s *IndustryService) List(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	values := q.Values()
	return s.cache.Fetch(ctx, cachekey.IndustryList(q.Base(), values), func(ctx context.Context) (any, error) {
		page, size, window := pageWindow(q, s.limits)
		items, total, err := s.industries.List(ctx, ports.IndustryFilter{Search: values.Get("search"), Window: window})
		if err != nil {
			return nil, fmt.Errorf("list industries: %w", err)
		}
		return paginate.List(items, total, page, size, q.Links()), nil
	})
}

func (s *IndustryService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.cache.Fetch(ctx, cachekey.IndustryDetail(id), func(ctx context.Context) (any, error) {
		return s.industries.FindByID(ctx, id)
	})
}

func (s *IndustryService) Create(ctx context.Context, p *domain.Principal, in ports.IndustryInput) (*domain.Industry, error) {
	if err := s.authz.Permit(p, authz.ActionCreate, domain.ResourceIndustry); err != nil {
		return nil, err
	}
	if err := requireFields("name", deref(in.Name)); err != nil {
		return nil, err
	}

	industry := &domain.Industry{
		ID:        uuid.NewString(),
		CreatedBy: p.ID,
		CreatedAt: now(),
	}
	setString(&industry.Name, in.Name)
	setString(&industry.Description, in.Description)

	if err := s.industries.Create(ctx, industry); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, domain.ResourceIndustry)
	s.log.Info().Str("industry_id", industry.ID).Str("name", industry.Name).Msg("industry created")
	return industry, nil
}

func (s *IndustryService) Update(ctx context.Context, p *domain.Principal, id string, in ports.IndustryInput, partial bool) (*domain.Industry, error) {
	industry, err := s.load(ctx, p, updateAction(partial), id)
	if err != nil {
		return nil, err
	}
	if !partial || in.Name != nil {
		if err := requireFields("name", deref(in.Name)); err != nil {
			return nil, err
		}
	}
	setString(&industry.Name, in.Name)
	setString(&industry.Description, in.Description)

	if err := s.industries.Update(ctx, industry); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, domain.ResourceIndustry)
	return industry, nil
}

func (s *IndustryService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if _, err := s.load(ctx, p, authz.ActionDelete, id); err != nil {
		return err
	}
	if err := s.industries.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, domain.ResourceIndustry)
	return nil
}

func (s *IndustryService) load(ctx context.Context, p *domain.Principal, action authz.Action, id string) (*domain.Industry, error) {
	if err := s.authz.Permit(p, action, domain.ResourceIndustry); err != nil {
		return nil, err
	}
	industry, err := s.industries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, action, industry); err != nil {
		return nil, err
	}
	return industry, nil
}

type industryJobsResponse struct {
	Count int                 `json:"count"`
	Jobs  []domain.JobSummary `json:"jobs"`
}

// Jobs lists every job filed under the industry, newest first.
func (s *IndustryService) Jobs(ctx context.Context, id string) (json.RawMessage, error) {
	return s.cache.Fetch(ctx, cachekey.IndustryJobs(id), func(ctx context.Context) (any, error) {
		if _, err := s.industries.FindByID(ctx, id); err != nil {
			return nil, err
		}
		jobs, total, err := s.jobs.List(ctx, ports.JobFilter{IndustryID: id})
		if err != nil {
			return nil, fmt.Errorf("industry jobs: %w", err)
		}
		if jobs == nil {
			jobs = []domain.JobSummary{}
		}
		return industryJobsResponse{Count: total, Jobs: jobs}, nil
	})
}
