package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/grouping"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
)

type JobService struct {
	jobs         ports.JobRepository
	industries   ports.IndustryRepository
	applications ports.ApplicationRepository
	cache        ports.QueryCache
	authz        *authz.Engine
	limits       paginate.Limits
	log          zerolog.Logger
}

func NewJobService(
	jobs ports.JobRepository,
	industries ports.IndustryRepository,
	applications ports.ApplicationRepository,
	cache ports.QueryCache,
	engine *authz.Engine,
	limits paginate.Limits,
	log zerolog.Logger,
) *JobService {
	return &JobService{
		jobs:         jobs,
		industries:   industries,
		applications: applications,
		cache:        cache,
		authz:        engine,
		limits:       limits,
		log:          log,
	}
}

// List returns the {count, next, previous, results} envelope of jobs,
// newest first.
func (s *JobService) List(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	values := q.Values()
	return s.cache.Fetch(ctx, cachekey.JobList(q.Base(), values), func(ctx context.Context) (any, error) {
		page, size, window := pageWindow(q, s.limits)
		jobs, total, err := s.jobs.List(ctx, ports.JobFilter{Search: values.Get("search"), Window: window})
		if err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		return paginate.List(jobs, total, page, size, q.Links()), nil
	})
}

func (s *JobService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.cache.Fetch(ctx, cachekey.JobDetail(id), func(ctx context.Context) (any, error) {
		return s.jobs.FindByID(ctx, id)
	})
}

func (s *JobService) Create(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error) {
	if err := s.authz.Permit(p, authz.ActionCreate, domain.ResourceJob); err != nil {
		return nil, err
	}

	job := &domain.Job{
		ID:       uuid.NewString(),
		PostedBy: p.ID,
		PostedAt: now(),
		IsActive: true,
	}
	if err := s.apply(ctx, job, in, false); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.cache.Invalidate(ctx, domain.ResourceJob)
	s.log.Info().Str("job_id", job.ID).Str("posted_by", p.ID).Msg("job created")
	return job, nil
}

func (s *JobService) Update(ctx context.Context, p *domain.Principal, id string, in ports.JobInput, partial bool) (*domain.Job, error) {
	action := updateAction(partial)
	job, err := s.load(ctx, p, action, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, job, in, partial); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, domain.ResourceJob)
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if _, err := s.load(ctx, p, authz.ActionDelete, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, domain.ResourceJob)
	s.log.Info().Str("job_id", id).Str("deleted_by", p.ID).Msg("job deleted")
	return nil
}

// load runs both authorization phases around the lookup, so callers
// without rights learn nothing about whether the job exists.
func (s *JobService) load(ctx context.Context, p *domain.Principal, action authz.Action, id string) (*domain.Job, error) {
	if err := s.authz.Permit(p, action, domain.ResourceJob); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, action, job); err != nil {
		return nil, err
	}
	return job, nil
}

// apply copies in onto job. Unless partial, the mandatory fields must be set.
func (s *JobService) apply(ctx context.Context, job *domain.Job, in ports.JobInput, partial bool) error {
	if !partial {
		if err := requireFields(
			"title", deref(in.Title),
			"company", deref(in.Company),
			"location", deref(in.Location),
			"description", deref(in.Description),
		); err != nil {
			return err
		}
		if len(in.Types) == 0 {
			return domain.NewValidationError("type", "This field is required.")
		}
	}

	setString(&job.Title, in.Title)
	setString(&job.Company, in.Company)
	setString(&job.Location, in.Location)
	setString(&job.Description, in.Description)
	if in.Wage != nil {
		if *in.Wage < 0 {
			return domain.NewValidationError("wage", "Ensure this value is greater than or equal to 0.")
		}
		job.Wage = in.Wage
	}
	if in.Types != nil {
		types, err := parseJobTypes(in.Types)
		if err != nil {
			return err
		}
		job.Types = types
	}
	if in.ExperienceLevel != nil {
		level, err := parseExperienceLevel(*in.ExperienceLevel)
		if err != nil {
			return err
		}
		job.ExperienceLevel = level
	}
	if in.RequiredSkills != nil {
		job.RequiredSkills = in.RequiredSkills
	}
	if in.Responsibilities != nil {
		job.Responsibilities = in.Responsibilities
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	if in.IndustryID != nil {
		id := strings.TrimSpace(*in.IndustryID)
		if id != "" {
			if _, err := s.industries.FindByID(ctx, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.NewValidationError("industry_id", "Invalid industry ID.")
				}
				return err
			}
		}
		job.IndustryID = id
	}
	return nil
}

var jobTypes = []domain.JobType{domain.JobPartTime, domain.JobFullTime, domain.JobContract, domain.JobInternship}

func parseJobTypes(raw []string) ([]domain.JobType, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("type", "At least one job type is required.")
	}
	out := make([]domain.JobType, 0, len(raw))
	for _, r := range raw {
		t := domain.JobType(strings.ToLower(strings.TrimSpace(r)))
		if !slices.Contains(jobTypes, t) {
			return nil, domain.NewValidationError("type", "%q is not a valid choice.", r)
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func parseExperienceLevel(raw string) (domain.ExperienceLevel, error) {
	switch l := domain.ExperienceLevel(strings.ToLower(strings.TrimSpace(raw))); l {
	case "", domain.ExperienceEntry, domain.ExperienceMid, domain.ExperienceSenior:
		return l, nil
	}
	return "", domain.NewValidationError("experience_level", "%q is not a valid choice.", raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Categorized groups jobs along the requested axis. Each bucket is
// paginated under its own "<key>_page" parameter, or under the shared
// "page" parameter when the request carries one.
func (s *JobService) Categorized(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	values := q.Values()
	axis, err := grouping.ParseAxis(values.Get("category"))
	if err != nil {
		return nil, err
	}

	return s.cache.Fetch(ctx, cachekey.CategorizedJobs(q.Base(), values), func(ctx context.Context) (any, error) {
		jobs, _, err := s.jobs.List(ctx, ports.JobFilter{Oldest: values.Get("ordering") == "posted_at"})
		if err != nil {
			return nil, fmt.Errorf("categorized jobs: %w", err)
		}
		jobs = grouping.SearchJobs(jobs, values.Get("search"))
		buckets := grouping.Partition(jobs, grouping.JobKeys(axis)).Only(values.Get("filter"))

		size := s.limits.PageSize(values)
		if values.Has(paginate.PageParam) {
			return paginate.Shared(buckets, size, q.Links()), nil
		}
		return paginate.PerBucket(buckets, size, q.Links()), nil
	})
}

// usedValue is a distinct axis value with the number of jobs carrying it.
type usedValue struct {
	axis grouping.Axis
	grouping.ValueCount
}

// UsedCategories reports, for every axis, the distinct values in use and
// their job counts. Each axis is paginated under "<axis>_page".
func (s *JobService) UsedCategories(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	values := q.Values()
	return s.cache.Fetch(ctx, cachekey.UsedCategories(q.Base(), values), func(ctx context.Context) (any, error) {
		jobs, _, err := s.jobs.List(ctx, ports.JobFilter{})
		if err != nil {
			return nil, fmt.Errorf("used categories: %w", err)
		}

		var used []usedValue
		for _, axis := range grouping.Axes {
			for _, vc := range grouping.Partition(jobs, grouping.JobKeys(axis)).Counts() {
				used = append(used, usedValue{axis: axis, ValueCount: vc})
			}
		}
		byAxis := grouping.Partition(used, grouping.Single(func(v usedValue) string { return string(v.axis) }))
		return paginate.PerBucket(byAxis, s.limits.PageSize(values), q.Links()), nil
	})
}

type applicantsResponse struct {
	Count      int                      `json:"count"`
	Applicants []domain.ApplicationView `json:"applicants"`
}

// Applicants lists the applications to a job. Only the job's poster and
// elevated principals may see them.
func (s *JobService) Applicants(ctx context.Context, p *domain.Principal, jobID string) (json.RawMessage, error) {
	if err := s.authz.Permit(p, authz.ActionList, domain.ResourceJobApplicants); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, authz.ActionList, domain.JobApplicants{Job: job}); err != nil {
		return nil, err
	}

	return s.cache.Fetch(ctx, cachekey.JobApplicants(jobID), func(ctx context.Context) (any, error) {
		apps, total, err := s.applications.List(ctx, ports.ApplicationFilter{JobID: jobID})
		if err != nil {
			return nil, fmt.Errorf("job applicants: %w", err)
		}
		if apps == nil {
			apps = []domain.ApplicationView{}
		}
		return applicantsResponse{Count: total, Applicants: apps}, nil
	})
}
