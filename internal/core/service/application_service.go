package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
	"github.com/easework/jobboard-api/internal/pkg/metrics"
)

type ApplicationService struct {
	applications ports.ApplicationRepository
	jobs         ports.JobRepository
	users        ports.UserRepository
	cache        ports.QueryCache
	tasks        ports.TaskQueue
	authz        *authz.Engine
	limits       paginate.Limits
	log          zerolog.Logger
}

func NewApplicationService(
	applications ports.ApplicationRepository,
	jobs ports.JobRepository,
	users ports.UserRepository,
	cache ports.QueryCache,
	tasks ports.TaskQueue,
	engine *authz.Engine,
	limits paginate.Limits,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		users:        users,
		cache:        cache,
		tasks:        tasks,
		authz:        engine,
		limits:       limits,
		log:          log,
	}
}

// List returns the applications visible to p: all of them for elevated
// principals, those to their own jobs for employers and their own
// submissions for applicants.
func (s *ApplicationService) List(ctx context.Context, p *domain.Principal, q ports.ListQuery) (paginate.Page[domain.ApplicationView], error) {
	if err := s.authz.Permit(p, authz.ActionList, domain.ResourceApplication); err != nil {
		return paginate.Page[domain.ApplicationView]{}, err
	}

	page, size, window := pageWindow(q, s.limits)
	scope := s.authz.ApplicationScope(p)
	if scope.Empty() {
		return paginate.List[domain.ApplicationView](nil, 0, page, size, q.Links()), nil
	}

	items, total, err := s.applications.List(ctx, ports.ApplicationFilter{
		EmployerID:  scope.EmployerID,
		ApplicantID: scope.ApplicantID,
		Search:      q.Values().Get("search"),
		Window:      window,
	})
	if err != nil {
		return paginate.Page[domain.ApplicationView]{}, fmt.Errorf("list applications: %w", err)
	}
	return paginate.List(items, total, page, size, q.Links()), nil
}

func (s *ApplicationService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.ApplicationView, error) {
	return s.load(ctx, p, authz.ActionRead, id)
}

// Create submits p's application to in.JobID. A second submission to the
// same job fails with domain.ErrDuplicateApplication; the storage layer's
// unique index decides, so concurrent duplicates cannot both succeed.
func (s *ApplicationService) Create(ctx context.Context, p *domain.Principal, in ports.ApplicationInput) (*domain.Application, error) {
	if err := s.authz.Permit(p, authz.ActionCreate, domain.ResourceApplication); err != nil {
		return nil, err
	}

	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, domain.NewValidationError("job", "This field is required.")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("job", "Invalid job ID.")
		}
		return nil, err
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		ApplicantID: p.ID,
		JobPostedBy: job.PostedBy,
		ResumeLink:  strings.TrimSpace(in.ResumeLink),
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationSubmitted,
		AppliedAt:   now(),
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			s.log.Info().Str("job_id", job.ID).Str("applicant_id", p.ID).Msg("duplicate application rejected")
		}
		return nil, err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	s.cache.Invalidate(ctx, domain.ResourceApplication)
	s.notifyApplicant(ctx, p.ID, job)

	s.log.Info().Str("application_id", app.ID).Str("job_id", job.ID).Msg("application submitted")
	return app, nil
}

// notifyApplicant queues the confirmation email. Failing to look up the
// recipient only skips the email.
func (s *ApplicationService) notifyApplicant(ctx context.Context, applicantID string, job *domain.Job) {
	user, err := s.users.FindByID(ctx, applicantID)
	if err != nil {
		s.log.Warn().Err(err).Str("applicant_id", applicantID).Msg("application email skipped")
		return
	}
	s.tasks.Enqueue(ports.Task{
		Name: ports.TaskJobApplicationEmail,
		Args: map[string]string{
			"recipient_email": user.Email,
			"first_name":      user.FirstName,
			"job_title":       job.Title,
			"company_name":    job.Company,
		},
	})
}

// Update changes the status of an application. The payload may hold no
// member other than "status".
func (s *ApplicationService) Update(ctx context.Context, p *domain.Principal, id string, payload map[string]json.RawMessage, partial bool) (*domain.ApplicationView, error) {
	view, err := s.load(ctx, p, updateAction(partial), id)
	if err != nil {
		return nil, err
	}

	status, err := statusFromPayload(payload)
	if err != nil {
		return nil, err
	}
	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, domain.ResourceApplication)
	s.log.Info().Str("application_id", id).Str("status", string(status)).Str("updated_by", p.ID).Msg("application status updated")
	view.Status = status
	return view, nil
}

func statusFromPayload(payload map[string]json.RawMessage) (domain.ApplicationStatus, error) {
	for field := range payload {
		if field != "status" {
			return "", domain.ErrStatusOnlyUpdate
		}
	}
	raw, ok := payload["status"]
	if !ok {
		return "", domain.NewValidationError("status", "This field is required.")
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", domain.NewValidationError("status", "Not a valid string.")
	}
	status, ok := domain.ParseApplicationStatus(strings.ToLower(strings.TrimSpace(value)))
	if !ok {
		return "", domain.NewValidationError("status", "%q is not a valid choice.", value)
	}
	return status, nil
}

func (s *ApplicationService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if _, err := s.load(ctx, p, authz.ActionDelete, id); err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, domain.ResourceApplication)
	return nil
}

func (s *ApplicationService) load(ctx context.Context, p *domain.Principal, action authz.Action, id string) (*domain.ApplicationView, error) {
	if err := s.authz.Permit(p, action, domain.ResourceApplication); err != nil {
		return nil, err
	}
	view, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, action, &view.Application); err != nil {
		return nil, err
	}
	return view, nil
}
