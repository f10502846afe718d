package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// stubJobService records its inputs; unset fns panic on purpose.
type stubJobService struct {
	listFn        func(ctx context.Context, q ports.ListQuery) (json.RawMessage, error)
	getFn         func(ctx context.Context, id string) (json.RawMessage, error)
	createFn      func(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error)
	updateFn      func(ctx context.Context, p *domain.Principal, id string, in ports.JobInput, partial bool) (*domain.Job, error)
	deleteFn      func(ctx context.Context, p *domain.Principal, id string) error
	categorizedFn func(ctx context.Context, q ports.ListQuery) (json.RawMessage, error)
	usedFn        func(ctx context.Context, q ports.ListQuery) (json.RawMessage, error)
	applicantsFn  func(ctx context.Context, p *domain.Principal, jobID string) (json.RawMessage, error)
}

func (s *stubJobService) List(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	return s.listFn(ctx, q)
}

func (s *stubJobService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.getFn(ctx, id)
}

func (s *stubJobService) Create(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubJobService) Update(ctx context.Context, p *domain.Principal, id string, in ports.JobInput, partial bool) (*domain.Job, error) {
	return s.updateFn(ctx, p, id, in, partial)
}

func (s *stubJobService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func (s *stubJobService) Categorized(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	return s.categorizedFn(ctx, q)
}

func (s *stubJobService) UsedCategories(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
	return s.usedFn(ctx, q)
}

func (s *stubJobService) Applicants(ctx context.Context, p *domain.Principal, jobID string) (json.RawMessage, error) {
	return s.applicantsFn(ctx, p, jobID)
}

func TestJobHandler_Categorized_PassesAbsoluteURL(t *testing.T) {
	e := newEcho()
	body := json.RawMessage(`{"Lagos":{"total_count":1}}`)
	handler := NewJobHandler(&stubJobService{
		categorizedFn: func(ctx context.Context, q ports.ListQuery) (json.RawMessage, error) {
			if got := q.Base(); got != "http://example.com/api/jobs/categorized-jobs/" {
				t.Fatalf("base = %q", got)
			}
			if q.Values().Get("category") != "location" || q.Values().Get("Lagos_page") != "2" {
				t.Fatalf("unexpected params: %v", q.Values())
			}
			return body, nil
		},
	})

	c, rec := newContext(e, http.MethodGet, "/api/jobs/categorized-jobs/?category=location&Lagos_page=2", "", nil)
	if err := handler.Categorized(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != string(body) {
		t.Fatalf("body rewritten: %s", rec.Body.String())
	}
}

func TestJobHandler_Create(t *testing.T) {
	e := newEcho()
	emp := &domain.Principal{ID: "emp", Role: domain.RoleEmployer}
	handler := NewJobHandler(&stubJobService{
		createFn: func(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error) {
			if p != emp {
				t.Fatalf("principal not forwarded")
			}
			if in.Title == nil || *in.Title != "Go dev" || len(in.Types) != 2 || in.Wage == nil || *in.Wage != 100 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Job{ID: "j1", Title: *in.Title, PostedBy: p.ID}, nil
		},
	})

	c, rec := newContext(e, http.MethodPost, "/api/jobs", `{"title":"Go dev","type":["full-time","contract"],"wage":100}`, emp)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestJobHandler_Create_LeavesChoiceCaseToService(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{
		createFn: func(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error) {
			if len(in.Types) != 1 || in.Types[0] != "Full-Time" {
				t.Fatalf("types = %v", in.Types)
			}
			if in.ExperienceLevel == nil || *in.ExperienceLevel != "SENIOR" {
				t.Fatalf("experience level = %v", in.ExperienceLevel)
			}
			return &domain.Job{ID: "j1", PostedBy: p.ID}, nil
		},
	})

	body := `{"title":"Go dev","type":["Full-Time"],"experience_level":"SENIOR"}`
	c, rec := newContext(e, http.MethodPost, "/api/jobs", body, &domain.Principal{ID: "emp", Role: domain.RoleEmployer})
	if err := handler.Create(c); err != nil {
		t.Fatalf("mixed-case choices rejected before the service: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestJobHandler_Create_UnknownTypeFromService(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{
		createFn: func(ctx context.Context, p *domain.Principal, in ports.JobInput) (*domain.Job, error) {
			return nil, domain.NewValidationError("type", "%q is not a valid choice.", in.Types[0])
		},
	})

	c, _ := newContext(e, http.MethodPost, "/api/jobs", `{"title":"Go dev","type":["gig"]}`, &domain.Principal{ID: "emp", Role: domain.RoleEmployer})
	err := handler.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobHandler_Update_PartialFromMethod(t *testing.T) {
	for method, want := range map[string]bool{http.MethodPatch: true, http.MethodPut: false} {
		t.Run(method, func(t *testing.T) {
			e := newEcho()
			handler := NewJobHandler(&stubJobService{
				updateFn: func(ctx context.Context, p *domain.Principal, id string, in ports.JobInput, partial bool) (*domain.Job, error) {
					if id != "j1" || partial != want {
						t.Fatalf("id=%q partial=%v", id, partial)
					}
					return &domain.Job{ID: id}, nil
				},
			})
			c, rec := newContext(e, method, "/api/jobs/j1", `{"title":"New"}`, &domain.Principal{ID: "emp", Role: domain.RoleEmployer})
			withParam(c, "id", "j1")

			if err := handler.Update(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestJobHandler_Delete(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{
		deleteFn: func(ctx context.Context, p *domain.Principal, id string) error {
			return domain.ErrForbidden
		},
	})
	c, _ := newContext(e, http.MethodDelete, "/api/jobs/j1", "", &domain.Principal{ID: "other", Role: domain.RoleEmployer})
	withParam(c, "id", "j1")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobHandler_Applicants_Anonymous(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{
		applicantsFn: func(ctx context.Context, p *domain.Principal, jobID string) (json.RawMessage, error) {
			if p != nil {
				t.Fatalf("expected anonymous principal")
			}
			return nil, domain.ErrUnauthenticated
		},
	})
	c, _ := newContext(e, http.MethodGet, "/api/jobs/j1/applicants", "", nil)
	withParam(c, "id", "j1")

	if err := handler.Applicants(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
