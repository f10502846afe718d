package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

func TestIndustryService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := ports.IndustryInput{Name: strPtr(" Fintech "), Description: strPtr("money")}

	if _, err := f.indSvc.Create(ctx, principal("emp", domain.RoleEmployer), in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employer create: expected ErrForbidden, got %v", err)
	}
	if _, err := f.indSvc.Create(ctx, nil, in); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous create: expected ErrUnauthenticated, got %v", err)
	}

	ind, err := f.indSvc.Create(ctx, principal("adm", domain.RoleAdmin), in)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if ind.Name != "Fintech" || ind.CreatedBy != "adm" {
		t.Fatalf("unexpected industry: %+v", ind)
	}

	if _, err := f.indSvc.Create(ctx, superuser("root"), ports.IndustryInput{Name: strPtr("fintech")}); !errors.Is(err, domain.ErrIndustryExists) {
		t.Fatalf("duplicate name: expected ErrIndustryExists, got %v", err)
	}
	var ve *domain.ValidationError
	if _, err := f.indSvc.Create(ctx, superuser("root"), ports.IndustryInput{}); !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("missing name: expected validation error, got %v", err)
	}
}

func TestIndustryService_UpdateOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ind, err := f.indSvc.Create(ctx, principal("adm", domain.RoleAdmin), ports.IndustryInput{Name: strPtr("Health")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.indSvc.Update(ctx, principal("adm2", domain.RoleAdmin), ind.ID, ports.IndustryInput{Name: strPtr("x")}, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other admin: expected ErrForbidden, got %v", err)
	}
	updated, err := f.indSvc.Update(ctx, principal("adm", domain.RoleAdmin), ind.ID, ports.IndustryInput{Description: strPtr("care")}, true)
	if err != nil {
		t.Fatalf("owner patch: %v", err)
	}
	if updated.Name != "Health" || updated.Description != "care" {
		t.Fatalf("unexpected industry: %+v", updated)
	}
	if _, err := f.indSvc.Update(ctx, superuser("root"), ind.ID, ports.IndustryInput{}, false); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("full update without name: expected validation error, got %v", err)
	}
	if err := f.indSvc.Delete(ctx, superuser("root"), ind.ID); err != nil {
		t.Fatalf("superuser delete: %v", err)
	}
}

func TestIndustryService_RenameInvalidatesJobGroups(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	adm := principal("adm", domain.RoleAdmin)
	ind, err := f.indSvc.Create(ctx, adm, ports.IndustryInput{Name: strPtr("Health")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	job := f.seedJob("j1", "Lagos", 1, domain.JobFullTime)
	job.IndustryID = ind.ID
	_ = f.jobs.Update(ctx, job)

	q := listQuery(t, "?category=industry")
	body, err := f.jobSvc.Categorized(ctx, q)
	if err != nil {
		t.Fatalf("categorized: %v", err)
	}
	if _, ok := decodeBuckets(t, body)["Health"]; !ok {
		t.Fatalf("expected a Health bucket: %s", body)
	}

	if _, err := f.indSvc.Update(ctx, adm, ind.ID, ports.IndustryInput{Name: strPtr("Healthcare")}, true); err != nil {
		t.Fatalf("rename: %v", err)
	}
	body, err = f.jobSvc.Categorized(ctx, q)
	if err != nil {
		t.Fatalf("categorized: %v", err)
	}
	if _, ok := decodeBuckets(t, body)["Healthcare"]; !ok {
		t.Fatalf("stale grouping served after rename: %s", body)
	}
}

func TestIndustryService_Jobs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ind, err := f.indSvc.Create(ctx, principal("adm", domain.RoleAdmin), ports.IndustryInput{Name: strPtr("Health")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, id := range []string{"j1", "j2"} {
		job := f.seedJob(id, "Lagos", 1, domain.JobFullTime)
		job.IndustryID = ind.ID
		_ = f.jobs.Update(ctx, job)
	}
	f.seedJob("j3", "Lagos", 1, domain.JobFullTime)

	body, err := f.indSvc.Jobs(ctx, ind.ID)
	if err != nil {
		t.Fatalf("Jobs returned error: %v", err)
	}
	var resp struct {
		Count int                 `json:"count"`
		Jobs  []domain.JobSummary `json:"jobs"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 2 || len(resp.Jobs) != 2 || resp.Jobs[0].IndustryName != "Health" {
		t.Fatalf("unexpected response: %s", body)
	}

	if _, err := f.indSvc.Jobs(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing industry: expected ErrNotFound, got %v", err)
	}
}

func TestIndustryService_ListAndGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ind, err := f.indSvc.Create(ctx, principal("adm", domain.RoleAdmin), ports.IndustryInput{Name: strPtr("Health")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	q, err := ports.NewListQuery("http://api.test/api/industries/?page_size=1")
	if err != nil {
		t.Fatal(err)
	}
	body, err := f.indSvc.List(ctx, q)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var page struct {
		Count   int               `json:"count"`
		Results []domain.Industry `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if page.Count != 1 || page.Results[0].ID != ind.ID {
		t.Fatalf("unexpected page: %s", body)
	}

	if _, err := f.indSvc.Get(ctx, ind.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := f.indSvc.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}
}
