package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

type jobBucket struct {
	TotalCount int                 `json:"total_count"`
	Items      []domain.JobSummary `json:"items"`
	Pagination struct {
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
	} `json:"pagination"`
}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// seedJob stores a job posted n minutes after t0.
func (f *fixture) seedJob(id, location string, n int, types ...domain.JobType) *domain.Job {
	job := &domain.Job{
		ID: id, Title: "Job " + id, Company: "Acme", Location: location,
		Types: types, Description: "d", PostedBy: "emp", PostedAt: t0.Add(time.Duration(n) * time.Minute),
	}
	_ = f.jobs.Create(context.Background(), job)
	return job
}

func listQuery(t *testing.T, raw string) ports.ListQuery {
	t.Helper()
	q, err := ports.NewListQuery("http://api.test/api/jobs/categorized-jobs/" + raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return q
}

func decodeBuckets(t *testing.T, body []byte) map[string]jobBucket {
	t.Helper()
	var out map[string]jobBucket
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, body)
	}
	return out
}

func ids(items []domain.JobSummary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestJobService_Categorized_TypeFanOut(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime, domain.JobContract)
	f.seedJob("j2", "Accra", 2, domain.JobFullTime)

	body, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=type"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	buckets := decodeBuckets(t, body)

	if got := ids(buckets["full-time"].Items); fmt.Sprint(got) != "[j2 j1]" {
		t.Errorf("full-time bucket = %v, want newest first [j2 j1]", got)
	}
	if got := ids(buckets["contract"].Items); fmt.Sprint(got) != "[j1]" {
		t.Errorf("contract bucket = %v, want [j1]", got)
	}
	if buckets["full-time"].TotalCount != 2 {
		t.Errorf("full-time total = %d", buckets["full-time"].TotalCount)
	}
}

func TestJobService_Categorized_OtherAndFilter(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "", 1, domain.JobFullTime)
	f.seedJob("j2", "Accra", 2, domain.JobFullTime)

	body, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	if got := ids(decodeBuckets(t, body)["Other"].Items); fmt.Sprint(got) != "[j1]" {
		t.Errorf("Other bucket = %v", got)
	}

	body, err = f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location&filter=accra"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	buckets := decodeBuckets(t, body)
	if len(buckets) != 1 || buckets["Accra"].TotalCount != 1 {
		t.Errorf("filter should keep exactly the Accra bucket, got %v", buckets)
	}
}

func TestJobService_Categorized_SearchAndOrdering(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)
	f.seedJob("j2", "Nairobi", 2, domain.JobInternship)
	f.seedJob("j3", "Lagos", 3, domain.JobPartTime)

	body, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location&search=lagos&ordering=posted_at"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	buckets := decodeBuckets(t, body)
	if _, ok := buckets["Nairobi"]; ok {
		t.Error("search should drop Nairobi")
	}
	if got := ids(buckets["Lagos"].Items); fmt.Sprint(got) != "[j1 j3]" {
		t.Errorf("ordering=posted_at should be oldest first, got %v", got)
	}
}

func TestJobService_Categorized_InvalidCategory(t *testing.T) {
	f := newFixture()

	_, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=unknown"))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "category" {
		t.Fatalf("expected category validation error, got %v", err)
	}
	if f.jobs.listCalls != 0 {
		t.Fatal("store queried for an invalid category")
	}
}

func TestJobService_Categorized_IndependentBucketPages(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		f.seedJob(fmt.Sprintf("l%02d", i), "Lagos", i, domain.JobFullTime)
		f.seedJob(fmt.Sprintf("a%02d", i), "Accra", i, domain.JobFullTime)
	}

	body, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location&page_size=10&Lagos_page=2"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	buckets := decodeBuckets(t, body)
	if n := len(buckets["Lagos"].Items); n != 5 {
		t.Errorf("Lagos page 2 has %d items, want 5", n)
	}
	if n := len(buckets["Accra"].Items); n != 10 || buckets["Accra"].Items[0].ID != "a14" {
		t.Errorf("Accra should stay on page 1, got %v", ids(buckets["Accra"].Items))
	}
	if buckets["Lagos"].Pagination.Next != nil || buckets["Lagos"].Pagination.Previous == nil {
		t.Errorf("Lagos links wrong: %+v", buckets["Lagos"].Pagination)
	}
}

func TestJobService_Categorized_SharedPageMayBeEmpty(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)

	body, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location&page=3"))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	b := decodeBuckets(t, body)["Lagos"]
	if b.TotalCount != 1 || len(b.Items) != 0 {
		t.Fatalf("shared page past the end should be empty, got %+v", b)
	}
}

func TestJobService_HugePageIsEmpty(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)
	f.seedJob("j2", "Abuja", 2, domain.JobContract)
	huge := "page=100000000000000000&page_size=100"

	body, err := f.jobSvc.List(context.Background(), listQuery(t, "?"+huge))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var page struct {
		Count   int                 `json:"count"`
		Next    *string             `json:"next"`
		Results []domain.JobSummary `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 0 || page.Next != nil {
		t.Fatalf("huge page should be empty with count 2, got %s", body)
	}

	body, err = f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location&"+huge))
	if err != nil {
		t.Fatalf("Categorized returned error: %v", err)
	}
	for key, b := range decodeBuckets(t, body) {
		if len(b.Items) != 0 {
			t.Errorf("%s should be empty on a huge page, got %v", key, ids(b.Items))
		}
	}
}

func TestJobService_Categorized_CachedUntilWrite(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)
	q := listQuery(t, "?category=location")

	first, err := f.jobSvc.Categorized(context.Background(), q)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := f.jobSvc.Categorized(context.Background(), q)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("cached payload differs")
	}
	if f.jobs.listCalls != 1 {
		t.Fatalf("expected one store query, got %d", f.jobs.listCalls)
	}

	emp := principal("emp", domain.RoleEmployer)
	if _, err := f.jobSvc.Create(context.Background(), emp, ports.JobInput{
		Title: strPtr("New"), Company: strPtr("Acme"), Location: strPtr("Lagos"),
		Description: strPtr("d"), Types: []string{"contract"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	third, err := f.jobSvc.Categorized(context.Background(), q)
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if f.jobs.listCalls != 2 {
		t.Fatalf("write should force a recompute, store queried %d times", f.jobs.listCalls)
	}
	if decodeBuckets(t, third)["Lagos"].TotalCount != 2 {
		t.Fatal("recomputed payload misses the new job")
	}
}

func TestJobService_Categorized_FailsOpen(t *testing.T) {
	f := newFixture()
	f.cache.down = true
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)

	for i := 0; i < 2; i++ {
		if _, err := f.jobSvc.Categorized(context.Background(), listQuery(t, "?category=location")); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if f.jobs.listCalls != 2 {
		t.Fatalf("with the cache down every call should hit the store, got %d", f.jobs.listCalls)
	}
}

func TestJobService_UsedCategories(t *testing.T) {
	f := newFixture()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime, domain.JobContract)
	f.seedJob("j2", "Lagos", 2, domain.JobFullTime)
	f.seedJob("j3", "Accra", 3, domain.JobInternship)

	body, err := f.jobSvc.UsedCategories(context.Background(), listQuery(t, "?page_size=1&location_page=2"))
	if err != nil {
		t.Fatalf("UsedCategories returned error: %v", err)
	}
	var out map[string]struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if out["type"].TotalCount != 3 || out["type"].Items[0].Name != "internship" {
		t.Errorf("type axis = %+v", out["type"])
	}
	if out["location"].TotalCount != 2 || out["location"].Items[0].Name != "Lagos" || out["location"].Items[0].Count != 2 {
		t.Errorf("location page 2 = %+v", out["location"])
	}
	if out["industry"].Items[0].Name != "Other" || out["industry"].Items[0].Count != 3 {
		t.Errorf("jobs without industry should count under Other: %+v", out["industry"])
	}
}

func TestJobService_ForeignEmployerCannotPatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := principal("E", domain.RoleEmployer)

	job, err := f.jobSvc.Create(ctx, e, ports.JobInput{
		Title: strPtr("Go dev"), Company: strPtr("E corp"), Location: strPtr("Remote"),
		Description: strPtr("d"), Types: []string{"full-time"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.jobSvc.Update(ctx, principal("F", domain.RoleEmployer), job.ID, ports.JobInput{Title: strPtr("mine")}, true)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := f.jobSvc.Update(ctx, e, job.ID, ports.JobInput{Title: strPtr("Senior Go dev")}, true)
	if err != nil {
		t.Fatalf("owner patch: %v", err)
	}
	if updated.Title != "Senior Go dev" || updated.Company != "E corp" {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	if _, err := f.jobSvc.Update(ctx, e, job.ID, ports.JobInput{Title: strPtr("x")}, false); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("full update without required fields: expected validation error, got %v", err)
	}
}

func TestJobService_AuthorizationBeforeLookup(t *testing.T) {
	f := newFixture()

	if _, err := f.jobSvc.Update(context.Background(), nil, "missing", ports.JobInput{}, true); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous patch: expected ErrUnauthenticated, got %v", err)
	}
	if err := f.jobSvc.Delete(context.Background(), principal("u", domain.RoleApplicant), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("authenticated delete of missing job: expected ErrNotFound, got %v", err)
	}
	if f.jobs.findCalls != 1 {
		t.Fatalf("anonymous request should not reach the store, find calls = %d", f.jobs.findCalls)
	}
}

func TestJobService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := ports.JobInput{
		Title: strPtr("Go dev"), Company: strPtr("Acme"), Location: strPtr("Remote"),
		Description: strPtr("d"), Types: []string{"full-time", "Full-Time"},
	}

	if _, err := f.jobSvc.Create(ctx, principal("a", domain.RoleApplicant), in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("applicant create: expected ErrForbidden, got %v", err)
	}
	if _, err := f.jobSvc.Create(ctx, nil, in); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous create: expected ErrUnauthenticated, got %v", err)
	}

	job, err := f.jobSvc.Create(ctx, principal("adm", domain.RoleAdmin), in)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if len(job.Types) != 1 || job.PostedBy != "adm" || !job.IsActive {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.Types[0] != domain.JobFullTime {
		t.Fatalf("types not normalised: %v", job.Types)
	}

	bad := in
	bad.Types = []string{"gig"}
	if _, err := f.jobSvc.Create(ctx, principal("e", domain.RoleEmployer), bad); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad type: expected validation error, got %v", err)
	}
	bad = in
	bad.IndustryID = strPtr("nope")
	var ve *domain.ValidationError
	if _, err := f.jobSvc.Create(ctx, principal("e", domain.RoleEmployer), bad); !errors.As(err, &ve) || ve.Field != "industry_id" {
		t.Fatalf("missing industry: expected industry_id validation error, got %v", err)
	}
}

func TestJobService_GetCachedUntilDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)

	if _, err := f.jobSvc.Get(ctx, "j1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := f.jobSvc.Get(ctx, "j1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if f.jobs.findCalls != 1 {
		t.Fatalf("detail should be cached, find calls = %d", f.jobs.findCalls)
	}

	if err := f.jobSvc.Delete(ctx, principal("emp", domain.RoleEmployer), "j1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := f.jobSvc.Get(ctx, "j1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestJobService_Applicants(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedJob("j1", "Lagos", 1, domain.JobFullTime)
	f.users.users["alice"] = &domain.User{ID: "alice", Email: "alice@example.com", FirstName: "Alice", Role: domain.RoleApplicant}

	if _, err := f.appSvc.Create(ctx, principal("alice", domain.RoleApplicant), ports.ApplicationInput{JobID: "j1"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.jobSvc.Applicants(ctx, principal("other", domain.RoleEmployer), "j1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign employer: expected ErrForbidden, got %v", err)
	}
	if _, err := f.jobSvc.Applicants(ctx, nil, "j1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}

	body, err := f.jobSvc.Applicants(ctx, principal("emp", domain.RoleEmployer), "j1")
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	var resp struct {
		Count      int                  `json:"count"`
		Applicants []domain.Application `json:"applicants"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Applicants[0].ApplicantID != "alice" {
		t.Fatalf("unexpected applicants: %s", body)
	}

	if _, err := f.jobSvc.Applicants(ctx, principal("adm", domain.RoleAdmin), "j1"); err != nil {
		t.Fatalf("admin: %v", err)
	}
}
