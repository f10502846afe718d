package service

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

func window[T any](items []T, w ports.Window) []T {
	if w.Offset > len(items) {
		return []T{}
	}
	items = items[w.Offset:]
	if w.Limit > 0 && w.Limit < len(items) {
		items = items[:w.Limit]
	}
	return items
}

type stubJobRepo struct {
	mu         sync.Mutex
	jobs       map[string]*domain.Job
	industries *stubIndustryRepo
	listCalls  int
	findCalls  int
}

func newStubJobRepo(industries *stubIndustryRepo) *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job), industries: industries}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceJob, id)
	}
	clone := *job
	return &clone, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.NewNotFound(domain.ResourceJob, job.ID)
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

// List mirrors the Mongo ordering: newest first unless Oldest is set.
func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]domain.JobSummary, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	var out []domain.JobSummary
	for _, j := range r.jobs {
		if f.IndustryID != "" && j.IndustryID != f.IndustryID {
			continue
		}
		if f.PostedBy != "" && j.PostedBy != f.PostedBy {
			continue
		}
		s := domain.JobSummary{
			ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location,
			Types: j.TypeNames(), IndustryID: j.IndustryID, Wage: j.Wage,
			PostedBy: j.PostedBy, PostedAt: j.PostedAt,
		}
		if ind, ok := r.industries.byID(j.IndustryID); ok {
			s.IndustryName = ind.Name
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(s.Title+" "+s.Company), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, k int) bool {
		if f.Oldest {
			return out[i].PostedAt.Before(out[k].PostedAt)
		}
		return out[i].PostedAt.After(out[k].PostedAt)
	})
	return window(out, f.Window), len(out), nil
}

type stubIndustryRepo struct {
	mu         sync.Mutex
	industries map[string]*domain.Industry
}

func newStubIndustryRepo() *stubIndustryRepo {
	return &stubIndustryRepo{industries: make(map[string]*domain.Industry)}
}

func (r *stubIndustryRepo) byID(id string) (domain.Industry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ind, ok := r.industries[id]
	if !ok {
		return domain.Industry{}, false
	}
	return *ind, true
}

func (r *stubIndustryRepo) Create(_ context.Context, ind *domain.Industry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.industries {
		if strings.EqualFold(existing.Name, ind.Name) {
			return domain.ErrIndustryExists
		}
	}
	clone := *ind
	r.industries[ind.ID] = &clone
	return nil
}

func (r *stubIndustryRepo) FindByID(_ context.Context, id string) (*domain.Industry, error) {
	ind, ok := r.byID(id)
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceIndustry, id)
	}
	return &ind, nil
}

func (r *stubIndustryRepo) Update(_ context.Context, ind *domain.Industry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *ind
	r.industries[ind.ID] = &clone
	return nil
}

func (r *stubIndustryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.industries, id)
	return nil
}

func (r *stubIndustryRepo) List(_ context.Context, f ports.IndustryFilter) ([]domain.Industry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Industry
	for _, ind := range r.industries {
		if f.Search == "" || strings.Contains(strings.ToLower(ind.Name), strings.ToLower(f.Search)) {
			out = append(out, *ind)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return window(out, f.Window), len(out), nil
}

// stubApplicationRepo enforces the (job, applicant) uniqueness the Mongo
// index provides.
type stubApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.Application
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return domain.ErrDuplicateApplication
		}
	}
	clone := *a
	r.apps[a.ID] = &clone
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.ApplicationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceApplication, id)
	}
	return &domain.ApplicationView{Application: *a}, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return domain.NewNotFound(domain.ResourceApplication, id)
	}
	a.Status = status
	return nil
}

func (r *stubApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	return nil
}

func (r *stubApplicationRepo) List(_ context.Context, f ports.ApplicationFilter) ([]domain.ApplicationView, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ApplicationView
	for _, a := range r.apps {
		if f.EmployerID != "" && a.JobPostedBy != f.EmployerID {
			continue
		}
		if f.ApplicantID != "" && a.ApplicantID != f.ApplicantID {
			continue
		}
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		out = append(out, domain.ApplicationView{Application: *a})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return window(out, f.Window), len(out), nil
}

func (r *stubApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.NewNotFound(domain.ResourceUser, email)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context, w ports.Window) ([]domain.UserSummary, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserSummary
	for _, u := range r.users {
		out = append(out, domain.UserSummary{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Email < out[k].Email })
	return window(out, w), len(out), nil
}

type stubProfileRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.UserProfile
	employers map[string]*domain.EmployerProfile
	createErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		users:     make(map[string]*domain.UserProfile),
		employers: make(map[string]*domain.EmployerProfile),
	}
}

func (r *stubProfileRepo) CreateUserProfile(_ context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.users[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) UserProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[userID]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceUserProfile, userID)
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) SaveUserProfile(_ context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.users[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) DeleteUserProfile(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

func (r *stubProfileRepo) CreateEmployerProfile(_ context.Context, p *domain.EmployerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.employers[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) EmployerProfile(_ context.Context, userID string) (*domain.EmployerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.employers[userID]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceEmployerProfile, userID)
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) SaveEmployerProfile(_ context.Context, p *domain.EmployerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.employers[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) DeleteEmployerProfile(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.employers, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Cache and queue stubs
// ---------------------------------------------------------------------------

// stubCache stores marshalled values by key and drops them by prefix, like
// the real façade minus TTLs.
type stubCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []domain.ResourceType
	down        bool // every lookup misses and nothing is stored
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Fetch(ctx context.Context, key cachekey.Key, compute ports.ComputeFunc) ([]byte, error) {
	c.mu.Lock()
	if b, ok := c.entries[key.String()]; ok && !c.down {
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if !c.down {
		c.entries[key.String()] = b
	}
	c.mu.Unlock()
	return b, nil
}

func (c *stubCache) Invalidate(_ context.Context, rt domain.ResourceType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, rt)
	for _, prefix := range cachekey.Invalidates(rt) {
		for k := range c.entries {
			if strings.HasPrefix(k, prefix) {
				delete(c.entries, k)
			}
		}
	}
}

func (c *stubCache) wasInvalidated(rt domain.ResourceType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.invalidated, rt)
}

type stubQueue struct {
	mu    sync.Mutex
	tasks []ports.Task
}

func (q *stubQueue) Enqueue(t ports.Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

func (q *stubQueue) names() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = t.Name
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	jobs         *stubJobRepo
	industries   *stubIndustryRepo
	applications *stubApplicationRepo
	users        *stubUserRepo
	profiles     *stubProfileRepo
	cache        *stubCache
	queue        *stubQueue
	engine       *authz.Engine

	jobSvc  *JobService
	indSvc  *IndustryService
	appSvc  *ApplicationService
	userSvc *UserService
	authSvc *AuthService
}

func newFixture() *fixture {
	f := &fixture{
		industries:   newStubIndustryRepo(),
		applications: newStubApplicationRepo(),
		users:        newStubUserRepo(),
		profiles:     newStubProfileRepo(),
		cache:        newStubCache(),
		queue:        &stubQueue{},
		engine:       authz.NewEngine(authz.Options{EmployerStatusUpdates: true}),
	}
	f.jobs = newStubJobRepo(f.industries)
	log := zerolog.Nop()
	limits := paginate.Limits{}
	f.jobSvc = NewJobService(f.jobs, f.industries, f.applications, f.cache, f.engine, limits, log)
	f.indSvc = NewIndustryService(f.industries, f.jobs, f.cache, f.engine, limits, log)
	f.appSvc = NewApplicationService(f.applications, f.jobs, f.users, f.cache, f.queue, f.engine, limits, log)
	f.userSvc = NewUserService(f.users, f.profiles, f.cache, f.engine, limits, log)
	f.authSvc = NewAuthService(f.users, f.profiles, f.cache, f.queue, "secret", 0, log)
	return f
}

func principal(id string, role domain.Role) *domain.Principal {
	return &domain.Principal{ID: id, Role: role}
}

func superuser(id string) *domain.Principal {
	return &domain.Principal{ID: id, Role: domain.RoleAdmin, IsSuperuser: true}
}

func strPtr(s string) *string { return &s }
