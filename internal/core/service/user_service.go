package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/grouping"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// UserService serves account listings and both profile kinds.
type UserService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	cache    ports.QueryCache
	authz    *authz.Engine
	limits   paginate.Limits
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	cache ports.QueryCache,
	engine *authz.Engine,
	limits paginate.Limits,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		profiles: profiles,
		cache:    cache,
		authz:    engine,
		limits:   limits,
		log:      log,
	}
}

func (s *UserService) List(ctx context.Context, p *domain.Principal, q ports.ListQuery) (json.RawMessage, error) {
	if err := s.authz.Permit(p, authz.ActionList, domain.ResourceUser); err != nil {
		return nil, err
	}
	return s.cache.Fetch(ctx, cachekey.UserList(q.Base(), q.Values()), func(ctx context.Context) (any, error) {
		page, size, window := pageWindow(q, s.limits)
		users, total, err := s.users.List(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return paginate.List(users, total, page, size, q.Links()), nil
	})
}

func (s *UserService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.User, error) {
	if err := s.authz.Permit(p, authz.ActionRead, domain.ResourceUser); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, authz.ActionRead, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Categorized groups accounts by role, each role paginated under
// "<role>_page".
func (s *UserService) Categorized(ctx context.Context, p *domain.Principal, q ports.ListQuery) (json.RawMessage, error) {
	if err := s.authz.Permit(p, authz.ActionList, domain.ResourceUser); err != nil {
		return nil, err
	}
	values := q.Values()
	return s.cache.Fetch(ctx, cachekey.CategorizedUsers(q.Base(), values), func(ctx context.Context) (any, error) {
		users, _, err := s.users.List(ctx, ports.Window{})
		if err != nil {
			return nil, fmt.Errorf("categorized users: %w", err)
		}
		buckets := grouping.Partition(users, grouping.UserKeys())
		return paginate.PerBucket(buckets, s.limits.PageSize(values), q.Links()), nil
	})
}

// ── applicant profiles ───────────────────────────────────────────────────────

func (s *UserService) UserProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.UserProfile, error) {
	return s.loadUserProfile(ctx, p, authz.ActionRead, userID)
}

func (s *UserService) UpdateUserProfile(ctx context.Context, p *domain.Principal, userID string, in ports.UserProfileInput, partial bool) (*domain.UserProfile, error) {
	profile, err := s.loadUserProfile(ctx, p, updateAction(partial), userID)
	if err != nil {
		return nil, err
	}
	if !partial {
		if err := requireFields("location", deref(in.Location)); err != nil {
			return nil, err
		}
	}

	setString(&profile.Bio, in.Bio)
	setString(&profile.Location, in.Location)
	if in.ExperienceLevel != nil {
		level, err := parseExperienceLevel(*in.ExperienceLevel)
		if err != nil {
			return nil, err
		}
		profile.ExperienceLevel = level
	}
	if in.PortfolioLinks != nil || !partial {
		profile.PortfolioLinks = in.PortfolioLinks
	}
	if in.SocialMediaLinks != nil || !partial {
		profile.SocialMediaLinks = in.SocialMediaLinks
	}

	if err := s.profiles.SaveUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.ResourceUserProfile)
	return profile, nil
}

func (s *UserService) DeleteUserProfile(ctx context.Context, p *domain.Principal, userID string) error {
	if _, err := s.loadUserProfile(ctx, p, authz.ActionDelete, userID); err != nil {
		return err
	}
	if err := s.profiles.DeleteUserProfile(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.ResourceUserProfile)
	return nil
}

func (s *UserService) loadUserProfile(ctx context.Context, p *domain.Principal, action authz.Action, userID string) (*domain.UserProfile, error) {
	if err := s.authz.Permit(p, action, domain.ResourceUserProfile); err != nil {
		return nil, err
	}
	profile, err := s.profiles.UserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, action, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ── employer profiles ────────────────────────────────────────────────────────

func (s *UserService) EmployerProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.EmployerProfile, error) {
	return s.loadEmployerProfile(ctx, p, authz.ActionRead, userID)
}

func (s *UserService) UpdateEmployerProfile(ctx context.Context, p *domain.Principal, userID string, in ports.EmployerProfileInput, partial bool) (*domain.EmployerProfile, error) {
	profile, err := s.loadEmployerProfile(ctx, p, updateAction(partial), userID)
	if err != nil {
		return nil, err
	}
	if !partial {
		profile.CompanyWebsite = deref(in.CompanyWebsite)
		profile.CompanyDescription = deref(in.CompanyDescription)
		profile.CompanyLocation = deref(in.CompanyLocation)
	} else {
		setString(&profile.CompanyWebsite, in.CompanyWebsite)
		setString(&profile.CompanyDescription, in.CompanyDescription)
		setString(&profile.CompanyLocation, in.CompanyLocation)
	}

	if err := s.profiles.SaveEmployerProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.ResourceEmployerProfile)
	return profile, nil
}

func (s *UserService) DeleteEmployerProfile(ctx context.Context, p *domain.Principal, userID string) error {
	if _, err := s.loadEmployerProfile(ctx, p, authz.ActionDelete, userID); err != nil {
		return err
	}
	if err := s.profiles.DeleteEmployerProfile(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.ResourceEmployerProfile)
	return nil
}

func (s *UserService) loadEmployerProfile(ctx context.Context, p *domain.Principal, action authz.Action, userID string) (*domain.EmployerProfile, error) {
	if err := s.authz.Permit(p, action, domain.ResourceEmployerProfile); err != nil {
		return nil, err
	}
	profile, err := s.profiles.EmployerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.PermitObject(p, action, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
