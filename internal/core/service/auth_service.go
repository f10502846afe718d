package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
	"github.com/easework/jobboard-api/internal/pkg/metrics"
)

// AuthService implements signup and login.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	cache     ports.QueryCache
	tasks     ports.TaskQueue
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	cache ports.QueryCache,
	tasks ports.TaskQueue,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		cache:     cache,
		tasks:     tasks,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup creates the account, its profile, and queues the welcome email.
// The admin role cannot be self-assigned.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	role, err := signupRole(in.Role)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := requireFields(
		"email", email,
		"password", in.Password,
		"first_name", in.FirstName,
		"last_name", in.LastName,
	); err != nil {
		return nil, err
	}
	if role == domain.RoleEmployer {
		if strings.TrimSpace(in.CompanyName) == "" {
			return nil, domain.NewValidationError("company_name", "This field is required for employers.")
		}
		if strings.TrimSpace(in.Industry) == "" {
			return nil, domain.NewValidationError("industry", "This field is required for employers.")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created := now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        in.Phone,
		Role:         role,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Industry:     strings.TrimSpace(in.Industry),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create profile")
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.cache.Invalidate(ctx, domain.ResourceUser)
	s.tasks.Enqueue(welcomeTask(user))
	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("account created")
	return user, nil
}

func signupRole(raw string) (domain.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return "", domain.NewValidationError("role", "This field is required.")
	}
	role, ok := domain.ParseRole(raw)
	if !ok || role == domain.RoleAdmin {
		return "", domain.NewValidationError("role", "%q is not a valid choice.", raw)
	}
	return role, nil
}

func (s *AuthService) createProfile(ctx context.Context, user *domain.User) error {
	if user.Role == domain.RoleEmployer {
		return s.profiles.CreateEmployerProfile(ctx, &domain.EmployerProfile{ID: uuid.NewString(), UserID: user.ID})
	}
	return s.profiles.CreateUserProfile(ctx, &domain.UserProfile{ID: uuid.NewString(), UserID: user.ID})
}

func welcomeTask(user *domain.User) ports.Task {
	if user.Role == domain.RoleEmployer {
		return ports.Task{
			Name: ports.TaskEmployerWelcomeEmail,
			Args: map[string]string{"recipient_email": user.Email, "company_name": user.CompanyName},
		}
	}
	return ports.Task{
		Name: ports.TaskWelcomeEmail,
		Args: map[string]string{"recipient_email": user.Email, "first_name": user.FirstName},
	}
}

// Login verifies the credentials and returns a signed access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	issued := now()
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"role":         string(user.Role),
		"is_superuser": user.IsSuperuser,
		"iat":          issued.Unix(),
		"exp":          issued.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
