package ports

import (
	"context"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	Role        string
	CompanyName string // required for employers
	Industry    string // required for employers
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
