package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
	"github.com/atlas-retail/atlas-retail/internal/users"
)

// UserStore is the subset of the user repository auth depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (users.User, error)
	Create(ctx context.Context, user users.User) (users.User, error)
	Get(ctx context.Context, id int64) (users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	store UserStore
}

// NewService constructs a new Service.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a staff account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (users.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return users.User{}, fmt.Errorf("%w: name and email are required", httpx.ErrValidation)
	}
	if len(input.Password) < 8 {
		return users.User{}, fmt.Errorf("%w: password must be at least 8 characters", httpx.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, err
	}

	return s.store.Create(ctx, users.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		Role:         "staff",
		IsActive:     true,
		PasswordHash: string(hash),
	})
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser resolves the account behind an authenticated request.
func (s *Service) CurrentUser(ctx context.Context, id int64) (users.User, error) {
	return s.store.Get(ctx, id)
}
