package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, user User) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	if strings.TrimSpace(user.Name) == "" {
		return User{}, fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, user); err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
