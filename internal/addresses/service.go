package addresses

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

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns the address only when it belongs to the requesting user.
func (s *Service) Get(ctx context.Context, userID, id int64) (Address, error) {
	address, err := s.repo.Get(ctx, id)
	if err != nil {
		return Address{}, err
	}
	if address.UserID != userID {
		return Address{}, fmt.Errorf("%w: address %d", httpx.ErrNotFound, id)
	}
	return address, nil
}

func (s *Service) Create(ctx context.Context, address Address) (Address, error) {
	if err := validate(address); err != nil {
		return Address{}, err
	}
	return s.repo.Create(ctx, address)
}

func (s *Service) Update(ctx context.Context, userID, id int64, address Address) (Address, error) {
	if err := validate(address); err != nil {
		return Address{}, err
	}
	address.UserID = userID
	if err := s.repo.Update(ctx, id, address); err != nil {
		return Address{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validate(a Address) error {
	if strings.TrimSpace(a.Line1) == "" {
		return fmt.Errorf("%w: address line is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("%w: city is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(a.Country) == "" {
		return fmt.Errorf("%w: country is required", httpx.ErrValidation)
	}
	return nil
}
