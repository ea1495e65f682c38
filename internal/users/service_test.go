package users

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

type memoryRepo struct {
	rows   map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]User)}
}

func (r *memoryRepo) List(context.Context) ([]User, error) {
	var out []User
	for _, u := range r.rows {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := r.rows[id]
	if !ok {
		return User{}, fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	return u, nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: user %s", httpx.ErrNotFound, email)
}

func (r *memoryRepo) Create(_ context.Context, user User) (User, error) {
	for _, existing := range r.rows {
		if strings.EqualFold(existing.Email, user.Email) {
			return User{}, fmt.Errorf("%w: user with email %s", httpx.ErrDuplicate, user.Email)
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.rows[user.ID] = user
	return user, nil
}

func (r *memoryRepo) Update(_ context.Context, id int64, user User) error {
	current, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	current.Name = user.Name
	current.Phone = user.Phone
	current.Role = user.Role
	current.IsActive = user.IsActive
	current.UpdatedAt = time.Now()
	r.rows[id] = current
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	delete(r.rows, id)
	return nil
}

func seedUser(t *testing.T, repo *memoryRepo) User {
	t.Helper()
	u, err := repo.Create(context.Background(), User{
		Name:     "Dana Staff",
		Email:    "dana@atlas.local",
		Role:     "staff",
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func TestGetValidatesID(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	seeded := seedUser(t, repo)

	updated, err := svc.Update(context.Background(), seeded.ID, User{
		Name:     "Dana Lead",
		Role:     "manager",
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Dana Lead", updated.Name)
	require.Equal(t, "manager", updated.Role)
	// Email is not among the mutable fields.
	require.Equal(t, "dana@atlas.local", updated.Email)

	_, err = svc.Update(context.Background(), seeded.ID, User{Name: "  "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	seeded := seedUser(t, repo)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), seeded.ID), httpx.ErrNotFound)
}
