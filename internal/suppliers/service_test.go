package suppliers

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Supplier
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Supplier)}
}

func (r *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	var out []Supplier
	for _, sup := range r.rows {
		if filters.Search != "" && !strings.Contains(strings.ToLower(sup.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, sup)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(_ context.Context, id int64) (Supplier, error) {
	sup, ok := r.rows[id]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	return sup, nil
}

func (r *memoryRepo) Create(_ context.Context, supplier Supplier) (Supplier, error) {
	for _, existing := range r.rows {
		if strings.EqualFold(existing.Email, supplier.Email) {
			return Supplier{}, fmt.Errorf("%w: supplier with email %s", httpx.ErrDuplicate, supplier.Email)
		}
	}
	r.nextID++
	supplier.ID = r.nextID
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = supplier.CreatedAt
	r.rows[supplier.ID] = supplier
	return supplier, nil
}

func (r *memoryRepo) Update(_ context.Context, id int64, supplier Supplier) error {
	current, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	supplier.ID = id
	supplier.CreatedAt = current.CreatedAt
	supplier.UpdatedAt = time.Now()
	r.rows[id] = supplier
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	delete(r.rows, id)
	return nil
}

func TestCreateSupplier(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), Supplier{
		Name:  "Harbor Foods",
		Email: "orders@harborfoods.example",
		Phone: "555-0101",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Harbor Foods", got.Name)
}

func TestCreateSupplierValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Supplier{Email: "a@b.example"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Supplier{Name: "No Email"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateSupplierDuplicateEmail(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Supplier{Name: "Harbor Foods", Email: "orders@harborfoods.example"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Supplier{Name: "Harbour Foods", Email: "ORDERS@harborfoods.example"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateAndDeleteSupplier(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), Supplier{Name: "Northline Paper", Email: "sales@northline.example"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, Supplier{
		Name:  "Northline Paper Co",
		Email: "sales@northline.example",
	})
	require.NoError(t, err)
	require.Equal(t, "Northline Paper Co", updated.Name)

	_, err = svc.Update(context.Background(), 999, Supplier{Name: "Ghost", Email: "g@g.example"})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListSuppliersSearch(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, sup := range []Supplier{
		{Name: "Harbor Foods", Email: "orders@harborfoods.example"},
		{Name: "Northline Paper", Email: "sales@northline.example"},
	} {
		_, err := svc.Create(context.Background(), sup)
		require.NoError(t, err)
	}

	out, total, err := svc.List(context.Background(), shared.ListFilters{Search: "harbor"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, out, 1)
	require.Equal(t, "Harbor Foods", out[0].Name)
}
