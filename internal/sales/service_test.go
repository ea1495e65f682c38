package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

type memoryRepo struct {
	nextID int64
	sales  map[int64]Sale
	items  map[int64][]SaleItem
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, sales: map[int64]Sale{}, items: map[int64][]SaleItem{}}
}

func (m *memoryRepo) List(context.Context) ([]Sale, error) {
	var out []Sale
	for _, s := range m.sales {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryRepo) ListByDay(_ context.Context, day time.Time) ([]Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var out []Sale
	for _, s := range m.sales {
		if !s.SoldAt.Before(start) && s.SoldAt.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return Sale{}, fmt.Errorf("%w: sale %d", httpx.ErrNotFound, id)
	}
	return s, nil
}

func (m *memoryRepo) GetItems(_ context.Context, saleID int64) ([]SaleItem, error) {
	return m.items[saleID], nil
}

func (m *memoryRepo) Create(_ context.Context, sale Sale, items []SaleItem) (Sale, error) {
	sale.ID = m.nextID
	m.nextID++
	sale.CreatedAt = time.Now()
	m.sales[sale.ID] = sale
	for i := range items {
		items[i].ID = int64(i + 1)
		items[i].SaleID = sale.ID
	}
	m.items[sale.ID] = items
	return sale, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.sales[id]; !ok {
		return fmt.Errorf("%w: sale %d", httpx.ErrNotFound, id)
	}
	delete(m.sales, id)
	delete(m.items, id)
	return nil
}

func TestCreateComputesTotals(t *testing.T) {
	svc := NewService(newMemoryRepo())

	sale, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerName: "Walk-in",
		Discount:     50,
		PaidVia:      "cash",
		SoldBy:       7,
		Items: []SaleItemInput{
			{ProductID: 1, Name: "Mug", Qty: 2, Price: 100},
			{ProductID: 2, Name: "Plate", Qty: 1, Price: 300},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 500.0, sale.Subtotal)
	require.Equal(t, 450.0, sale.Total)
	require.Len(t, sale.Items, 2)
	require.Equal(t, 200.0, sale.Items[0].Subtotal)
	require.NotEmpty(t, sale.Number)
	require.Equal(t, int64(7), sale.SoldBy)
}

func TestCreateRejectsEmptyAndBadLines(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateSaleInput{})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), CreateSaleInput{
		Items: []SaleItemInput{{ProductID: 1, Qty: 0, Price: 10}},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRejectsDiscountOverSubtotal(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateSaleInput{
		Discount: 101,
		Items:    []SaleItemInput{{ProductID: 1, Qty: 1, Price: 100}},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListByDayBoundaries(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{
		day.Add(1 * time.Minute),
		day.Add(23*time.Hour + 59*time.Minute),
		day.AddDate(0, 0, 1), // next day, excluded
	} {
		_, err := svc.Create(context.Background(), CreateSaleInput{
			SoldAt: at,
			Items:  []SaleItemInput{{ProductID: 1, Qty: 1, Price: 10}},
		})
		require.NoError(t, err)
	}

	out, err := svc.ListByDay(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestGetAndDelete(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), CreateSaleInput{
		Items: []SaleItemInput{{ProductID: 9, Qty: 3, Price: 5}},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Total, got.Total)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Product 9", got.Items[0].Name)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}
