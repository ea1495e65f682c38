package procurement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
)

type memoryOrderRepo struct {
	orders     map[int64]PurchaseOrder
	items      map[int64][]OrderItem
	nextID     int64
	nextItemID int64
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[int64]PurchaseOrder), items: make(map[int64][]OrderItem)}
}

func (r *memoryOrderRepo) List(ctx context.Context, filters shared.ListFilters) ([]PurchaseOrder, int, error) {
	var out []PurchaseOrder
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (r *memoryOrderRepo) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return PurchaseOrder{}, fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
	}
	return o, nil
}

func (r *memoryOrderRepo) GetItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	return r.items[orderID], nil
}

func (r *memoryOrderRepo) Create(ctx context.Context, order PurchaseOrder, items []OrderItem) (PurchaseOrder, error) {
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = order
	for _, it := range items {
		r.nextItemID++
		it.ID = r.nextItemID
		it.OrderID = order.ID
		r.items[order.ID] = append(r.items[order.ID], it)
	}
	return order, nil
}

func (r *memoryOrderRepo) Update(ctx context.Context, id int64, input UpdateOrderInput) error {
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
	}
	o.PurchaseDate = input.PurchaseDate
	o.Note = input.Note
	o.PurchasedBy = input.PurchasedBy
	o.UpdatedAt = time.Now()
	r.orders[id] = o
	return nil
}

func (r *memoryOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
	}
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

type stubCatalog struct {
	names map[int64]string
}

func (s stubCatalog) ProductName(ctx context.Context, productID int64) (string, error) {
	name, ok := s.names[productID]
	if !ok {
		return "", fmt.Errorf("%w: product %d", httpx.ErrNotFound, productID)
	}
	return name, nil
}

func TestCreateComputesTotalFromItems(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, stubCatalog{names: map[int64]string{1: "Espresso Beans"}}, nil)

	created, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: 3,
		Items: []OrderItemInput{
			{ProductID: 1, Qty: 4, Price: 25},
			{ProductID: 2, Name: "Filters", Qty: 10, Price: 1.5},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 115.0, created.TotalAmount)
	require.NotEmpty(t, created.Number)

	full, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, full.Items, 2)
	require.Equal(t, "Espresso Beans", full.Items[0].Name)
	require.Equal(t, "Filters", full.Items[1].Name)
	require.Equal(t, 100.0, full.Items[0].Subtotal)
}

func TestCreateItemlessOrderKeepsGivenTotal(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateOrderInput{SupplierID: 3, TotalAmount: 1000})
	require.NoError(t, err)
	require.Equal(t, 1000.0, created.TotalAmount)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemoryOrderRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{TotalAmount: 100})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), CreateOrderInput{SupplierID: 3})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), CreateOrderInput{
		SupplierID: 3,
		Items:      []OrderItemInput{{ProductID: 1, Qty: 0, Price: 5}},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCatalogFallbackName(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, stubCatalog{names: map[int64]string{}}, nil)

	created, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: 3,
		Items:      []OrderItemInput{{ProductID: 77, Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	full, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Product 77", full.Items[0].Name)
}

func TestOrderTotalContract(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateOrderInput{SupplierID: 3, TotalAmount: 450})
	require.NoError(t, err)

	total, err := svc.OrderTotal(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 450.0, total)

	_, err = svc.OrderTotal(context.Background(), 999)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateOrderInput{SupplierID: 3, TotalAmount: 450})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), httpx.ErrNotFound)
}
