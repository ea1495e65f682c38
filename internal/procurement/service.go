package procurement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
)

// CatalogPort resolves product names from the catalog service. Lookups
// are best effort; a failed resolve falls back to a generic label.
type CatalogPort interface {
	ProductName(ctx context.Context, productID int64) (string, error)
}

// Service orchestrates purchase order flows.
type Service struct {
	repo    Repository
	catalog CatalogPort
	logger  *slog.Logger
}

// NewService constructs a procurement service.
func NewService(repo Repository, catalog CatalogPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

// Create persists an order header and its lines in one transaction.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (PurchaseOrder, error) {
	if input.SupplierID <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: supplier is required", httpx.ErrValidation)
	}
	if len(input.Items) == 0 && input.TotalAmount <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: total amount must be positive", httpx.ErrValidation)
	}
	if input.Number == "" {
		input.Number = generateNumber("PO")
	}
	if input.PurchaseDate.IsZero() {
		input.PurchaseDate = time.Now()
	}

	total := input.TotalAmount
	var items []OrderItem
	if len(input.Items) > 0 {
		total = 0
		for _, line := range input.Items {
			if line.ProductID <= 0 || line.Qty <= 0 || line.Price < 0 {
				return PurchaseOrder{}, fmt.Errorf("%w: invalid order line", httpx.ErrValidation)
			}
			name := line.Name
			if name == "" {
				name = s.resolveProductName(ctx, line.ProductID)
			}
			subtotal := line.Qty * line.Price
			items = append(items, OrderItem{
				ProductID: line.ProductID,
				Name:      name,
				Qty:       line.Qty,
				Price:     line.Price,
				Subtotal:  subtotal,
			})
			total += subtotal
		}
	}

	order := PurchaseOrder{
		Number:       input.Number,
		SupplierID:   input.SupplierID,
		PurchaseDate: input.PurchaseDate,
		TotalAmount:  total,
		Note:         input.Note,
		PurchasedBy:  input.PurchasedBy,
	}
	return s.repo.Create(ctx, order, items)
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]PurchaseOrder, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (OrderWithItems, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return OrderWithItems{}, err
	}
	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{PurchaseOrder: order, Items: items}, nil
}

// Update mutates header fields. TotalAmount stays fixed after creation.
func (s *Service) Update(ctx context.Context, id int64, input UpdateOrderInput) (PurchaseOrder, error) {
	if err := s.repo.Update(ctx, id, input); err != nil {
		return PurchaseOrder{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an order and its lines. Any payment ledger pointing at
// the order is deliberately left alone; no cascade is enforced.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// OrderTotal exposes the collaborator contract consumed by the payment
// ledger: the order's authoritative total, or not-found.
func (s *Service) OrderTotal(ctx context.Context, orderID int64) (float64, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return 0, fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, orderID)
		}
		return 0, err
	}
	return order.TotalAmount, nil
}

func (s *Service) resolveProductName(ctx context.Context, productID int64) string {
	if s.catalog != nil {
		if name, err := s.catalog.ProductName(ctx, productID); err == nil && name != "" {
			return name
		} else if err != nil {
			s.logger.Warn("resolve product name", slog.Any("error", err), slog.Int64("product_id", productID))
		}
	}
	return fmt.Sprintf("Product %d", productID)
}

func generateNumber(prefix string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(suffix))
}
