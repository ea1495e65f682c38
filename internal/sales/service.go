package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

// Service orchestrates sale recording and reporting.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a sale. Line subtotals, the sale subtotal and the
// grand total are always computed server side; client-supplied totals
// are ignored.
func (s *Service) Create(ctx context.Context, input CreateSaleInput) (SaleWithItems, error) {
	if len(input.Items) == 0 {
		return SaleWithItems{}, fmt.Errorf("%w: at least one item is required", httpx.ErrValidation)
	}
	if input.Discount < 0 {
		return SaleWithItems{}, fmt.Errorf("%w: discount cannot be negative", httpx.ErrValidation)
	}

	var subtotal float64
	items := make([]SaleItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ProductID <= 0 || line.Qty <= 0 || line.Price < 0 {
			return SaleWithItems{}, fmt.Errorf("%w: invalid sale line", httpx.ErrValidation)
		}
		name := line.Name
		if name == "" {
			name = fmt.Sprintf("Product %d", line.ProductID)
		}
		lineTotal := line.Qty * line.Price
		items = append(items, SaleItem{
			ProductID: line.ProductID,
			Name:      name,
			Qty:       line.Qty,
			Price:     line.Price,
			Subtotal:  lineTotal,
		})
		subtotal += lineTotal
	}
	if input.Discount > subtotal {
		return SaleWithItems{}, fmt.Errorf("%w: discount exceeds subtotal", httpx.ErrValidation)
	}

	soldAt := input.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now()
	}
	sale := Sale{
		Number:       generateNumber("SO"),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Subtotal:     subtotal,
		Discount:     input.Discount,
		Total:        subtotal - input.Discount,
		PaidVia:      input.PaidVia,
		SoldBy:       input.SoldBy,
		SoldAt:       soldAt,
	}
	created, err := s.repo.Create(ctx, sale, items)
	if err != nil {
		return SaleWithItems{}, err
	}
	stored, err := s.repo.GetItems(ctx, created.ID)
	if err != nil {
		return SaleWithItems{}, err
	}
	return SaleWithItems{Sale: created, Items: stored}, nil
}

func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.List(ctx)
}

// ListByDay returns sales recorded on the given calendar day.
func (s *Service) ListByDay(ctx context.Context, day time.Time) ([]Sale, error) {
	return s.repo.ListByDay(ctx, day)
}

func (s *Service) Get(ctx context.Context, id int64) (SaleWithItems, error) {
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return SaleWithItems{}, err
	}
	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return SaleWithItems{}, err
	}
	return SaleWithItems{Sale: sale, Items: items}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func generateNumber(prefix string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(suffix))
}
