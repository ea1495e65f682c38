package payments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

// OrderStore is the purchase-order contract the ledger depends on.
// OrderTotal returns httpx.ErrNotFound when the order does not exist.
type OrderStore interface {
	OrderTotal(ctx context.Context, orderID int64) (float64, error)
}

// ReceiptSender enqueues a payment receipt notification. Implemented by
// the jobs package; a nil sender disables receipts.
type ReceiptSender interface {
	EnqueueReceipt(ctx context.Context, payment SupplierPayment) error
}

// Service implements the supplier payment ledger rules.
type Service struct {
	repo     Repository
	orders   OrderStore
	receipts ReceiptSender
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs the ledger service.
func NewService(repo Repository, orders OrderStore, receipts ReceiptSender, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		orders:   orders,
		receipts: receipts,
		logger:   logger,
		validate: validator.New(),
	}
}

// Create opens the ledger for a purchase order. At most one ledger may
// exist per order; TotalAmount is snapshotted from the order here and
// never re-synced.
func (s *Service) Create(ctx context.Context, input CreateInput) (SupplierPayment, error) {
	if err := validateCreate(s.validate, input); err != nil {
		return SupplierPayment{}, err
	}

	// The duplicate check runs before the order lookup: an order deleted
	// after its ledger was opened still reports the existing ledger as a
	// conflict, not the missing order.
	exists, err := s.repo.ExistsForOrder(ctx, input.PurchaseOrderID)
	if err != nil {
		return SupplierPayment{}, err
	}
	if exists {
		return SupplierPayment{}, fmt.Errorf("%w: payment ledger already exists for purchase order %d",
			httpx.ErrConflict, input.PurchaseOrderID)
	}

	total, err := s.orders.OrderTotal(ctx, input.PurchaseOrderID)
	if err != nil {
		return SupplierPayment{}, err
	}

	if input.GivenAmount > total {
		return SupplierPayment{}, fmt.Errorf("%w: given amount %.2f exceeds order total %.2f",
			httpx.ErrValidation, input.GivenAmount, total)
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := SupplierPayment{
		PurchaseOrderID: input.PurchaseOrderID,
		TotalAmount:     total,
		PaidAmount:      input.GivenAmount,
		UnpaidAmount:    total - input.GivenAmount,
		GivenAmount:     input.GivenAmount,
		Status:          DeriveStatus(input.GivenAmount, total),
		Method:          input.Method,
		PaymentDate:     paymentDate,
		PaidBy:          input.PaidBy,
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return SupplierPayment{}, err
	}

	s.sendReceipt(ctx, created)
	return created, nil
}

// AddPayment applies an increment to the ledger. The read-modify-write
// runs under a row lock so concurrent increments serialize instead of
// overwriting each other. A Paid ledger is frozen.
func (s *Service) AddPayment(ctx context.Context, id int64, input AddPaymentInput) (SupplierPayment, error) {
	if err := validateAddPayment(s.validate, input); err != nil {
		return SupplierPayment{}, err
	}

	updated, err := s.repo.Mutate(ctx, id, func(current SupplierPayment) (SupplierPayment, error) {
		if current.Status == StatusPaid {
			return SupplierPayment{}, fmt.Errorf("%w: cannot update a fully paid payment", httpx.ErrConflict)
		}

		newPaid := current.PaidAmount + input.GivenAmount
		if newPaid > current.TotalAmount {
			return SupplierPayment{}, fmt.Errorf("%w: given amount exceeds remaining unpaid amount",
				httpx.ErrValidation)
		}

		current.PaidAmount = newPaid
		current.UnpaidAmount = current.TotalAmount - newPaid
		current.GivenAmount = input.GivenAmount
		current.Status = DeriveStatus(newPaid, current.TotalAmount)
		if input.Method != "" {
			current.Method = input.Method
		}
		if !input.PaymentDate.IsZero() {
			current.PaymentDate = input.PaymentDate
		}
		if input.PaidBy != 0 {
			current.PaidBy = input.PaidBy
		}
		return current, nil
	})
	if err != nil {
		return SupplierPayment{}, err
	}

	s.sendReceipt(ctx, updated)
	return updated, nil
}

// Delete removes the ledger row. The referenced purchase order is untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]SupplierPayment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (SupplierPayment, error) {
	return s.repo.Get(ctx, id)
}

// ListByMethod returns ledgers filtered by payment method. An empty
// result is reported as not found.
func (s *Service) ListByMethod(ctx context.Context, method string) ([]SupplierPayment, error) {
	out, err := s.repo.ListByMethod(ctx, method)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no payments with method %q", httpx.ErrNotFound, method)
	}
	return out, nil
}

// ListByStatus accepts "paid", "unpaid", "partial" or any other label.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]SupplierPayment, error) {
	out, err := s.repo.ListByStatus(ctx, canonicalStatus(status))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no payments with status %q", httpx.ErrNotFound, status)
	}
	return out, nil
}

func (s *Service) ListByOrder(ctx context.Context, orderID int64) ([]SupplierPayment, error) {
	out, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no payments for purchase order %d", httpx.ErrNotFound, orderID)
	}
	return out, nil
}

// ListOutstandingOlderThan supports the reminder job.
func (s *Service) ListOutstandingOlderThan(ctx context.Context, cutoff time.Time) ([]SupplierPayment, error) {
	return s.repo.ListOutstandingOlderThan(ctx, cutoff)
}

func (s *Service) sendReceipt(ctx context.Context, payment SupplierPayment) {
	if s.receipts == nil {
		return
	}
	if err := s.receipts.EnqueueReceipt(ctx, payment); err != nil {
		s.logger.Warn("enqueue payment receipt", slog.Any("error", err), slog.Int64("payment_id", payment.ID))
	}
}

func canonicalStatus(status string) string {
	switch strings.ToLower(status) {
	case "paid":
		return string(StatusPaid)
	case "unpaid":
		return string(StatusUnpaid)
	case "partial":
		return string(StatusPartial)
	default:
		return status
	}
}
