package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-retail/atlas-retail/internal/platform/db"
	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

// Repository persists supplier payment ledgers.
type Repository interface {
	List(ctx context.Context) ([]SupplierPayment, error)
	Get(ctx context.Context, id int64) (SupplierPayment, error)
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	ListByMethod(ctx context.Context, method string) ([]SupplierPayment, error)
	ListByStatus(ctx context.Context, status string) ([]SupplierPayment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]SupplierPayment, error)
	ListOutstandingOlderThan(ctx context.Context, cutoff time.Time) ([]SupplierPayment, error)
	Create(ctx context.Context, payment SupplierPayment) (SupplierPayment, error)
	// Mutate loads the row identified by id under a row lock, applies fn to
	// it and persists the result, all inside one transaction. A non-nil
	// error from fn aborts the transaction and is returned unchanged.
	Mutate(ctx context.Context, id int64, fn func(current SupplierPayment) (SupplierPayment, error)) (SupplierPayment, error)
	Delete(ctx context.Context, id int64) error
}

const paymentColumns = `id, purchase_order_id, total_amount, paid_amount, unpaid_amount,
	given_amount, status, method, payment_date, paid_by, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func scanPayment(row pgx.Row) (SupplierPayment, error) {
	var p SupplierPayment
	err := row.Scan(&p.ID, &p.PurchaseOrderID, &p.TotalAmount, &p.PaidAmount, &p.UnpaidAmount,
		&p.GivenAmount, &p.Status, &p.Method, &p.PaymentDate, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPayments(rows pgx.Rows) ([]SupplierPayment, error) {
	defer rows.Close()
	var out []SupplierPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]SupplierPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM supplier_payments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (SupplierPayment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM supplier_payments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return SupplierPayment{}, fmt.Errorf("%w: supplier payment %d", httpx.ErrNotFound, id)
	}
	return p, err
}

func (r *repository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM supplier_payments WHERE purchase_order_id = $1)`, orderID).Scan(&exists)
	return exists, err
}

func (r *repository) ListByMethod(ctx context.Context, method string) ([]SupplierPayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM supplier_payments WHERE LOWER(method) = LOWER($1) ORDER BY id`, method)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]SupplierPayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM supplier_payments WHERE LOWER(status) = LOWER($1) ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *repository) ListByOrder(ctx context.Context, orderID int64) ([]SupplierPayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM supplier_payments WHERE purchase_order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *repository) ListOutstandingOlderThan(ctx context.Context, cutoff time.Time) ([]SupplierPayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM supplier_payments
		 WHERE status IN ($1, $2) AND created_at < $3 ORDER BY id`,
		StatusUnpaid, StatusPartial, cutoff)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *repository) Create(ctx context.Context, payment SupplierPayment) (SupplierPayment, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO supplier_payments
		 (purchase_order_id, total_amount, paid_amount, unpaid_amount, given_amount,
		  status, method, payment_date, paid_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING id`,
		payment.PurchaseOrderID, payment.TotalAmount, payment.PaidAmount, payment.UnpaidAmount,
		payment.GivenAmount, payment.Status, payment.Method, payment.PaymentDate, payment.PaidBy, now,
	).Scan(&payment.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return SupplierPayment{}, fmt.Errorf("%w: payment ledger already exists for purchase order %d",
				httpx.ErrConflict, payment.PurchaseOrderID)
		}
		return SupplierPayment{}, err
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now
	return payment, nil
}

func (r *repository) Mutate(ctx context.Context, id int64, fn func(SupplierPayment) (SupplierPayment, error)) (SupplierPayment, error) {
	var updated SupplierPayment
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		current, err := scanPayment(tx.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM supplier_payments WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: supplier payment %d", httpx.ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now()

		if _, err := tx.Exec(ctx,
			`UPDATE supplier_payments
			 SET paid_amount = $1, unpaid_amount = $2, given_amount = $3, status = $4,
			     method = $5, payment_date = $6, paid_by = $7, updated_at = $8
			 WHERE id = $9`,
			next.PaidAmount, next.UnpaidAmount, next.GivenAmount, next.Status,
			next.Method, next.PaymentDate, next.PaidBy, next.UpdatedAt, id); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return SupplierPayment{}, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM supplier_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier payment %d", httpx.ErrNotFound, id)
	}
	return nil
}
