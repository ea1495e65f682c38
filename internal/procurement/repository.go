package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-retail/atlas-retail/internal/platform/db"
	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
)

// Repository persists purchase orders and their lines.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]PurchaseOrder, int, error)
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
	GetItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	Create(ctx context.Context, order PurchaseOrder, items []OrderItem) (PurchaseOrder, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `id, number, supplier_id, purchase_date, total_amount, note, purchased_by, created_at, updated_at`

func scanOrder(row pgx.Row) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := row.Scan(&o.ID, &o.Number, &o.SupplierID, &o.PurchaseDate, &o.TotalAmount,
		&o.Note, &o.PurchasedBy, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]PurchaseOrder, int, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders`
	countQuery := `SELECT COUNT(*) FROM purchase_orders`
	args := []any{}
	if filters.Search != "" {
		query += ` WHERE number ILIKE $1 OR note ILIKE $1`
		countQuery += ` WHERE number ILIKE $1 OR note ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY purchase_date DESC, id DESC`
	if filters.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, filters.Limit, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return PurchaseOrder{}, fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
	}
	return o, err
}

func (r *repository) GetItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, name, qty, price, subtotal
		 FROM purchase_order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Qty, &it.Price, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, order PurchaseOrder, items []OrderItem) (PurchaseOrder, error) {
	now := time.Now()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO purchase_orders (number, supplier_id, purchase_date, total_amount, note, purchased_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
			order.Number, order.SupplierID, order.PurchaseDate, order.TotalAmount,
			order.Note, order.PurchasedBy, now).Scan(&order.ID); err != nil {
			return err
		}
		for _, it := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO purchase_order_items (order_id, product_id, name, qty, price, subtotal)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID, it.ProductID, it.Name, it.Qty, it.Price, it.Subtotal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return order, nil
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateOrderInput) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE purchase_orders SET purchase_date = $1, note = $2, purchased_by = $3, updated_at = $4 WHERE id = $5`,
		input.PurchaseDate, input.Note, input.PurchasedBy, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: purchase order %d", httpx.ErrNotFound, id)
		}
		return nil
	})
}
