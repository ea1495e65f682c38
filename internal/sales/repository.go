package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-retail/atlas-retail/internal/platform/db"
	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]Sale, error)
	ListByDay(ctx context.Context, day time.Time) ([]Sale, error)
	Get(ctx context.Context, id int64) (Sale, error)
	GetItems(ctx context.Context, saleID int64) ([]SaleItem, error)
	Create(ctx context.Context, sale Sale, items []SaleItem) (Sale, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const saleColumns = `id, number, customer_name, subtotal, discount, total, paid_via, sold_by, sold_at, created_at`

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.Number, &s.CustomerName, &s.Subtotal, &s.Discount,
		&s.Total, &s.PaidVia, &s.SoldBy, &s.SoldAt, &s.CreatedAt)
	return s, err
}

func collectSales(rows pgx.Rows) ([]Sale, error) {
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sold_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectSales(rows)
}

func (r *repository) ListByDay(ctx context.Context, day time.Time) ([]Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := r.pool.Query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE sold_at >= $1 AND sold_at < $2 ORDER BY sold_at`,
		start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return collectSales(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	s, err := scanSale(r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, fmt.Errorf("%w: sale %d", httpx.ErrNotFound, id)
	}
	return s, err
}

func (r *repository) GetItems(ctx context.Context, saleID int64) ([]SaleItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sale_id, product_id, name, qty, price, subtotal FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SaleItem
	for rows.Next() {
		var it SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.Qty, &it.Price, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, sale Sale, items []SaleItem) (Sale, error) {
	now := time.Now()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO sales (number, customer_name, subtotal, discount, total, paid_via, sold_by, sold_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			sale.Number, sale.CustomerName, sale.Subtotal, sale.Discount, sale.Total,
			sale.PaidVia, sale.SoldBy, sale.SoldAt, now).Scan(&sale.ID); err != nil {
			return err
		}
		for _, it := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO sale_items (sale_id, product_id, name, qty, price, subtotal)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				sale.ID, it.ProductID, it.Name, it.Qty, it.Price, it.Subtotal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}
	sale.CreatedAt = now
	return sale, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: sale %d", httpx.ErrNotFound, id)
		}
		return nil
	})
}
