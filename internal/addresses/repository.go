package addresses

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
	ListByUser(ctx context.Context, userID int64) ([]Address, error)
	Get(ctx context.Context, id int64) (Address, error)
	Create(ctx context.Context, address Address) (Address, error)
	Update(ctx context.Context, id int64, address Address) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const addressColumns = `id, user_id, line1, line2, city, region, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.Region,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Address, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, fmt.Errorf("%w: address %d", httpx.ErrNotFound, id)
	}
	return a, err
}

// Create inserts the address; a new default clears the previous default
// for the same user inside one transaction.
func (r *repository) Create(ctx context.Context, address Address) (Address, error) {
	now := time.Now()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if address.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, address.UserID); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx,
			`INSERT INTO addresses (user_id, line1, line2, city, region, postal_code, country, is_default, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`,
			address.UserID, address.Line1, address.Line2, address.City, address.Region,
			address.PostalCode, address.Country, address.IsDefault, now).Scan(&address.ID)
	})
	if err != nil {
		return Address{}, err
	}
	address.CreatedAt = now
	address.UpdatedAt = now
	return address, nil
}

func (r *repository) Update(ctx context.Context, id int64, address Address) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if address.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND id <> $2`,
				address.UserID, id); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx,
			`UPDATE addresses SET line1 = $1, line2 = $2, city = $3, region = $4, postal_code = $5,
			 country = $6, is_default = $7, updated_at = $8 WHERE id = $9 AND user_id = $10`,
			address.Line1, address.Line2, address.City, address.Region, address.PostalCode,
			address.Country, address.IsDefault, time.Now(), id, address.UserID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: address %d", httpx.ErrNotFound, id)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: address %d", httpx.ErrNotFound, id)
	}
	return nil
}
