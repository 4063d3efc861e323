package pgshop

import (
	"context"
	"strconv"
	"strings"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const tireColumns = `id, brand, size, price, image, description, category, stock, position`

func (s *Storage) ListTires(ctx context.Context, f models.TireFilter) ([]*models.Tire, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	var (
		where []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		where = append(where, col+" = $"+strconv.Itoa(len(args)))
	}
	add("category", f.Category)
	add("brand", f.Brand)
	add("size", f.Size)

	q := `SELECT ` + tireColumns + ` FROM tires`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY category, length(id), id`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select tires")
	}
	defer rows.Close()

	out := make([]*models.Tire, 0, 32)
	for rows.Next() {
		t, err := scanTire(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows tires")
	}
	return out, nil
}

func (s *Storage) GetTire(ctx context.Context, id string) (*models.Tire, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(ctx, `SELECT `+tireColumns+` FROM tires WHERE id = $1`, id)
	t, err := scanTire(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category FROM tires ORDER BY category`)
}

func (s *Storage) ListBrands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT brand FROM tires ORDER BY brand`)
}

func (s *Storage) distinct(ctx context.Context, q string) ([]string, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "select distinct")
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "scan distinct")
		}
		out = append(out, v)
	}
	return out, errors.Wrap(rows.Err(), "rows distinct")
}

func scanTire(row pgx.Row) (*models.Tire, error) {
	var t models.Tire
	if err := row.Scan(
		&t.ID, &t.Brand, &t.Size, &t.Price, &t.Image,
		&t.Description, &t.Category, &t.Stock, &t.Position,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan tire")
	}
	return &t, nil
}
