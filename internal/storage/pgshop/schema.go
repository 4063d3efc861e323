package pgshop

import (
	"context"

	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS tires (
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  size TEXT NOT NULL,
  price NUMERIC(10,2) NOT NULL CHECK (price > 0),
  image TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('lawn', 'motorcycle')),
  stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
  position TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_tires_category ON tires(category)`,
		`CREATE INDEX IF NOT EXISTS idx_tires_brand ON tires(brand)`,
		`
CREATE TABLE IF NOT EXISTS contact_messages (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NULL,
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'read', 'replied')),
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS newsletter_subscribers (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'unsubscribed')),
  source TEXT NOT NULL DEFAULT 'website',
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletter_subscribers_status ON newsletter_subscribers(status)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}

// SeedTires вставляет строки каталога, существующие id не трогает.
func (s *Storage) SeedTires(ctx context.Context, tires []*models.Tire) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	return s.seedTires(ctx, tires)
}

func (s *Storage) seedTires(ctx context.Context, tires []*models.Tire) error {
	batch := &pgx.Batch{}
	for _, t := range tires {
		batch.Queue(`
INSERT INTO tires (id, brand, size, price, image, description, category, stock, position)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO NOTHING
`, t.ID, t.Brand, t.Size, t.Price, t.Image, t.Description, t.Category, t.Stock, t.Position)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, "seed tires")
	}
	return nil
}
