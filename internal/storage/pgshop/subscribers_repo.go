package pgshop

import (
	"context"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const subscriberColumns = `id, email, status, source, created_at, updated_at`

func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	sub, err := scanSubscriber(s.db.QueryRow(ctx, `SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return sub, err
}

// CreateSubscriber возвращает apperr.ErrAlreadyExists, если email занят,
// в том числе параллельным запросом.
func (s *Storage) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
INSERT INTO newsletter_subscribers (`+subscriberColumns+`)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (email) DO NOTHING
`, sub.ID, sub.Email, sub.Status, sub.Source, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert subscriber")
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrAlreadyExists
	}
	return nil
}

func (s *Storage) UpdateSubscriberStatus(ctx context.Context, email, status string, at time.Time) (*models.Subscriber, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	sub, err := scanSubscriber(s.db.QueryRow(ctx, `
UPDATE newsletter_subscribers
SET status = $2, updated_at = $3
WHERE email = $1
RETURNING `+subscriberColumns, email, status, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return sub, err
}

func (s *Storage) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `SELECT `+subscriberColumns+` FROM newsletter_subscribers ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "select subscribers")
	}
	defer rows.Close()

	out := []*models.Subscriber{}
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, errors.Wrap(rows.Err(), "rows subscribers")
}

func scanSubscriber(row pgx.Row) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := row.Scan(&sub.ID, &sub.Email, &sub.Status, &sub.Source, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan subscriber")
	}
	sub.CreatedAt = sub.CreatedAt.UTC()
	sub.UpdatedAt = sub.UpdatedAt.UTC()
	return &sub, nil
}
