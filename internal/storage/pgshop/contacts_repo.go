package pgshop

import (
	"context"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const contactColumns = `id, name, email, phone, message, status, created_at, updated_at`

func (s *Storage) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
INSERT INTO contact_messages (`+contactColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, m.ID, m.Name, m.Email, m.Phone, m.Message, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert contact message")
	}
	return nil
}

func (s *Storage) ListContacts(ctx context.Context) ([]*models.ContactMessage, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select contact messages")
	}
	defer rows.Close()

	out := []*models.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "rows contact messages")
}

func (s *Storage) GetContact(ctx context.Context, id string) (*models.ContactMessage, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	m, err := scanContact(s.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return m, err
}

func scanContact(row pgx.Row) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan contact message")
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return &m, nil
}
