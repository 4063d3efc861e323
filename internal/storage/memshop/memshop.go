// Package memshop хранилище в памяти процесса на случай недоступной БД.
// Данные живут, пока жив процесс.
package memshop

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/models"
)

type Store struct {
	mu          sync.RWMutex
	tires       []*models.Tire
	contacts    []*models.ContactMessage
	subscribers map[string]*models.Subscriber
}

// New создаёт хранилище с переданным снимком каталога.
func New(tires []*models.Tire) *Store {
	cp := make([]*models.Tire, 0, len(tires))
	for _, t := range tires {
		cp = append(cp, copyTire(t))
	}
	return &Store{
		tires:       cp,
		subscribers: make(map[string]*models.Subscriber),
	}
}

func (s *Store) ListTires(_ context.Context, f models.TireFilter) ([]*models.Tire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Tire, 0, len(s.tires))
	for _, t := range s.tires {
		if f.Match(t) {
			out = append(out, copyTire(t))
		}
	}
	return out, nil
}

func (s *Store) GetTire(_ context.Context, id string) (*models.Tire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tires {
		if t.ID == id {
			return copyTire(t), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context) ([]string, error) {
	return s.distinct(func(t *models.Tire) string { return t.Category }), nil
}

func (s *Store) ListBrands(_ context.Context) ([]string, error) {
	return s.distinct(func(t *models.Tire) string { return t.Brand }), nil
}

func (s *Store) distinct(field func(*models.Tire) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.tires))
	out := []string{}
	for _, t := range s.tires {
		v := field(t)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *Store) CreateContact(_ context.Context, m *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.contacts {
		if c.ID == m.ID {
			return apperr.ErrAlreadyExists
		}
	}
	cp := *m
	s.contacts = append(s.contacts, &cp)
	return nil
}

// ListContacts отдаёт обращения, новые первыми.
func (s *Store) ListContacts(_ context.Context) ([]*models.ContactMessage, error) {
	s.mu.RLock()
	out := make([]*models.ContactMessage, 0, len(s.contacts))
	for _, c := range s.contacts {
		cp := *c
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetContact(_ context.Context, id string) (*models.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) GetSubscriberByEmail(_ context.Context, email string) (*models.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *Store) CreateSubscriber(_ context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[sub.Email]; ok {
		return apperr.ErrAlreadyExists
	}
	cp := *sub
	s.subscribers[sub.Email] = &cp
	return nil
}

func (s *Store) UpdateSubscriberStatus(_ context.Context, email, status string, at time.Time) (*models.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	sub.Status = status
	sub.UpdatedAt = at
	cp := *sub
	return &cp, nil
}

func (s *Store) ListSubscribers(_ context.Context) ([]*models.Subscriber, error) {
	s.mu.RLock()
	out := make([]*models.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		cp := *sub
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copyTire(t *models.Tire) *models.Tire {
	cp := *t
	if t.Position != nil {
		p := *t.Position
		cp.Position = &p
	}
	return &cp
}
