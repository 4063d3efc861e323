package pgshop

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type Storage struct {
	db *pgxpool.Pool

	seed    []*models.Tire
	prepare func(ctx context.Context) error
	mu      sync.Mutex
	ready   atomic.Bool
}

type Option func(*Storage)

// WithSeed задаёт каталог, который досеивается вместе со схемой.
func WithSeed(tires []*models.Tire) Option {
	return func(s *Storage) { s.seed = tires }
}

// Open создаёт пул без обращения к БД. Схема и сид применяются при первом
// успешном EnsureSchema, поэтому Storage можно отдать сервисам, пока БД лежит.
func Open(connString string, opts ...Option) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(err, "parse pg config")
	}

	db, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect pg")
	}

	s := &Storage{db: db}
	s.prepare = s.initAll
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func New(connString string, opts ...Option) (*Storage, error) {
	return NewContext(context.Background(), connString, opts...)
}

// NewContext как Open, но сразу применяет схему и закрывает пул при ошибке.
func NewContext(ctx context.Context, connString string, opts ...Option) (*Storage, error) {
	s, err := Open(connString, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema применяет схему и сид. После первого успеха больше ничего не делает.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		return nil
	}
	if err := s.prepare(ctx); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

func (s *Storage) initAll(ctx context.Context) error {
	if err := s.initSchema(ctx); err != nil {
		return err
	}
	if len(s.seed) == 0 {
		return nil
	}
	return s.seedTires(ctx, s.seed)
}

func (s *Storage) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.Ping(ctx), "ping pg")
}

func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
