package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"time"

	"github.com/BearBump/LlantaBox/internal/cache"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/BearBump/LlantaBox/internal/services/failover"
)

type Repository interface {
	ListTires(ctx context.Context, f models.TireFilter) ([]*models.Tire, error)
	GetTire(ctx context.Context, id string) (*models.Tire, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListBrands(ctx context.Context) ([]string, error)
}

type Service struct {
	stores   *failover.Runner[Repository]
	cache    cache.BytesCache
	cacheTTL time.Duration
}

// New собирает сервис каталога. primary может быть nil, если БД не настроена;
// fallback обязателен.
func New(primary, fallback Repository, c cache.BytesCache, cacheTTL time.Duration, opts failover.Options) *Service {
	return &Service{
		stores:   failover.NewRunner(primary, primary != nil, fallback, opts),
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *Service) ListTires(ctx context.Context, f models.TireFilter) ([]*models.Tire, error) {
	key := tiresKey(f)
	var cached []*models.Tire
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	tires, src, err := failover.Read(ctx, s.stores, "list tires", func(ctx context.Context, r Repository) ([]*models.Tire, error) {
		return r.ListTires(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	if tires == nil {
		tires = []*models.Tire{}
	}
	// Кэшируем только ответ БД, чтобы после восстановления не отдавать fallback.
	if src == failover.SourcePrimary {
		s.toCache(ctx, key, tires)
	}
	return tires, nil
}

func (s *Service) GetTire(ctx context.Context, id string) (*models.Tire, error) {
	t, _, err := failover.Read(ctx, s.stores, "get tire", func(ctx context.Context, r Repository) (*models.Tire, error) {
		return r.GetTire(ctx, id)
	})
	return t, err
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "catalog:categories", "list categories", Repository.ListCategories)
}

// ListBrands возвращает уникальные бренды по возрастанию.
func (s *Service) ListBrands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "catalog:brands", "list brands", Repository.ListBrands)
}

func (s *Service) distinct(ctx context.Context, key, op string, get func(Repository, context.Context) ([]string, error)) ([]string, error) {
	var cached []string
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	vals, src, err := failover.Read(ctx, s.stores, op, func(ctx context.Context, r Repository) ([]string, error) {
		return get(r, ctx)
	})
	if err != nil {
		return nil, err
	}
	out := sortedUnique(vals)
	if src == failover.SourcePrimary {
		s.toCache(ctx, key, out)
	}
	return out, nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) fromCache(ctx context.Context, key string, dst any) bool {
	if !s.cacheEnabled() {
		return false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	if !s.cacheEnabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, b, s.cacheTTL)
}

// tiresKey кодирует фильтр как query string: разные фильтры дают разные ключи.
func tiresKey(f models.TireFilter) string {
	return "catalog:tires:" + url.Values{
		"category": {f.Category},
		"brand":    {f.Brand},
		"size":     {f.Size},
	}.Encode()
}

func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
