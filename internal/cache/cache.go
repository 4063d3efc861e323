package cache

import (
	"context"
	"time"
)

// BytesCache кэш ключ/значение без гарантий: любая ошибка для вызывающего равна промаху.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
