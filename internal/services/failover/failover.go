// Package failover выполняет операцию сначала на БД, а при её ошибке на
// хранилище в памяти процесса.
package failover

import (
	"context"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

type sourceKey struct{}

// SourceFrom возвращает, с каким хранилищем сейчас работает fn внутри Read/Write.
// Вне runner'а пустая строка.
func SourceFrom(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)
	return src
}

type Options struct {
	// Предел на один вызов primary.
	Timeout time.Duration
	Logger  *zap.Logger
}

type Runner[R any] struct {
	primary    R
	fallback   R
	hasPrimary bool
	timeout    time.Duration
	log        *zap.Logger
}

// NewRunner связывает primary и fallback. hasPrimary=false значит, что БД не
// настроена и все вызовы идут в fallback.
func NewRunner[R any](primary R, hasPrimary bool, fallback R, opts Options) *Runner[R] {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner[R]{
		primary:    primary,
		fallback:   fallback,
		hasPrimary: hasPrimary,
		timeout:    opts.Timeout,
		log:        log,
	}
}

func (r *Runner[R]) HasPrimary() bool { return r.hasPrimary }

func (r *Runner[R]) Fallback() R { return r.fallback }

// Read не отдаёт наружу ошибку primary: вместо него отвечает fallback.
func Read[R, T any](ctx context.Context, r *Runner[R], op string, fn func(context.Context, R) (T, error)) (T, Source, error) {
	return run(ctx, r, op, true, fn)
}

// Write уходит в fallback только при bestEffort. Иначе ошибка primary
// возвращается как apperr.ErrStoreUnavailable.
func Write[R, T any](ctx context.Context, r *Runner[R], op string, bestEffort bool, fn func(context.Context, R) (T, error)) (T, Source, error) {
	return run(ctx, r, op, bestEffort, fn)
}

func run[R, T any](ctx context.Context, r *Runner[R], op string, allowFallback bool, fn func(context.Context, R) (T, error)) (T, Source, error) {
	var zero T
	if r.hasPrimary {
		pctx, cancel := ctx, context.CancelFunc(func() {})
		if r.timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		v, err := fn(context.WithValue(pctx, sourceKey{}, SourcePrimary), r.primary)
		cancel()
		if err == nil || apperr.IsDomain(err) {
			return v, SourcePrimary, err
		}
		if ctx.Err() != nil {
			return zero, SourcePrimary, ctx.Err()
		}
		if !allowFallback {
			r.log.Error("primary store failed", zap.String("op", op), zap.Error(err))
			return zero, SourcePrimary, errors.WithMessage(apperr.ErrStoreUnavailable, op)
		}
		r.log.Warn("primary store failed, using fallback", zap.String("op", op), zap.Error(err))
	}
	v, err := fn(context.WithValue(ctx, sourceKey{}, SourceFallback), r.fallback)
	return v, SourceFallback, err
}
