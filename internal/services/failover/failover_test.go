package failover

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type store struct {
	name string
	err  error
	slow time.Duration
}

func (s *store) get(ctx context.Context) (string, error) {
	if s.slow > 0 {
		select {
		case <-time.After(s.slow):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.name, nil
}

func call(ctx context.Context, s *store) (string, error) { return s.get(ctx) }

func TestRead_PrimaryOK(t *testing.T) {
	r := NewRunner(&store{name: "db"}, true, &store{name: "mem"}, Options{})
	v, src, err := Read(context.Background(), r, "get", call)
	require.NoError(t, err)
	require.Equal(t, "db", v)
	require.Equal(t, SourcePrimary, src)
}

func TestRead_PrimaryFails_UsesFallbackAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRunner(&store{err: errors.New("connection refused")}, true, &store{name: "mem"}, Options{Logger: zap.New(core)})

	v, src, err := Read(context.Background(), r, "list tires", call)
	require.NoError(t, err)
	require.Equal(t, "mem", v)
	require.Equal(t, SourceFallback, src)
	require.Equal(t, 1, logs.FilterMessage("primary store failed, using fallback").Len())
}

func TestRead_DomainErrorDoesNotFallBack(t *testing.T) {
	r := NewRunner(&store{err: apperr.ErrNotFound}, true, &store{name: "mem"}, Options{})
	_, src, err := Read(context.Background(), r, "get", call)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, SourcePrimary, src)
}

func TestRead_NoPrimary(t *testing.T) {
	var none *store
	r := NewRunner(none, false, &store{name: "mem"}, Options{})
	v, src, err := Read(context.Background(), r, "get", call)
	require.NoError(t, err)
	require.Equal(t, "mem", v)
	require.Equal(t, SourceFallback, src)
	require.False(t, r.HasPrimary())
}

func TestRead_SlowPrimaryTimesOut(t *testing.T) {
	r := NewRunner(&store{name: "db", slow: time.Second}, true, &store{name: "mem"}, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	v, src, err := Read(context.Background(), r, "get", call)
	require.NoError(t, err)
	require.Equal(t, "mem", v)
	require.Equal(t, SourceFallback, src)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWrite_StrictPolicyReportsUnavailable(t *testing.T) {
	r := NewRunner(&store{err: errors.New("db down")}, true, &store{name: "mem"}, Options{})
	_, _, err := Write(context.Background(), r, "create contact", false, call)
	require.ErrorIs(t, err, apperr.ErrStoreUnavailable)
}

func TestWrite_BestEffortFallsBack(t *testing.T) {
	r := NewRunner(&store{err: errors.New("db down")}, true, &store{name: "mem"}, Options{})
	v, src, err := Write(context.Background(), r, "create contact", true, call)
	require.NoError(t, err)
	require.Equal(t, "mem", v)
	require.Equal(t, SourceFallback, src)
}

func TestRead_CallerCancelled(t *testing.T) {
	r := NewRunner(&store{name: "db", slow: time.Second}, true, &store{name: "mem"}, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := Read(ctx, r, "get", call)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSourceFrom(t *testing.T) {
	require.Empty(t, SourceFrom(context.Background()))

	var seen []Source
	record := func(ctx context.Context, s *store) (string, error) {
		seen = append(seen, SourceFrom(ctx))
		return s.get(ctx)
	}
	r := NewRunner(&store{err: errors.New("dial tcp: connection refused")}, true, &store{name: "mem"}, Options{})
	_, _, err := Read(context.Background(), r, "get", record)
	require.NoError(t, err)
	require.Equal(t, []Source{SourcePrimary, SourceFallback}, seen)
}
