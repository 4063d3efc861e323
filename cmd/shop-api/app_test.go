package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	shopapi "github.com/BearBump/LlantaBox/internal/api/shop_api"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/BearBump/LlantaBox/internal/services/catalog"
	"github.com/BearBump/LlantaBox/internal/services/contacts"
	"github.com/BearBump/LlantaBox/internal/services/failover"
	"github.com/BearBump/LlantaBox/internal/services/newsletter"
	"github.com/BearBump/LlantaBox/internal/storage/memshop"
	"github.com/BearBump/LlantaBox/internal/storage/seed"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newTestHandler(t *testing.T) http.Handler {
	log := zaptest.NewLogger(t)
	mem := memshop.New(seed.Tires())
	opts := failover.Options{Timeout: time.Second, Logger: log}
	api := shopapi.New(shopapi.Deps{
		Catalog:    catalog.New(nil, mem, nil, 0, opts),
		Contacts:   contacts.New(nil, mem, contacts.Policy{BestEffortAck: true}, nil, opts),
		Newsletter: newsletter.New(nil, mem, newsletter.Policy{BestEffortAck: true}, nil, opts),
		Logger:     log,
	})
	return api.Routes()
}

func TestRunShopAPI_ServesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	opts := shopAPIOpts{
		httpAddr: "127.0.0.1:0",
		onListen: func(httpAddr string) { addrCh <- httpAddr },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- runShopAPI(ctx, opts, newTestHandler(t), zaptest.NewLogger(t))
	}()

	addr := <-addrCh

	resp, err := http.Get("http://" + addr + "/api/health")
	require.NoError(t, err)
	var h struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	_ = resp.Body.Close()
	require.Equal(t, "ok", h.Status)

	resp, err = http.Get("http://" + addr + "/api/swagger.json")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting server to stop")
	}
}

func TestRunShopAPI_BadAddr(t *testing.T) {
	err := runShopAPI(context.Background(), shopAPIOpts{httpAddr: "256.0.0.1:bad"}, http.NotFoundHandler(), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestOpenPostgres_UnreachableStaysWired(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	start := time.Now()
	st, err := openPostgres(context.Background(), "postgres://u:p@127.0.0.1:1/db?sslmode=disable", 500*time.Millisecond, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, st)
	t.Cleanup(st.Close)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, 1, logs.FilterMessage("postgres unavailable, serving from in-memory store until it recovers").Len())

	// БД лежит: запись принимает fallback
	mem := memshop.New(nil)
	svc := contacts.New(st, mem, contacts.Policy{BestEffortAck: true}, nil, failover.Options{Timeout: time.Second})
	rec, err := svc.Submit(context.Background(), models.ContactInput{Name: "Ana Ruiz", Email: "ana@example.com", Message: "Necesito llantas para mi podadora"})
	require.NoError(t, err)

	held, err := mem.GetContact(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", held.Email)
}

func TestOpenPostgres_BadConnString(t *testing.T) {
	_, err := openPostgres(context.Background(), "://bad", time.Second, zap.NewNop())
	require.Error(t, err)
}
