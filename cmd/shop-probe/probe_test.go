package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BearBump/LlantaBox/config"
	shopapi "github.com/BearBump/LlantaBox/internal/api/shop_api"
	"github.com/BearBump/LlantaBox/internal/integrations/shopclient"
	"github.com/BearBump/LlantaBox/internal/services/catalog"
	"github.com/BearBump/LlantaBox/internal/services/contacts"
	"github.com/BearBump/LlantaBox/internal/services/failover"
	"github.com/BearBump/LlantaBox/internal/services/newsletter"
	"github.com/BearBump/LlantaBox/internal/storage/memshop"
	"github.com/BearBump/LlantaBox/internal/storage/seed"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.Handler) *shopclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := shopclient.New(config.ResolvedClient{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestRunProbe_AllChecksPass(t *testing.T) {
	mem := memshop.New(seed.Tires())
	opts := failover.Options{Timeout: time.Second}
	api := shopapi.New(shopapi.Deps{
		Catalog:    catalog.New(nil, mem, nil, 0, opts),
		Contacts:   contacts.New(nil, mem, contacts.Policy{BestEffortAck: true}, nil, opts),
		Newsletter: newsletter.New(nil, mem, newsletter.Policy{BestEffortAck: true}, nil, opts),
	})

	var out bytes.Buffer
	failed := runProbe(context.Background(), newClient(t, api.Routes()), &out)
	require.Zero(t, failed, out.String())
	require.Contains(t, out.String(), "26 tires")
	require.Contains(t, out.String(), "OK   tire       l1 ")
	require.Contains(t, out.String(), "lawn, motorcycle")
}

func TestRunProbe_ReportsFailures(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>placeholder</html>"))
	})

	var out bytes.Buffer
	failed := runProbe(context.Background(), newClient(t, h), &out)
	require.Equal(t, len(checks), failed)
	require.Contains(t, out.String(), "FAIL health")
}
