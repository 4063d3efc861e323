package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/LlantaBox/config"
	shopapi "github.com/BearBump/LlantaBox/internal/api/shop_api"
	"github.com/BearBump/LlantaBox/internal/broker/events"
	"github.com/BearBump/LlantaBox/internal/broker/kafka"
	"github.com/BearBump/LlantaBox/internal/cache"
	"github.com/BearBump/LlantaBox/internal/cache/rediscache"
	"github.com/BearBump/LlantaBox/internal/i18n"
	"github.com/BearBump/LlantaBox/internal/observability"
	"github.com/BearBump/LlantaBox/internal/services/catalog"
	"github.com/BearBump/LlantaBox/internal/services/contacts"
	"github.com/BearBump/LlantaBox/internal/services/failover"
	"github.com/BearBump/LlantaBox/internal/services/newsletter"
	"github.com/BearBump/LlantaBox/internal/storage/memshop"
	"github.com/BearBump/LlantaBox/internal/storage/pgshop"
	"github.com/BearBump/LlantaBox/internal/storage/seed"
	"go.uber.org/zap"
)

type shopAPIApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   shopAPIOpts
	api    *shopapi.ShopAPI
	log    *zap.Logger

	emitter  *events.Emitter
	producer *kafka.Producer
	redis    *rediscache.RedisCache
	db       *pgshop.Storage
}

func mustBootstrapShopAPI() *shopAPIApp {
	log, err := observability.NewLogger()
	if err != nil {
		panic(fmt.Sprintf("ошибка инициализации логгера, %v", err))
	}

	cfg, err := config.Load(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := &shopAPIApp{ctx: ctx, cancel: cancel, log: log}

	mem := memshop.New(seed.Tires())

	var (
		catPrimary catalog.Repository
		conPrimary contacts.Repository
		nlPrimary  newsletter.Repository
	)
	if cfg.DatabaseEnabled() {
		var seedOpts []pgshop.Option
		if cfg.SeedCatalog() {
			seedOpts = append(seedOpts, pgshop.WithSeed(seed.Tires()))
		}
		st, err := openPostgres(ctx, cfg.ConnString(), cfg.ConnectWait(), log, seedOpts...)
		if err != nil {
			panic(fmt.Sprintf("ошибка настройки postgres, %v", err))
		}
		app.db = st
		catPrimary, conPrimary, nlPrimary = st, st, st
	} else {
		log.Info("database not configured, serving from in-memory store")
	}

	var bytesCache cache.BytesCache
	if addr := cfg.RedisAddr(); addr != "" {
		app.redis = rediscache.New(addr)
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := app.redis.Ping(pingCtx); err != nil {
			log.Warn("redis ping failed, catalog cache degraded", zap.String("addr", addr), zap.Error(err))
		}
		pingCancel()
		bytesCache = app.redis
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		app.producer = kafka.NewProducer(brokers)
		app.emitter = events.NewEmitter(app.producer, cfg.SubmissionsTopic(), cfg.PublishTimeout(), log)
	}

	opts := failover.Options{Timeout: cfg.StoreTimeout(), Logger: log}
	app.api = shopapi.New(shopapi.Deps{
		Catalog:     catalog.New(catPrimary, mem, bytesCache, cfg.CatalogCacheTTL(), opts),
		Contacts:    contacts.New(conPrimary, mem, contacts.Policy{BestEffortAck: cfg.BestEffortAck()}, app.emitter, opts),
		Newsletter:  newsletter.New(nlPrimary, mem, newsletter.Policy{BestEffortAck: cfg.BestEffortAck()}, app.emitter, opts),
		I18n:        i18n.MustNew(),
		Environment: cfg.Environment(),
		FrontendDir: cfg.LlantaBox.FrontendDir,
		Logger:      log,
	})
	app.opts = shopAPIOpts{httpAddr: cfg.HTTPAddr()}
	return app
}

// openPostgres всегда возвращает подключённый к сервисам Storage. Схему ждём
// не дольше wait; если БД не поднялась, запросы идут в fallback, а схема
// применится при первом удачном обращении.
func openPostgres(ctx context.Context, connString string, wait time.Duration, log *zap.Logger, opts ...pgshop.Option) (*pgshop.Storage, error) {
	st, err := pgshop.Open(connString, opts...)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(wait)
	for {
		attemptCtx, cancel := context.WithDeadline(ctx, deadline)
		err = st.EnsureSchema(attemptCtx)
		cancel()
		if err == nil {
			return st, nil
		}
		if time.Now().Add(time.Second).After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return st, nil
		case <-time.After(time.Second):
		}
	}
	log.Warn("postgres unavailable, serving from in-memory store until it recovers",
		zap.Duration("waited", wait), zap.Error(err))
	return st, nil
}

func (a *shopAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.emitter.Flush()
	if a.producer != nil {
		_ = a.producer.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	_ = a.log.Sync()
}

func (a *shopAPIApp) Run() error {
	return runShopAPI(a.ctx, a.opts, a.api.Routes(), a.log)
}
