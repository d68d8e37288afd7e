package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	authservice "github.com/AlibekovAA/portfolio-api/internal/auth/service"
	biorepo "github.com/AlibekovAA/portfolio-api/internal/bio/repository"
	bioservice "github.com/AlibekovAA/portfolio-api/internal/bio/service"
	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	"github.com/AlibekovAA/portfolio-api/internal/common/config"
	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/portfolio-api/internal/common/crypto"
	"github.com/AlibekovAA/portfolio-api/internal/common/db"
	"github.com/AlibekovAA/portfolio-api/internal/common/jwtverify"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/server"
	"github.com/AlibekovAA/portfolio-api/internal/common/tokencache"
	contactrepo "github.com/AlibekovAA/portfolio-api/internal/contact/repository"
	contactservice "github.com/AlibekovAA/portfolio-api/internal/contact/service"
	projectrepo "github.com/AlibekovAA/portfolio-api/internal/project/repository"
	projectservice "github.com/AlibekovAA/portfolio-api/internal/project/service"
	userrepo "github.com/AlibekovAA/portfolio-api/internal/user/repository"
)

type App struct {
	Config   config.Config
	Log      *logger.Logger
	Pool     *pgxpool.Pool
	Router   *Router
	closers  []func() error
	cancelFn context.CancelFunc
}

// New connects to PostgreSQL, optionally migrates, and wires every
// repository, service and handler. The returned App owns the pool and the
// token cache; release them with Close.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	appCtx, cancel := context.WithCancel(ctx)
	app := &App{Config: cfg, Log: log, cancelFn: cancel}

	if cfg.MigrateOnStart {
		if err := db.Migrate(appCtx, log, cfg.DatabaseURL, db.MigrateUp); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := db.NewPool(appCtx, log, cfg.DatabaseURL)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	app.Pool = pool
	app.closers = append(app.closers, func() error {
		pool.Close()
		return nil
	})
	db.StartPoolMetrics(appCtx, pool, constants.DBPoolMetricsInterval)

	clk := clock.NewRealClock()

	issuer, err := authservice.NewTokenIssuer(cfg.JWTSecret, commoncrypto.NewUUIDGenerator(), cfg.AccessTokenTTL, clk)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	cache := newTokenCache(appCtx, cfg, clk, log, app)
	verifier := jwtverify.NewVerifier(cfg.JWTSecret, clk, cache, log)

	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:   userrepo.NewPgRepository(pool),
		Hasher: commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		Issuer: issuer,
		Clock:  clk,
		Log:    log,
	})

	app.Router = NewRouter(RouterDeps{
		Log:                log,
		DB:                 pool,
		Auth:               authService,
		Bio:                bioservice.NewBioService(biorepo.NewPgRepository(pool), clk, log),
		Projects:           projectservice.NewProjectService(projectrepo.NewPgRepository(pool), clk, log),
		Contacts:           contactservice.NewContactService(contactrepo.NewPgRepository(pool), clk, log),
		RequireAuth:        verifier.Middleware,
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return app, nil
}

// newTokenCache picks Redis when configured and reachable, otherwise the
// in-process cache. A disabled cache is a nil interface.
func newTokenCache(ctx context.Context, cfg config.Config, clk clock.Clock, log *logger.Logger, app *App) jwtverify.ClaimsCache {
	if !cfg.TokenCache.Enabled {
		log.Info("token cache disabled")
		return nil
	}

	if cfg.RedisEnabled() {
		client, err := tokencache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			cache := tokencache.NewRedis(client, clk, cfg.TokenCache.TTL, log)
			app.closers = append(app.closers, cache.Close)
			log.Infof("token cache: redis at %s", cfg.Redis.Addr)
			return cache
		}
		log.WithFields(ctx, logger.Fields{"action": "token_cache_redis_unavailable"}).Warnf("redis unavailable, falling back to in-memory token cache: %v", err)
	}

	cache := tokencache.NewMemory(ctx, clk, cfg.TokenCache.TTL, log)
	app.closers = append(app.closers, cache.Close)
	log.Info("token cache: in-memory")
	return cache
}

// ShutdownHooks stops background work before the HTTP server finishes
// draining.
func (a *App) ShutdownHooks() []server.ShutdownHook {
	return []server.ShutdownHook{
		func(context.Context) error {
			a.Log.Info("stopping background workers")
			a.cancelFn()
			return nil
		},
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	a.cancelFn()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Errorf("close failed: %v", err)
		}
	}
	a.closers = nil
}
