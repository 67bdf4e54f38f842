package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vrudenko/cryptovest/internal/config"
	"github.com/vrudenko/cryptovest/internal/gateway"
	"github.com/vrudenko/cryptovest/internal/handlers"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/internal/repo"
	"github.com/vrudenko/cryptovest/internal/service"
	"github.com/vrudenko/cryptovest/internal/sweeper"
	"github.com/vrudenko/cryptovest/pkg/clients"
	"github.com/vrudenko/cryptovest/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	sweep *sweeper.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:           cfg.GatewayAddress,
		APIKey:            cfg.GatewayAPIKey,
		IPNSecret:         cfg.IPNSecret,
		IPNCallbackURL:    cfg.IPNCallbackURL,
		MinAmount:         decimal.NewFromFloat(cfg.MinDeposit),
		MaxAmount:         decimal.NewFromFloat(cfg.MaxDeposit),
		SupportedNetworks: cfg.SupportedNetworks,
	}, clients.NewHTTPClient())
	if err != nil {
		zap.L().Error("gateway init failed: ", zap.Error(err))
		return fmt.Errorf("can't init payment gateway: %w", err)
	}

	a.cfg = cfg
	a.repo = repo.New(conn)
	a.srv = service.New(cfg, a.repo, gw, txManager)
	a.api = handlers.New(a.srv)
	a.sweep = sweeper.New(cfg, a.srv.Invest)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.sweep.Start(ctx); err != nil {
		return fmt.Errorf("can't start sweeper: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	// NUMERIC columns scan straight into decimal.Decimal.
	cfgpool.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	if a.sweep != nil {
		a.sweep.Stop()
	}
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
