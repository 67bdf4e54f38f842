package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vrudenko/cryptovest/internal/config"
	"github.com/vrudenko/cryptovest/internal/domain"
	"go.uber.org/zap"
)

type Invest interface {
	FindMatured(ctx context.Context) ([]domain.Investment, error)
	Settle(ctx context.Context, investment domain.Investment) (bool, error)
	AccrueProfits(ctx context.Context) error
}

// settling tracks investment ids currently in flight so overlapping ticks
// do not queue the same position twice.
var settling sync.Map

type Service struct {
	invest        Invest
	workerPool    WorkerPoolI
	scheduler     gocron.Scheduler
	sweepInterval time.Duration
	accrualPeriod time.Duration
}

func New(cfg *config.Config, invest Invest) *Service {
	return &Service{
		invest:        invest,
		workerPool:    NewWorkerPool(10),
		sweepInterval: cfg.SweepInterval,
		accrualPeriod: cfg.AccrualPeriod,
	}
}

func (s *Service) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.scheduler = scheduler

	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.sweepInterval),
		gocron.NewTask(func() { s.sweepMatured(ctx) }),
	); err != nil {
		return err
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.accrualPeriod),
		gocron.NewTask(func() {
			if err := s.invest.AccrueProfits(ctx); err != nil {
				zap.L().Error("profit accrual failed", zap.Error(err))
			}
		}),
	); err != nil {
		return err
	}

	scheduler.Start()
	zap.L().Info("sweeper started",
		zap.Duration("sweep_interval", s.sweepInterval),
		zap.Duration("accrual_period", s.accrualPeriod))
	return nil
}

func (s *Service) Stop() {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			zap.L().Error("scheduler shutdown failed", zap.Error(err))
		}
	}
	s.workerPool.Close()
}

func (s *Service) sweepMatured(ctx context.Context) {
	matured, err := s.invest.FindMatured(ctx)
	if err != nil {
		zap.L().Error("failed to fetch matured investments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, investment := range matured {
		investment := investment

		if _, loaded := settling.LoadOrStore(investment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer settling.Delete(investment.ID)
				_, err := s.invest.Settle(ctx, investment)
				return err
			})
			if err != nil {
				settling.Delete(investment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error sweeping matured investments", zap.Error(err))
	}
}
