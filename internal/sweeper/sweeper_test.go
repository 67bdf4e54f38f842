package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vrudenko/cryptovest/internal/config"
	"github.com/vrudenko/cryptovest/internal/domain"
)

func newService(t *testing.T) (*Service, *MockInvest) {
	ctrl := gomock.NewController(t)
	invest := NewMockInvest(ctrl)
	cfg := &config.Config{SweepInterval: time.Minute, AccrualPeriod: 24 * time.Hour}
	service := New(cfg, invest)
	defer ctrl.Finish()
	return service, invest
}

func maturedInvestment(id string) domain.Investment {
	return domain.Investment{
		ID:             id,
		UserID:         1,
		AmountInvested: decimal.RequireFromString("1000"),
		ExpectedReturn: decimal.RequireFromString("1280"),
		IsActive:       true,
		Status:         domain.InvestmentActive,
	}
}

func TestSweepMatured(t *testing.T) {
	service, invest := newService(t)
	first := maturedInvestment("inv_1a2b3c4d5e6f")
	second := maturedInvestment("inv_f6e5d4c3b2a1")

	var wg sync.WaitGroup
	wg.Add(2)
	invest.EXPECT().FindMatured(gomock.Any()).Return([]domain.Investment{first, second}, nil)
	invest.EXPECT().Settle(gomock.Any(), first).DoAndReturn(func(ctx context.Context, inv domain.Investment) (bool, error) {
		defer wg.Done()
		return true, nil
	})
	invest.EXPECT().Settle(gomock.Any(), second).DoAndReturn(func(ctx context.Context, inv domain.Investment) (bool, error) {
		defer wg.Done()
		return true, nil
	})

	service.sweepMatured(context.Background())
	wg.Wait()
}

func TestSweepMatured_SkipsInFlight(t *testing.T) {
	service, invest := newService(t)
	investment := maturedInvestment("inv_9z8y7x6w5v4u")
	settling.Store(investment.ID, struct{}{})
	defer settling.Delete(investment.ID)

	invest.EXPECT().FindMatured(gomock.Any()).Return([]domain.Investment{investment}, nil)

	service.sweepMatured(context.Background())
}

func TestSweepMatured_FetchError(t *testing.T) {
	service, invest := newService(t)
	invest.EXPECT().FindMatured(gomock.Any()).Return(nil, errors.New("db error"))

	service.sweepMatured(context.Background())
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool(2)
	defer wp.Close()

	var mu sync.Mutex
	executed := 0
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := wp.AddTask(context.Background(), func() error {
			defer wg.Done()
			mu.Lock()
			executed++
			mu.Unlock()
			return nil
		})
		assert.NoError(t, err)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, executed)
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	wp := NewWorkerPool(0)
	defer wp.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wp.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartAndStop(t *testing.T) {
	service, invest := newService(t)
	invest.EXPECT().FindMatured(gomock.Any()).Return(nil, nil).AnyTimes()
	invest.EXPECT().AccrueProfits(gomock.Any()).Return(nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := service.Start(ctx)
	assert.NoError(t, err)
	service.Stop()
}
