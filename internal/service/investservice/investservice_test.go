package investservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/pg"
)

type mocks struct {
	planRepo       *MockPlanRepo
	investmentRepo *MockInvestmentRepo
	balanceRepo    *MockBalanceRepo
	txManager      *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		planRepo:       NewMockPlanRepo(ctrl),
		investmentRepo: NewMockInvestmentRepo(ctrl),
		balanceRepo:    NewMockBalanceRepo(ctrl),
		txManager:      pg.NewMockTXManager(ctrl),
	}
	service := New(m.planRepo, m.investmentRepo, m.balanceRepo, m.txManager, 24*time.Hour)
	defer ctrl.Finish()
	return service, m
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
}

func growthPlan() *domain.Plan {
	return &domain.Plan{
		ID:            2,
		Name:          "Growth",
		MinAmount:     decimal.RequireFromString("1000"),
		MaxAmount:     decimal.RequireFromString("9999"),
		PercentReturn: decimal.RequireFromString("2.00"),
		DurationDays:  14,
	}
}

func TestExpectedReturn(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		percent  string
		days     int
		expected string
	}{
		{name: "Simple interest across the term", amount: "1000", percent: "5", days: 10, expected: "1500"},
		{name: "Growth plan", amount: "1000", percent: "2.00", days: 14, expected: "1280"},
		{name: "Rounds to cents", amount: "333.33", percent: "1.50", days: 7, expected: "368.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &domain.Plan{
				PercentReturn: decimal.RequireFromString(tt.percent),
				DurationDays:  tt.days,
			}
			got := ExpectedReturn(decimal.RequireFromString(tt.amount), plan)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestCreateInvestment(t *testing.T) {
	amount := decimal.RequireFromString("1000")

	tests := []struct {
		name          string
		amount        decimal.Decimal
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name:   "Debit and open settle together",
			amount: amount,
			prepareMock: func(m *mocks) {
				m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(growthPlan(), nil)
				passthroughTx(m.txManager)
				m.balanceRepo.EXPECT().Debit(gomock.Any(), 1, amount).Return(true, nil)
				m.investmentRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
						assert.Equal(t, domain.InvestmentActive, inv.Status)
						assert.True(t, decimal.RequireFromString("1280").Equal(inv.ExpectedReturn), "got %s", inv.ExpectedReturn)
						assert.Equal(t, inv.StartDate.AddDate(0, 0, 14), inv.EndDate)
						return inv, nil
					})
				m.balanceRepo.EXPECT().AddInvested(gomock.Any(), 1, amount).Return(nil)
			},
		},
		{
			name:   "Unknown plan",
			amount: amount,
			prepareMock: func(m *mocks) {
				m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(nil, nil)
			},
			expectedError: ErrPlanNotFound,
		},
		{
			name:   "Amount below plan minimum",
			amount: decimal.RequireFromString("999"),
			prepareMock: func(m *mocks) {
				m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(growthPlan(), nil)
			},
			expectedError: ErrAmountOutOfRange,
		},
		{
			name:   "Amount above plan maximum",
			amount: decimal.RequireFromString("10000"),
			prepareMock: func(m *mocks) {
				m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(growthPlan(), nil)
			},
			expectedError: ErrAmountOutOfRange,
		},
		{
			name:   "Insufficient balance rolls back",
			amount: amount,
			prepareMock: func(m *mocks) {
				m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(growthPlan(), nil)
				passthroughTx(m.txManager)
				m.balanceRepo.EXPECT().Debit(gomock.Any(), 1, amount).Return(false, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			investment, err := service.CreateInvestment(context.Background(), 1, 2, tt.amount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, investment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, investment)
			}
		})
	}
}

func matured() domain.Investment {
	start := time.Now().AddDate(0, 0, -15)
	return domain.Investment{
		ID:             "inv_1a2b3c4d5e6f",
		UserID:         1,
		PlanID:         2,
		AmountInvested: decimal.RequireFromString("1000"),
		ExpectedReturn: decimal.RequireFromString("1280"),
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 14),
		IsActive:       true,
		Status:         domain.InvestmentActive,
	}
}

func TestSweepExpired(t *testing.T) {
	tests := []struct {
		name            string
		prepareMock     func(m *mocks)
		expectedSettled int
	}{
		{
			name: "Matured investment pays out once",
			prepareMock: func(m *mocks) {
				investment := matured()
				m.investmentRepo.EXPECT().FindExpired(gomock.Any(), gomock.Any()).Return([]domain.Investment{investment}, nil)
				passthroughTx(m.txManager)
				m.investmentRepo.EXPECT().Complete(gomock.Any(), investment.ID).Return(true, nil)
				m.balanceRepo.EXPECT().Credit(gomock.Any(), 1, decimal.RequireFromString("1280")).Return(nil)
				m.balanceRepo.EXPECT().AddProfit(gomock.Any(), 1, decimal.RequireFromString("280")).Return(nil)
			},
			expectedSettled: 1,
		},
		{
			name: "Concurrent sweep already settled the row",
			prepareMock: func(m *mocks) {
				investment := matured()
				m.investmentRepo.EXPECT().FindExpired(gomock.Any(), gomock.Any()).Return([]domain.Investment{investment}, nil)
				passthroughTx(m.txManager)
				m.investmentRepo.EXPECT().Complete(gomock.Any(), investment.ID).Return(false, nil)
			},
			expectedSettled: 0,
		},
		{
			name: "Credit failure rolls the flip back",
			prepareMock: func(m *mocks) {
				investment := matured()
				m.investmentRepo.EXPECT().FindExpired(gomock.Any(), gomock.Any()).Return([]domain.Investment{investment}, nil)
				passthroughTx(m.txManager)
				m.investmentRepo.EXPECT().Complete(gomock.Any(), investment.ID).Return(true, nil)
				m.balanceRepo.EXPECT().Credit(gomock.Any(), 1, gomock.Any()).Return(errors.New("db error"))
			},
			expectedSettled: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			settled, err := service.SweepExpired(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSettled, settled)
		})
	}
}

func TestGetInvestments_SweepsFirst(t *testing.T) {
	service, m := NewMock(t)
	investment := matured()
	investment.IsActive = false
	investment.Status = domain.InvestmentCompleted

	m.investmentRepo.EXPECT().FindExpiredByUserID(gomock.Any(), 1, gomock.Any()).Return(nil, nil)
	m.investmentRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return([]domain.Investment{investment}, nil)

	investments, err := service.GetInvestments(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Investment{investment}, investments)
}

func TestAccrueProfits(t *testing.T) {
	service, m := NewMock(t)
	investment := matured()

	m.investmentRepo.EXPECT().FindActiveForAccrual(gomock.Any(), gomock.Any()).Return([]domain.Investment{investment}, nil)
	m.planRepo.EXPECT().FindByID(gomock.Any(), 2).Return(growthPlan(), nil)
	m.investmentRepo.EXPECT().UpdateProfit(gomock.Any(), investment.ID, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, profit decimal.Decimal, at time.Time) error {
			assert.True(t, decimal.RequireFromString("20").Equal(profit), "got %s", profit)
			return nil
		})

	err := service.AccrueProfits(context.Background())
	assert.NoError(t, err)
}

func TestGetPlans(t *testing.T) {
	service, m := NewMock(t)
	expected := []domain.Plan{*growthPlan()}
	m.planRepo.EXPECT().FindAll(gomock.Any()).Return(expected, nil)

	plans, err := service.GetPlans(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, plans)
}
