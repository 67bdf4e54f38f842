package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	_ "github.com/vrudenko/cryptovest/docs"
	"github.com/vrudenko/cryptovest/internal/handlers/auth"
	"github.com/vrudenko/cryptovest/internal/handlers/balance"
	"github.com/vrudenko/cryptovest/internal/handlers/deposits"
	"github.com/vrudenko/cryptovest/internal/handlers/investments"
	"github.com/vrudenko/cryptovest/internal/service"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		BalanceService: balance.NewMockService(ctrl),
		DepositService: deposits.NewMockService(ctrl),
		InvestService:  investments.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockDepositHandler := NewMockDepositHandler(ctrl)
	mockInvestmentHandler := NewMockInvestmentHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetWithdrawals(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().CreateDeposit(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().GetDeposits(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().HandleIPN(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().Estimate(gomock.Any(), gomock.Any()).AnyTimes()
	mockDepositHandler.EXPECT().Currencies(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().GetPlans(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().CreateInvestment(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().GetInvestments(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().GetInvestment(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:       mockAuthHandler,
		BalanceHandler:    mockBalanceHandler,
		DepositHandler:    mockDepositHandler,
		InvestmentHandler: mockInvestmentHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"GET", "/api/plans", http.StatusOK},
		{"POST", "/api/payments/ipn", http.StatusOK},
		{"GET", "/api/user/balance", http.StatusUnauthorized},
		{"POST", "/api/user/deposits/", http.StatusUnauthorized},
		{"GET", "/api/user/deposits/", http.StatusUnauthorized},
		{"GET", "/api/user/deposits/dep_1/status", http.StatusUnauthorized},
		{"GET", "/api/user/estimate", http.StatusUnauthorized},
		{"GET", "/api/user/currencies", http.StatusUnauthorized},
		{"POST", "/api/user/withdrawals/", http.StatusUnauthorized},
		{"GET", "/api/user/withdrawals/", http.StatusUnauthorized},
		{"POST", "/api/user/investments/", http.StatusUnauthorized},
		{"GET", "/api/user/investments/", http.StatusUnauthorized},
		{"GET", "/api/user/investments/inv_1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
