package service

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vrudenko/cryptovest/internal/config"
	"github.com/vrudenko/cryptovest/internal/gateway"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/internal/repo"
	"github.com/vrudenko/cryptovest/pkg/clients"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	txManager := pg.NewMockTXManager(ctrl)
	repos := repo.New(mockDB)

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:           "https://gateway.test/v1",
		APIKey:            "test-key",
		IPNSecret:         "test-secret",
		MinAmount:         decimal.RequireFromString("10"),
		MaxAmount:         decimal.RequireFromString("100000"),
		SupportedNetworks: []string{"btc"},
	}, clients.NewHTTPClient())
	assert.NoError(t, err)

	cfg := &config.Config{
		MinWithdrawal: 10,
		AccrualPeriod: 24 * time.Hour,
	}

	services := New(cfg, repos, gw, txManager)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.DepositService)
	assert.NotNil(t, services.InvestService)
	assert.NotNil(t, services.Invest)
}
