package service

import (
	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/config"
	"github.com/vrudenko/cryptovest/internal/gateway"
	"github.com/vrudenko/cryptovest/internal/handlers/auth"
	"github.com/vrudenko/cryptovest/internal/handlers/balance"
	"github.com/vrudenko/cryptovest/internal/handlers/deposits"
	"github.com/vrudenko/cryptovest/internal/handlers/investments"
	"github.com/vrudenko/cryptovest/internal/pg"
	"github.com/vrudenko/cryptovest/internal/repo"
	authservice "github.com/vrudenko/cryptovest/internal/service/authservice"
	balanceservice "github.com/vrudenko/cryptovest/internal/service/balanceservice"
	depositservice "github.com/vrudenko/cryptovest/internal/service/depositservice"
	investservice "github.com/vrudenko/cryptovest/internal/service/investservice"
	pkgauth "github.com/vrudenko/cryptovest/pkg/auth"
)

type Services struct {
	AuthService    auth.Service
	BalanceService balance.Service
	DepositService deposits.Service
	InvestService  investments.Service

	// Sweeper retains the concrete type for background jobs.
	Invest *investservice.Service
}

func New(cfg *config.Config, repo *repo.Repositories, gw *gateway.Client, txManager pg.TXManager) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo, repo.WithdrawalRepo, txManager, decimal.NewFromFloat(cfg.MinWithdrawal))
	depositService := depositservice.New(repo.DepositRepo, repo.BalanceRepo, gw, txManager)
	investService := investservice.New(repo.PlanRepo, repo.InvestmentRepo, repo.BalanceRepo, txManager, cfg.AccrualPeriod)
	authService := authservice.New(repo.UserRepo, balanceService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:    authService,
		BalanceService: balanceService,
		DepositService: depositService,
		InvestService:  investService,
		Invest:         investService,
	}
}
