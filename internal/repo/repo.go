package repo

import (
	"github.com/vrudenko/cryptovest/internal/pg"
	balancerepo "github.com/vrudenko/cryptovest/internal/repo/balance-repo"
	depositrepo "github.com/vrudenko/cryptovest/internal/repo/deposit-repo"
	investmentrepo "github.com/vrudenko/cryptovest/internal/repo/investment-repo"
	planrepo "github.com/vrudenko/cryptovest/internal/repo/plan-repo"
	userrepo "github.com/vrudenko/cryptovest/internal/repo/user-repo"
	withdrawalrepo "github.com/vrudenko/cryptovest/internal/repo/withdrawal-repo"
)

// Repositories keeps the concrete types: the balance repo alone backs three
// different service-side interfaces.
type Repositories struct {
	UserRepo       *userrepo.Repository
	BalanceRepo    *balancerepo.Repository
	DepositRepo    *depositrepo.Repository
	WithdrawalRepo *withdrawalrepo.Repository
	PlanRepo       *planrepo.Repository
	InvestmentRepo *investmentrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(conn),
		BalanceRepo:    balancerepo.New(conn),
		DepositRepo:    depositrepo.New(conn),
		WithdrawalRepo: withdrawalrepo.New(conn),
		PlanRepo:       planrepo.New(conn),
		InvestmentRepo: investmentrepo.New(conn),
	}
}
