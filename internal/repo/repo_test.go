package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	balancerepo "github.com/vrudenko/cryptovest/internal/repo/balance-repo"
	depositrepo "github.com/vrudenko/cryptovest/internal/repo/deposit-repo"
	investmentrepo "github.com/vrudenko/cryptovest/internal/repo/investment-repo"
	planrepo "github.com/vrudenko/cryptovest/internal/repo/plan-repo"
	userrepo "github.com/vrudenko/cryptovest/internal/repo/user-repo"
	withdrawalrepo "github.com/vrudenko/cryptovest/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.BalanceRepo)
	assert.NotNil(t, repo.DepositRepo)
	assert.NotNil(t, repo.WithdrawalRepo)
	assert.NotNil(t, repo.PlanRepo)
	assert.NotNil(t, repo.InvestmentRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &balancerepo.Repository{}, repo.BalanceRepo)
	assert.IsType(t, &depositrepo.Repository{}, repo.DepositRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.WithdrawalRepo)
	assert.IsType(t, &planrepo.Repository{}, repo.PlanRepo)
	assert.IsType(t, &investmentrepo.Repository{}, repo.InvestmentRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
