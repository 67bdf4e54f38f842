package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vrudenko/cryptovest/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func testWithdrawal() domain.Withdrawal {
	return domain.Withdrawal{
		ID:            "wit_0f9e8d7c6b5a",
		UserID:        1,
		Amount:        decimal.RequireFromString("75.00"),
		Currency:      "usdttrc20",
		WalletAddress: "TN3W4H6rK2ce4vX9YnFQHwKENnHjoxb3m9",
		Status:        domain.WithdrawalPending,
		CreatedAt:     time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
	}
}

func withdrawalRows(withdrawals ...domain.Withdrawal) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "amount", "currency", "wallet_address", "status", "tx_hash", "created_at", "completed_at",
	})
	for _, w := range withdrawals {
		rows.AddRow(
			w.ID, w.UserID, w.Amount, w.Currency, w.WalletAddress, w.Status, w.TxHash, w.CreatedAt, w.CompletedAt,
		)
	}
	return rows
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	withdrawal := testWithdrawal()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates withdrawal",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawals`)).
					WithArgs(
						withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.Currency,
						withdrawal.WalletAddress, withdrawal.Status,
					).
					WillReturnRows(withdrawalRows(withdrawal))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawals`)).
					WithArgs(
						withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.Currency,
						withdrawal.WalletAddress, withdrawal.Status,
					).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			saved, err := repo.Create(context.Background(), &withdrawal)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, saved)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, &withdrawal, saved)
			}
		})
	}
}

func TestRepository_MarkCompleted(t *testing.T) {
	repo, mock := NewMock(t)
	withdrawal := testWithdrawal()
	txHash := "0xdeadbeef"

	tests := []struct {
		name      string
		mockSetup func()
		applied   bool
		expectErr bool
	}{
		{
			name: "Pending withdrawal flips to completed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
					WithArgs(domain.WithdrawalCompleted, txHash, withdrawal.ID, domain.WithdrawalPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			applied: true,
		},
		{
			name: "Already completed is a no-op",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
					WithArgs(domain.WithdrawalCompleted, txHash, withdrawal.ID, domain.WithdrawalPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			applied: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
					WithArgs(domain.WithdrawalCompleted, txHash, withdrawal.ID, domain.WithdrawalPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			applied, err := repo.MarkCompleted(context.Background(), withdrawal.ID, txHash)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_MarkFailed(t *testing.T) {
	repo, mock := NewMock(t)
	withdrawal := testWithdrawal()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
		WithArgs(domain.WithdrawalFailed, withdrawal.ID, domain.WithdrawalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	applied, err := repo.MarkFailed(context.Background(), withdrawal.ID)
	assert.NoError(t, err)
	assert.True(t, applied)
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	withdrawal := testWithdrawal()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(1).
		WillReturnRows(withdrawalRows(withdrawal))

	withdrawals, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Withdrawal{withdrawal}, withdrawals)
}
