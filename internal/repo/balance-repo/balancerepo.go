package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vrudenko/cryptovest/internal/domain"
	"github.com/vrudenko/cryptovest/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance, withdrawn_total, invested_total, profit_total
        FROM balances
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current, &balance.WithdrawnTotal, &balance.InvestedTotal, &balance.ProfitTotal)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, current_balance, withdrawn_total, invested_total, profit_total)
        VALUES ($1, 0, 0, 0, 0)
        RETURNING id, user_id, current_balance, withdrawn_total, invested_total, profit_total
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current, &balance.WithdrawnTotal, &balance.InvestedTotal, &balance.ProfitTotal)
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// Credit applies a positive delta to the balance row. Must run inside the
// caller's transaction so the credit commits together with the status
// transition that caused it.
func (r *Repository) Credit(ctx context.Context, userID int, amount decimal.Decimal) error {
	query := `
		UPDATE balances
		SET current_balance = current_balance + $1
		WHERE user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to credit balance", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Debit applies a negative delta, gated on sufficiency inside the same
// statement: the balance check and the mutation are one atomic
// read-modify-write, so concurrent debits cannot interleave past zero.
// Returns false without mutating when funds are insufficient.
func (r *Repository) Debit(ctx context.Context, userID int, amount decimal.Decimal) (bool, error) {
	query := `
		UPDATE balances
		SET current_balance = current_balance - $1
		WHERE user_id = $2 AND current_balance >= $1
	`
	tag, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to debit balance", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AddWithdrawn bumps the withdrawn rollup; paired with Debit on withdrawal
// completion.
func (r *Repository) AddWithdrawn(ctx context.Context, userID int, amount decimal.Decimal) error {
	query := `
		UPDATE balances
		SET withdrawn_total = withdrawn_total + $1
		WHERE user_id = $2
	`
	_, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to update withdrawn total", zap.Error(err))
	}
	return err
}

func (r *Repository) AddInvested(ctx context.Context, userID int, amount decimal.Decimal) error {
	query := `
		UPDATE balances
		SET invested_total = invested_total + $1
		WHERE user_id = $2
	`
	_, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to update invested total", zap.Error(err))
	}
	return err
}

func (r *Repository) AddProfit(ctx context.Context, userID int, amount decimal.Decimal) error {
	query := `
		UPDATE balances
		SET profit_total = profit_total + $1
		WHERE user_id = $2
	`
	_, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to update profit total", zap.Error(err))
	}
	return err
}
