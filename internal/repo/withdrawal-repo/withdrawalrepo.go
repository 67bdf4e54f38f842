package withdrawalrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

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

const withdrawalColumns = `
	id, user_id, amount, currency, wallet_address, status, tx_hash, created_at, completed_at
`

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
        INSERT INTO withdrawals (id, user_id, amount, currency, wallet_address, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + withdrawalColumns
	row := r.db.QueryRow(ctx, query,
		withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.Currency,
		withdrawal.WalletAddress, withdrawal.Status,
	)
	saved, err := scanWithdrawal(row)
	if err != nil {
		zap.L().Error("failed to create withdrawal", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	withdrawal, err := scanWithdrawal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to list withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		withdrawal, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *withdrawal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// MarkCompleted flips a pending withdrawal to COMPLETED. The status guard in
// the WHERE clause makes the flip exactly-once: a second call finds no
// pending row and reports false.
func (r *Repository) MarkCompleted(ctx context.Context, id string, txHash string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET status = $1, tx_hash = $2, completed_at = now()
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, domain.WithdrawalCompleted, txHash, id, domain.WithdrawalPending)
	if err != nil {
		zap.L().Error("failed to complete withdrawal", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) MarkFailed(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET status = $1, completed_at = now()
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, domain.WithdrawalFailed, id, domain.WithdrawalPending)
	if err != nil {
		zap.L().Error("failed to mark withdrawal failed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	err := row.Scan(
		&withdrawal.ID, &withdrawal.UserID, &withdrawal.Amount, &withdrawal.Currency,
		&withdrawal.WalletAddress, &withdrawal.Status, &withdrawal.TxHash,
		&withdrawal.CreatedAt, &withdrawal.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}
