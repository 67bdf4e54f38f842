package depositrepo

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

const depositColumns = `
	id, user_id, payment_id, amount, pay_address, pay_currency, pay_amount,
	status, payment_status, actually_paid, ipn_processed, created_at, completed_at
`

func (r *Repository) Save(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	query := `
        INSERT INTO deposits (id, user_id, payment_id, amount, pay_address, pay_currency, pay_amount, status, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + depositColumns
	row := r.db.QueryRow(ctx, query,
		deposit.ID, deposit.UserID, deposit.PaymentID, deposit.Amount,
		deposit.PayAddress, deposit.PayCurrency, deposit.PayAmount, deposit.Status, deposit.PaymentStatus,
	)
	saved, err := scanDeposit(row)
	if err != nil {
		zap.L().Error("failed to save deposit", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id string, userID int) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1 AND user_id = $2`
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

func (r *Repository) FindByPaymentID(ctx context.Context, paymentID string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE payment_id = $1`
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find deposit by payment id", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// FindByPaymentIDForUpdate locks the deposit row for the duration of the
// enclosing transaction. Concurrent status notifications for the same
// payment serialize here, which is what makes the credit-once guarantee
// hold.
func (r *Repository) FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE payment_id = $1 FOR UPDATE`
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock deposit by payment id", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

func (r *Repository) Update(ctx context.Context, deposit *domain.Deposit) error {
	query := `
        UPDATE deposits
        SET status = $1, payment_status = $2, actually_paid = $3, ipn_processed = $4, completed_at = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query,
		deposit.Status, deposit.PaymentStatus, deposit.ActuallyPaid, deposit.IPNProcessed, deposit.CompletedAt, deposit.ID,
	)
	if err != nil {
		zap.L().Error("failed to update deposit", zap.Error(err))
	}
	return err
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to list deposits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, *deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deposits, nil
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var deposit domain.Deposit
	err := row.Scan(
		&deposit.ID, &deposit.UserID, &deposit.PaymentID, &deposit.Amount,
		&deposit.PayAddress, &deposit.PayCurrency, &deposit.PayAmount,
		&deposit.Status, &deposit.PaymentStatus, &deposit.ActuallyPaid, &deposit.IPNProcessed,
		&deposit.CreatedAt, &deposit.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}
