package investmentrepo

import (
	"context"
	"time"

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

const investmentColumns = `
	id, user_id, plan_id, amount_invested, expected_return, start_date, end_date,
	profit_made, is_active, status, last_profit_update
`

func (r *Repository) Save(ctx context.Context, investment *domain.Investment) (*domain.Investment, error) {
	query := `
        INSERT INTO investments (id, user_id, plan_id, amount_invested, expected_return, start_date, end_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + investmentColumns
	row := r.db.QueryRow(ctx, query,
		investment.ID, investment.UserID, investment.PlanID, investment.AmountInvested,
		investment.ExpectedReturn, investment.StartDate, investment.EndDate, investment.Status,
	)
	saved, err := scanInvestment(row)
	if err != nil {
		zap.L().Error("failed to save investment", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id string, userID int) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1 AND user_id = $2`
	investment, err := scanInvestment(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find investment", zap.Error(err))
		return nil, err
	}
	return investment, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY start_date DESC`
	return r.findMany(ctx, query, userID)
}

// FindExpired returns active investments whose term has elapsed. The partial
// index on (end_date) WHERE is_active keeps this cheap as the table grows.
func (r *Repository) FindExpired(ctx context.Context, now time.Time) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE is_active AND end_date <= $1`
	return r.findMany(ctx, query, now)
}

func (r *Repository) FindExpiredByUserID(ctx context.Context, userID int, now time.Time) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 AND is_active AND end_date <= $2`
	return r.findMany(ctx, query, userID, now)
}

// Complete deactivates an investment. The is_active guard makes the flip
// exactly-once under concurrent sweeps: only one caller sees a row affected.
func (r *Repository) Complete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE investments
		SET is_active = FALSE, status = $1, profit_made = expected_return - amount_invested, last_profit_update = now()
		WHERE id = $2 AND is_active
	`
	tag, err := r.db.Exec(ctx, query, domain.InvestmentCompleted, id)
	if err != nil {
		zap.L().Error("failed to complete investment", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) FindActiveForAccrual(ctx context.Context, before time.Time) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE is_active AND last_profit_update <= $1`
	return r.findMany(ctx, query, before)
}

func (r *Repository) UpdateProfit(ctx context.Context, id string, profit decimal.Decimal, at time.Time) error {
	query := `
		UPDATE investments
		SET profit_made = profit_made + $1, last_profit_update = $2
		WHERE id = $3 AND is_active
	`
	_, err := r.db.Exec(ctx, query, profit, at, id)
	if err != nil {
		zap.L().Error("failed to update investment profit", zap.Error(err))
	}
	return err
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Investment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to query investments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, *investment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return investments, nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var investment domain.Investment
	err := row.Scan(
		&investment.ID, &investment.UserID, &investment.PlanID, &investment.AmountInvested,
		&investment.ExpectedReturn, &investment.StartDate, &investment.EndDate,
		&investment.ProfitMade, &investment.IsActive, &investment.Status, &investment.LastProfitUpdate,
	)
	if err != nil {
		return nil, err
	}
	return &investment, nil
}
