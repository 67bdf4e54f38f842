package planrepo

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

func (r *Repository) FindAll(ctx context.Context) ([]domain.Plan, error) {
	query := `
        SELECT id, name, min_amount, max_amount, percent_return, duration_days
        FROM plans
        ORDER BY min_amount
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list plans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.MinAmount, &plan.MaxAmount, &plan.PercentReturn, &plan.DurationDays); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Plan, error) {
	query := `
        SELECT id, name, min_amount, max_amount, percent_return, duration_days
        FROM plans
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	var plan domain.Plan
	err := row.Scan(&plan.ID, &plan.Name, &plan.MinAmount, &plan.MaxAmount, &plan.PercentReturn, &plan.DurationDays)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find plan", zap.Error(err))
		return nil, err
	}
	return &plan, nil
}
