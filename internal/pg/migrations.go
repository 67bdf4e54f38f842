package pg

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/vrudenko/cryptovest/migrations"
	"go.uber.org/zap"
)

// RunMigrations applies the embedded goose migrations through a short-lived
// database/sql handle over the shared pgx pool.
func RunMigrations(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("can't set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("can't apply migrations: %w", err)
	}
	zap.L().Info("database schema is up to date")
	return nil
}
