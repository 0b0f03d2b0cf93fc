package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionCoordinator runs a unit of work across repositories sharing one pgx.Tx.
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

func (tc *TransactionCoordinator) WithTx(
	ctx context.Context,
	fn func(ctx context.Context, repos application.Repositories) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	repos := application.Repositories{
		Transactions: &TransactionRepository{q: tx},
		Plans:        &CatalogRepository{q: tx},
		Windows:      &AccessWindowRepository{q: tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
