package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/crm-pro/internal/application/permission"
)

// Ensure TxRunner implements permission.TxRunner.
var _ permission.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// todos los repositorios atados a la misma tx. Es la pieza que hace atómico
// al guard de límites: el SELECT FOR UPDATE del contador y el insert del
// createFn comparten transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El Rollback diferido garantiza que un pánico o un error
// de fn nunca dejen la transacción (ni sus locks) colgando.
func (r *TxRunner) Run(ctx context.Context, fn func(repos permission.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := permission.TxRepos{
		Accounts:      NewBusinessAccountRepository(tx),
		Plans:         NewPlanRepository(tx),
		Overrides:     NewOverrideRepository(tx),
		Usage:         NewUsageCounter(tx),
		UsageRecords:  NewUsageRecordRepository(tx),
		Users:         NewUserRepository(tx),
		Companies:     NewCompanyRepository(tx),
		Opportunities: NewOpportunityRepository(tx),
		Activities:    NewActivityRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
