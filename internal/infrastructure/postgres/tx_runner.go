package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories todos los repositorios sobre un mismo Querier (pool o tx).
func Repositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Companies:  NewCompanyRepository(q),
		Customers:  NewCustomerRepository(q),
		Items:      NewItemRepository(q),
		Ledger:     NewStockLedgerRepository(q),
		Quotations: NewQuotationRepository(q),
		Invoices:   NewInvoiceRepository(q),
		Projects:   NewProjectRepository(q),
		Payments:   NewPaymentRepository(q),
		Series:     NewDocumentSeriesRepository(q),
	}
}
