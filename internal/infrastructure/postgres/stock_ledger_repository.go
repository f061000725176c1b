package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo libro mayor de inventario sobre PostgreSQL. Solo INSERT y SELECT.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append inserta la entrada y asigna Seq desde la secuencia de la tabla.
func (r *StockLedgerRepo) Append(ctx context.Context, e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, company_id, item_id, transaction_type, quantity, unit, rate, amount,
		                          balance_quantity, transaction_date, reference_number, project_id, remarks,
		                          created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.CompanyID, e.ItemID, e.TransactionType, e.Quantity, e.Unit, e.Rate, e.Amount,
		e.BalanceQuantity, e.TransactionDate, e.ReferenceNumber, nullIfEmpty(e.ProjectID), e.Remarks,
		nullIfEmpty(e.CreatedBy), e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List entradas de la empresa en orden de inserción con filtros opcionales.
func (r *StockLedgerRepo) List(ctx context.Context, companyID string, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT seq, id, company_id, item_id, transaction_type, quantity, unit, rate, amount,
		       balance_quantity, transaction_date, reference_number, project_id, remarks,
		       created_by, created_at
		FROM stock_ledger WHERE company_id = $1`)
	args := []any{companyID}
	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		fmt.Fprintf(&b, " AND %s = $%d", column, len(args))
	}
	addFilter("item_id", f.ItemID)
	addFilter("transaction_type", f.TransactionType)
	addFilter("project_id", f.ProjectID)
	b.WriteString(" ORDER BY seq")

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		var projectID, createdBy *string
		if err := rows.Scan(
			&e.Seq, &e.ID, &e.CompanyID, &e.ItemID, &e.TransactionType, &e.Quantity, &e.Unit, &e.Rate, &e.Amount,
			&e.BalanceQuantity, &e.TransactionDate, &e.ReferenceNumber, &projectID, &e.Remarks,
			&createdBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.ProjectID = derefStr(projectID)
		e.CreatedBy = derefStr(createdBy)
		list = append(list, &e)
	}
	return list, rows.Err()
}
