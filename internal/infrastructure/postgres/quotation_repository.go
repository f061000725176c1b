package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo cotizaciones y sus líneas sobre PostgreSQL.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, company_id, customer_id, number, financial_year, date, valid_until,
	place_of_supply, interstate, status, notes, ` + amountColumns + `, created_by, created_at, updated_at`

// Create guarda cabecera y líneas. Debe ejecutarse dentro de una tx.
func (r *QuotationRepo) Create(ctx context.Context, qt *entity.Quotation) error {
	query := `INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
		        $23, $24, $25)`
	args := []any{
		qt.ID, qt.CompanyID, qt.CustomerID, qt.Number, qt.FinancialYear, qt.Date, qt.ValidUntil,
		qt.PlaceOfSupply, qt.Interstate, qt.Status, qt.Notes,
	}
	args = append(args, amountArgs(qt.DocumentAmounts)...)
	args = append(args, nullIfEmpty(qt.CreatedBy), qt.CreatedAt, qt.UpdatedAt)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return insertLines(ctx, r.q, qt.ID, entity.SeriesQuotation, qt.Lines)
}

func scanQuotation(row interface{ Scan(...any) error }) (*entity.Quotation, error) {
	var qt entity.Quotation
	var createdBy *string
	dest := []any{
		&qt.ID, &qt.CompanyID, &qt.CustomerID, &qt.Number, &qt.FinancialYear, &qt.Date, &qt.ValidUntil,
		&qt.PlaceOfSupply, &qt.Interstate, &qt.Status, &qt.Notes,
	}
	dest = append(dest, amountDest(&qt.DocumentAmounts)...)
	dest = append(dest, &createdBy, &qt.CreatedAt, &qt.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	qt.CreatedBy = derefStr(createdBy)
	return &qt, nil
}

// GetByID devuelve la cotización con sus líneas en orden de posición.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	qt, err := scanQuotation(r.q.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if qt.Lines, err = loadLines(ctx, r.q, qt.ID); err != nil {
		return nil, err
	}
	return qt, nil
}

// ListByCompany cabeceras (sin líneas), más recientes primero.
func (r *QuotationRepo) ListByCompany(ctx context.Context, companyID string, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + quotationColumns + ` FROM quotations WHERE company_id = $1`)
	args := []any{companyID}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		fmt.Fprintf(&b, " AND customer_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		fmt.Fprintf(&b, " AND status = $%d", len(args))
	}
	lim, off := pageArgs(f.Limit, f.Offset)
	args = append(args, lim, off)
	fmt.Fprintf(&b, " ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, qt)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la cotización.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE quotations SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
