package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, quotation_id, project_id, number, financial_year, date, due_date,
	place_of_supply, interstate, irn, ` + amountColumns + `,
	amount_paid, balance, payment_status, notes, created_by, created_at, updated_at`

// Create persiste cabecera y líneas de la factura. Debe ejecutarse dentro de una tx.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23,
		        $24, $25, $26, $27, $28, $29, $30)`
	args := []any{
		inv.ID, inv.CompanyID, inv.CustomerID, nullIfEmpty(inv.QuotationID), nullIfEmpty(inv.ProjectID),
		inv.Number, inv.FinancialYear, inv.Date, inv.DueDate, inv.PlaceOfSupply, inv.Interstate, inv.IRN,
	}
	args = append(args, amountArgs(inv.DocumentAmounts)...)
	args = append(args, inv.AmountPaid, inv.Balance, inv.PaymentStatus, inv.Notes,
		nullIfEmpty(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return insertLines(ctx, r.q, inv.ID, entity.SeriesInvoice, inv.Lines)
}

func scanInvoice(row interface{ Scan(...any) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	var quotationID, projectID, createdBy *string
	dest := []any{
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &quotationID, &projectID,
		&inv.Number, &inv.FinancialYear, &inv.Date, &inv.DueDate, &inv.PlaceOfSupply, &inv.Interstate, &inv.IRN,
	}
	dest = append(dest, amountDest(&inv.DocumentAmounts)...)
	dest = append(dest, &inv.AmountPaid, &inv.Balance, &inv.PaymentStatus, &inv.Notes,
		&createdBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	inv.QuotationID = derefStr(quotationID)
	inv.ProjectID = derefStr(projectID)
	inv.CreatedBy = derefStr(createdBy)
	return &inv, nil
}

func (r *InvoiceRepo) getWithLines(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Lines, err = loadLines(ctx, r.q, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getWithLines(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetForUpdate obtiene la factura y bloquea la cabecera hasta el fin de la tx.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getWithLines(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ListByCompany cabeceras (sin líneas) con filtros opcionales, más recientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`)
	args := []any{companyID}
	for _, cond := range []struct{ column, value string }{
		{"customer_id", f.CustomerID},
		{"project_id", f.ProjectID},
		{"payment_status", f.PaymentStatus},
	} {
		if cond.value == "" {
			continue
		}
		args = append(args, cond.value)
		fmt.Fprintf(&b, " AND %s = $%d", cond.column, len(args))
	}
	lim, off := pageArgs(f.Limit, f.Offset)
	args = append(args, lim, off)
	fmt.Fprintf(&b, " ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.list(ctx, b.String(), args...)
}

// ListOutstanding facturas con saldo pendiente, vencimiento más antiguo primero.
func (r *InvoiceRepo) ListOutstanding(ctx context.Context, companyID string) ([]*entity.Invoice, error) {
	return r.list(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE company_id = $1 AND payment_status <> 'Paid' AND balance > 0
		ORDER BY due_date, number`, companyID)
}

// UpdatePayment actualiza amount_paid, balance y payment_status.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET amount_paid = $2, balance = $3, payment_status = $4, updated_at = $5
		WHERE id = $1`,
		inv.ID, inv.AmountPaid, inv.Balance, inv.PaymentStatus, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
