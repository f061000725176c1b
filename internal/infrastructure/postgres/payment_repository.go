package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo cobros sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, invoice_id, project_id, stage, amount, mode, reference, date, notes, created_by, created_at`

// Create persiste un cobro.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, nullIfEmpty(p.InvoiceID), nullIfEmpty(p.ProjectID), p.Stage, p.Amount, p.Mode,
		p.Reference, p.Date, p.Notes, nullIfEmpty(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoice cobros de una factura en orden de registro.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY created_at, id`, invoiceID)
}

// ListByProject cobros de un proyecto en orden de registro.
func (r *PaymentRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE project_id = $1 ORDER BY created_at, id`, projectID)
}

func (r *PaymentRepo) list(ctx context.Context, query, id string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		var p entity.Payment
		var invoiceID, projectID, createdBy *string
		if err := rows.Scan(&p.ID, &p.CompanyID, &invoiceID, &projectID, &p.Stage, &p.Amount, &p.Mode,
			&p.Reference, &p.Date, &p.Notes, &createdBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.InvoiceID = derefStr(invoiceID)
		p.ProjectID = derefStr(projectID)
		p.CreatedBy = derefStr(createdBy)
		list = append(list, &p)
	}
	return list, rows.Err()
}
