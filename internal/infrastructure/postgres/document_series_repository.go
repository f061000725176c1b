package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.DocumentSeriesRepository = (*DocumentSeriesRepo)(nil)

// DocumentSeriesRepo consecutivos por empresa, tipo y año fiscal.
type DocumentSeriesRepo struct {
	q Querier
}

// NewDocumentSeriesRepository construye el adaptador. Pasar la tx del documento.
func NewDocumentSeriesRepository(q Querier) *DocumentSeriesRepo {
	return &DocumentSeriesRepo{q: q}
}

// Next incrementa el consecutivo con un upsert; la fila queda bloqueada hasta el fin de la tx.
func (r *DocumentSeriesRepo) Next(ctx context.Context, companyID, docType, financialYear string) (int64, error) {
	const query = `
		INSERT INTO document_series (company_id, doc_type, financial_year, last_number, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (company_id, doc_type, financial_year)
		DO UPDATE SET last_number = document_series.last_number + 1, updated_at = now()
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, docType, financialYear).Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s number: %w", docType, err)
	}
	return n, nil
}
