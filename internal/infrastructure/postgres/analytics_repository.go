package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesSummary suma las facturas con fecha en [startDate, endDate).
// COALESCE devuelve cero si el período no tiene ventas.
func (r *AnalyticsRepo) GetSalesSummary(
	ctx context.Context,
	companyID string,
	startDate, endDate time.Time,
) (repository.SalesSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                          AS invoice_count,
	    COALESCE(SUM(taxable_amount), 0)  AS taxable_amount,
	    COALESCE(SUM(cgst), 0)            AS cgst,
	    COALESCE(SUM(sgst), 0)            AS sgst,
	    COALESCE(SUM(igst), 0)            AS igst,
	    COALESCE(SUM(tcs_amount), 0)      AS tcs_amount,
	    COALESCE(SUM(grand_total), 0)     AS grand_total
	FROM invoices
	WHERE company_id = $1
	  AND date >= $2 AND date < $3`

	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(
		&s.InvoiceCount, &s.TaxableAmount, &s.CGST, &s.SGST, &s.IGST, &s.TCSAmount, &s.GrandTotal,
	)
	if err != nil {
		return repository.SalesSummary{}, fmt.Errorf("analytics.GetSalesSummary: %w", err)
	}
	return s, nil
}

// GetReceivables saldo pendiente total, facturas abiertas y vencidas (due_date < asOf).
func (r *AnalyticsRepo) GetReceivables(ctx context.Context, companyID string, asOf time.Time) (repository.ReceivablesSummary, error) {
	const query = `
	SELECT
	    COALESCE(SUM(balance), 0)                    AS outstanding,
	    COUNT(*)                                     AS open_count,
	    COUNT(*) FILTER (WHERE due_date < $2::date)  AS overdue_count
	FROM invoices
	WHERE company_id = $1
	  AND balance > 0`

	var s repository.ReceivablesSummary
	if err := r.q.QueryRow(ctx, query, companyID, asOf).Scan(&s.Outstanding, &s.OpenCount, &s.OverdueCount); err != nil {
		return repository.ReceivablesSummary{}, fmt.Errorf("analytics.GetReceivables: %w", err)
	}
	return s, nil
}
