package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary resultado crudo de la facturación del período.
type SalesSummary struct {
	InvoiceCount  int
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TCSAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ReceivablesSummary cartera pendiente a una fecha.
type ReceivablesSummary struct {
	Outstanding  decimal.Decimal
	OpenCount    int
	OverdueCount int
}

// AnalyticsRepository consultas de lectura para el dashboard. Read-only.
type AnalyticsRepository interface {
	// GetSalesSummary suma las facturas emitidas en [startDate, endDate).
	GetSalesSummary(ctx context.Context, companyID string, startDate, endDate time.Time) (SalesSummary, error)
	// GetReceivables saldo pendiente y facturas vencidas (due_date < asOf) de la empresa.
	GetReceivables(ctx context.Context, companyID string, asOf time.Time) (ReceivablesSummary, error)
}
