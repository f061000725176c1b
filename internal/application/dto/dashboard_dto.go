package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Montos en rupias enteras (tarjetas de resumen).
type DashboardSummaryDTO struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD (inclusive)

	InvoiceCount    int             `json:"invoice_count"`
	InvoicedRevenue decimal.Decimal `json:"invoiced_revenue"` // Σ grand_total
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	TotalGST        decimal.Decimal `json:"total_gst"`
	TCSCollected    decimal.Decimal `json:"tcs_collected"`

	Receivables     decimal.Decimal `json:"receivables"`
	OpenInvoices    int             `json:"open_invoices"`
	OverdueInvoices int             `json:"overdue_invoices"`
	LowStockItems   int             `json:"low_stock_items"`
}
