package entity

import "time"

// Estados de una cotización.
const (
	QuotationDraft    = "Draft"
	QuotationSent     = "Sent"
	QuotationAccepted = "Accepted"
	QuotationRejected = "Rejected"
	QuotationExpired  = "Expired"
)

// Quotation cotización a un cliente. Los totales se calculan y persisten al guardar.
type Quotation struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Number        string // QT/2025-26/0001
	FinancialYear string
	Date          time.Time
	ValidUntil    time.Time
	PlaceOfSupply string
	Interstate    bool
	Status        string
	Notes         string
	DocumentAmounts
	Lines     []DocumentLine
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidQuotationStatus indica si s es un estado conocido.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationDraft, QuotationSent, QuotationAccepted, QuotationRejected, QuotationExpired:
		return true
	}
	return false
}
