package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cobro de una factura. Overdue se deriva (no se persiste).
const (
	PaymentUnpaid  = "Unpaid"
	PaymentPartial = "Partial"
	PaymentPaid    = "Paid"
	PaymentOverdue = "Overdue"
)

// Invoice factura de venta con impuestos GST.
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	QuotationID   string // opcional
	ProjectID     string // opcional
	Number        string // INV/2025-26/0001
	FinancialYear string
	Date          time.Time
	DueDate       time.Time
	PlaceOfSupply string
	Interstate    bool
	IRN           string // hash SHA-256 de facturación electrónica
	DocumentAmounts
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
	PaymentStatus string
	Notes         string
	Lines         []DocumentLine
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyPayment suma un cobro y recalcula saldo y estado.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) {
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.Balance = inv.GrandTotal.Sub(inv.AmountPaid)
	inv.PaymentStatus = PaymentStatusFor(inv.GrandTotal, inv.AmountPaid)
}

// DisplayStatus estado para reportes: Overdue si hay saldo y venció el plazo.
func (inv *Invoice) DisplayStatus(now time.Time) string {
	if inv.PaymentStatus != PaymentPaid && inv.Balance.IsPositive() && now.After(inv.DueDate) {
		return PaymentOverdue
	}
	return inv.PaymentStatus
}

// PaymentStatusFor Unpaid, Partial o Paid según lo cobrado.
func PaymentStatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}
