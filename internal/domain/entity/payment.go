package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago.
const (
	ModeCash   = "Cash"
	ModeUPI    = "UPI"
	ModeNEFT   = "NEFT"
	ModeRTGS   = "RTGS"
	ModeCheque = "Cheque"
)

// Payment cobro recibido contra una factura y/o una etapa de proyecto.
type Payment struct {
	ID        string
	CompanyID string
	InvoiceID string // opcional
	ProjectID string // opcional
	Stage     string // etapa del plan, opcional
	Amount    decimal.Decimal
	Mode      string
	Reference string // UTR, número de cheque...
	Date      time.Time
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// ValidPaymentMode indica si m es un medio de pago conocido.
func ValidPaymentMode(m string) bool {
	switch m {
	case ModeCash, ModeUPI, ModeNEFT, ModeRTGS, ModeCheque:
		return true
	}
	return false
}
