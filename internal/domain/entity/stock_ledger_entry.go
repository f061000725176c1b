package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLedgerEntry entrada inmutable del libro mayor de inventario.
// Quantity lleva el signo del movimiento; BalanceQuantity es el saldo del artículo
// después de esta entrada.
type StockLedgerEntry struct {
	ID              string
	CompanyID       string
	ItemID          string
	Seq             int64 // orden de inserción por empresa
	TransactionType string
	Quantity        decimal.Decimal
	Unit            string
	Rate            *decimal.Decimal
	Amount          *decimal.Decimal // rate * |quantity|
	BalanceQuantity decimal.Decimal
	TransactionDate time.Time
	ReferenceNumber string
	ProjectID       string // vacío si no aplica
	Remarks         string
	CreatedBy       string
	CreatedAt       time.Time
}
