package entity

import "github.com/shopspring/decimal"

// DocumentLine línea de una cotización o factura con sus valores derivados.
type DocumentLine struct {
	ID              string
	DocumentID      string
	Position        int
	ItemID          string // vacío para líneas de texto libre (servicios)
	Description     string
	HSNCode         string
	Unit            string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	GSTRate         decimal.Decimal
	TaxableAmount   decimal.Decimal
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	IGST            decimal.Decimal
	TotalAmount     decimal.Decimal
}

// DocumentAmounts totales persistidos de un documento.
type DocumentAmounts struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TotalGST      decimal.Decimal
	TCSRate       decimal.Decimal
	TCSAmount     decimal.Decimal
	RoundOff      decimal.Decimal
	GrandTotal    decimal.Decimal
}
