package gst

import "github.com/shopspring/decimal"

// DiscountMode indica cuál de los dos campos de descuento es el autoritativo en el cálculo.
type DiscountMode string

const (
	DiscountByPercent DiscountMode = "percent"
	DiscountByAmount  DiscountMode = "amount"
)

// LineInput datos crudos de una línea de documento.
type LineInput struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountMode    DiscountMode    // vacío = percent
	DiscountPercent decimal.Decimal // 0-100
	DiscountAmount  decimal.Decimal // ≥ 0
	GSTRate         decimal.Decimal // porcentaje (0/5/12/18/28)
	Interstate      bool
}

// LineResult valores derivados de la línea. Todos los montos quedan en paise (2 decimales).
type LineResult struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	GSTRate         decimal.Decimal
	Gross           decimal.Decimal // quantity * unitPrice
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxableAmount   decimal.Decimal // gross - discount
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	IGST            decimal.Decimal
	TotalAmount     decimal.Decimal // taxable + cgst + sgst + igst
}

// TaxAmount suma de los componentes de impuesto de la línea.
func (r LineResult) TaxAmount() decimal.Decimal {
	return r.CGST.Add(r.SGST).Add(r.IGST)
}

// CalculateLine convierte una línea cruda en base gravable, impuestos y total.
//
// Cantidad y precio negativos se llevan a 0, el porcentaje de descuento a [0,100] y el
// monto de descuento a [0, bruto]. Intraestatal: CGST = SGST = base*tasa/200.
// Interestatal: IGST = base*tasa/100. Es idempotente: mismas entradas, mismo resultado.
func CalculateLine(in LineInput) LineResult {
	qty := nonNegative(in.Quantity)
	price := nonNegative(in.UnitPrice)
	rate := nonNegative(in.GSTRate)
	gross := paise(qty.Mul(price))

	var pct, discount decimal.Decimal
	if in.DiscountMode == DiscountByAmount {
		discount = paise(clamp(in.DiscountAmount, decimal.Zero, gross))
		if gross.IsPositive() {
			pct = discount.Div(gross).Mul(hundred).Round(4)
		}
	} else {
		pct = clamp(in.DiscountPercent, decimal.Zero, hundred)
		discount = paise(gross.Mul(pct).Div(hundred))
	}

	taxable := gross.Sub(discount)
	res := LineResult{
		Quantity:        qty,
		UnitPrice:       price,
		GSTRate:         rate,
		Gross:           gross,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		TaxableAmount:   taxable,
		CGST:            decimal.Zero,
		SGST:            decimal.Zero,
		IGST:            decimal.Zero,
	}
	if in.Interstate {
		res.IGST = paise(taxable.Mul(rate).Div(hundred))
	} else {
		half := paise(taxable.Mul(rate).Div(twoHundred))
		res.CGST = half
		res.SGST = half
	}
	res.TotalAmount = taxable.Add(res.CGST).Add(res.SGST).Add(res.IGST)
	return res
}
