package gst

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DocumentTotals agregado de una cotización o factura.
type DocumentTotals struct {
	Subtotal      decimal.Decimal // Σ quantity*unitPrice
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TotalGST      decimal.Decimal
	TCSRate       decimal.Decimal
	TCSAmount     decimal.Decimal
	RoundOff      decimal.Decimal // puede ser negativo
	GrandTotal    decimal.Decimal // rupias enteras
}

// BeforeRounding base + GST + TCS antes del redondeo a la rupia.
func (t DocumentTotals) BeforeRounding() decimal.Decimal {
	return t.TaxableAmount.Add(t.TotalGST).Add(t.TCSAmount)
}

// Aggregate reduce las líneas ya calculadas a los totales del documento.
//
// El descuento se modela solo a nivel de línea; el documento no aplica un descuento
// adicional. grandTotal = redondeo mitad-arriba a la rupia de (base + GST + TCS) y
// roundOff es la diferencia exacta. tcsRate se limita a [0,10].
func Aggregate(lines []LineResult, tcsRate decimal.Decimal) DocumentTotals {
	t := DocumentTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TaxableAmount: decimal.Zero,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
		IGST:          decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Gross)
		t.TotalDiscount = t.TotalDiscount.Add(l.DiscountAmount)
		t.TaxableAmount = t.TaxableAmount.Add(l.TaxableAmount)
		t.CGST = t.CGST.Add(l.CGST)
		t.SGST = t.SGST.Add(l.SGST)
		t.IGST = t.IGST.Add(l.IGST)
	}
	t.TotalGST = t.CGST.Add(t.SGST).Add(t.IGST)
	t.TCSRate = clamp(tcsRate, decimal.Zero, maxTCSRate)
	t.TCSAmount = paise(t.TaxableAmount.Mul(t.TCSRate).Div(hundred))

	before := t.BeforeRounding()
	t.GrandTotal = before.Round(0)
	t.RoundOff = t.GrandTotal.Sub(before)
	return t
}

// RateSummary desglose de impuestos para una tasa GST.
type RateSummary struct {
	GSTRate       decimal.Decimal
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
}

// TaxSummary agrupa las líneas por tasa GST (orden ascendente de tasa).
func TaxSummary(lines []LineResult) []RateSummary {
	byRate := make(map[string]*RateSummary)
	for _, l := range lines {
		key := l.GSTRate.String()
		s, ok := byRate[key]
		if !ok {
			s = &RateSummary{
				GSTRate:       l.GSTRate,
				TaxableAmount: decimal.Zero,
				CGST:          decimal.Zero,
				SGST:          decimal.Zero,
				IGST:          decimal.Zero,
			}
			byRate[key] = s
		}
		s.TaxableAmount = s.TaxableAmount.Add(l.TaxableAmount)
		s.CGST = s.CGST.Add(l.CGST)
		s.SGST = s.SGST.Add(l.SGST)
		s.IGST = s.IGST.Add(l.IGST)
	}
	out := make([]RateSummary, 0, len(byRate))
	for _, s := range byRate {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GSTRate.LessThan(out[j].GSTRate) })
	return out
}
