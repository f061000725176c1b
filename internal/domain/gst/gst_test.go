package gst_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Resolución intra / interestatal
// ──────────────────────────────────────────────────────────────────────────────

func TestIsInterstate(t *testing.T) {
	cases := []struct {
		name   string
		gstin  string
		supply string
		want   bool
	}{
		{"mismo estado", "29ABCDE1234F1Z5", "Karnataka", false},
		{"estados distintos", "29ABCDE1234F1Z5", "Maharashtra", true},
		{"sin GSTIN de empresa", "", "Karnataka", false},
		{"lugar de suministro vacío", "29ABCDE1234F1Z5", "", false},
		{"estado desconocido", "29ABCDE1234F1Z5", "Atlantis", false},
		{"mayúsculas y espacios", "27AAACR5055K1Z5", "  tamil   NADU ", true},
		{"código numérico directo", "27AAACR5055K1Z5", "27", false},
		{"GSTIN sin dígitos iniciales", "ABCDE1234F1Z5", "Maharashtra", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gst.IsInterstate(tc.gstin, tc.supply))
		})
	}
}

func TestStateLookup(t *testing.T) {
	assert.Equal(t, "29", gst.StateCodeFromName("Karnataka"))
	assert.Equal(t, "27", gst.StateCodeFromName("maharashtra"))
	assert.Equal(t, "", gst.StateCodeFromName("99"))
	assert.Equal(t, "29", gst.StateCodeFromGSTIN("29ABCDE1234F1Z5"))
	assert.Equal(t, "", gst.StateCodeFromGSTIN("2"))
	assert.Equal(t, "Tamil Nadu", gst.StateName("33"))
	assert.Equal(t, "Jammu and Kashmir", gst.StateName("01"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo por línea
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateLine_EscenarioIntraestatal(t *testing.T) {
	res := gst.CalculateLine(gst.LineInput{
		Quantity:        d("10"),
		UnitPrice:       d("100"),
		DiscountPercent: d("10"),
		GSTRate:         d("18"),
	})

	assert.True(t, res.Gross.Equal(d("1000")), "gross=%s", res.Gross)
	assert.True(t, res.DiscountAmount.Equal(d("100")))
	assert.True(t, res.TaxableAmount.Equal(d("900")))
	assert.True(t, res.CGST.Equal(d("81")))
	assert.True(t, res.SGST.Equal(d("81")))
	assert.True(t, res.IGST.IsZero())
	assert.True(t, res.TotalAmount.Equal(d("1062")))
}

func TestCalculateLine_Interestatal(t *testing.T) {
	res := gst.CalculateLine(gst.LineInput{
		Quantity:        d("10"),
		UnitPrice:       d("100"),
		DiscountPercent: d("10"),
		GSTRate:         d("18"),
		Interstate:      true,
	})
	assert.True(t, res.IGST.Equal(d("162")))
	assert.True(t, res.CGST.IsZero())
	assert.True(t, res.SGST.IsZero())
	assert.True(t, res.TotalAmount.Equal(d("1062")))
}

func TestCalculateLine_DescuentoPorMonto(t *testing.T) {
	res := gst.CalculateLine(gst.LineInput{
		Quantity:       d("4"),
		UnitPrice:      d("250"),
		DiscountMode:   gst.DiscountByAmount,
		DiscountAmount: d("50"),
		GSTRate:        d("12"),
	})
	assert.True(t, res.DiscountPercent.Equal(d("5")), "pct=%s", res.DiscountPercent)
	assert.True(t, res.TaxableAmount.Equal(d("950")))
	assert.True(t, res.CGST.Equal(d("57")))

	// Un descuento mayor que el bruto se limita al bruto.
	res = gst.CalculateLine(gst.LineInput{
		Quantity:       d("1"),
		UnitPrice:      d("100"),
		DiscountMode:   gst.DiscountByAmount,
		DiscountAmount: d("500"),
		GSTRate:        d("18"),
	})
	assert.True(t, res.TaxableAmount.IsZero())
	assert.True(t, res.TotalAmount.IsZero())
}

func TestCalculateLine_EntradasNegativasSeLimitanACero(t *testing.T) {
	res := gst.CalculateLine(gst.LineInput{
		Quantity:        d("-3"),
		UnitPrice:       d("100"),
		DiscountPercent: d("150"),
		GSTRate:         d("-18"),
	})
	assert.True(t, res.Quantity.IsZero())
	assert.True(t, res.GSTRate.IsZero())
	assert.True(t, res.TotalAmount.IsZero())

	res = gst.CalculateLine(gst.LineInput{
		Quantity:        d("2"),
		UnitPrice:       d("100"),
		DiscountPercent: d("150"),
		GSTRate:         d("5"),
	})
	assert.True(t, res.DiscountPercent.Equal(d("100")))
	assert.True(t, res.TaxableAmount.IsZero())
}

func TestCalculateLine_Idempotente(t *testing.T) {
	in := gst.LineInput{
		Quantity:        d("3.5"),
		UnitPrice:       d("333.33"),
		DiscountPercent: d("7.5"),
		GSTRate:         d("28"),
	}
	a := gst.CalculateLine(in)
	b := gst.CalculateLine(in)
	assert.Equal(t, a, b)
}

// Propiedad: total == base + cgst + sgst + igst exactamente, para una grilla de entradas.
func TestCalculateLine_TotalEsSumaExacta(t *testing.T) {
	quantities := []string{"0", "1", "2.5", "7", "13.333"}
	prices := []string{"0", "0.99", "99.99", "1234.56", "45999"}
	discounts := []string{"0", "3.3", "12.5", "100"}
	rates := []string{"0", "5", "12", "18", "28"}

	for _, q := range quantities {
		for _, p := range prices {
			for _, disc := range discounts {
				for _, r := range rates {
					for _, inter := range []bool{false, true} {
						res := gst.CalculateLine(gst.LineInput{
							Quantity: d(q), UnitPrice: d(p), DiscountPercent: d(disc),
							GSTRate: d(r), Interstate: inter,
						})
						sum := res.TaxableAmount.Add(res.CGST).Add(res.SGST).Add(res.IGST)
						require.True(t, res.TotalAmount.Equal(sum),
							"q=%s p=%s disc=%s r=%s inter=%v", q, p, disc, r, inter)
						require.True(t, res.TaxableAmount.Equal(res.Gross.Sub(res.DiscountAmount)))
						if inter {
							require.True(t, res.CGST.IsZero() && res.SGST.IsZero())
						} else {
							require.True(t, res.IGST.IsZero())
							require.True(t, res.CGST.Equal(res.SGST))
						}
					}
				}
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregación del documento
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_DosLineas(t *testing.T) {
	line := gst.CalculateLine(gst.LineInput{
		Quantity: d("10"), UnitPrice: d("100"), DiscountPercent: d("10"), GSTRate: d("18"),
	})
	totals := gst.Aggregate([]gst.LineResult{line, line}, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(d("2000")))
	assert.True(t, totals.TotalDiscount.Equal(d("200")))
	assert.True(t, totals.TaxableAmount.Equal(d("1800")))
	assert.True(t, totals.TotalGST.Equal(d("324")))
	assert.True(t, totals.GrandTotal.Equal(d("2124")))
	assert.True(t, totals.RoundOff.IsZero())
}

func TestAggregate_RedondeoYTCS(t *testing.T) {
	line := gst.CalculateLine(gst.LineInput{
		Quantity: d("1"), UnitPrice: d("999.99"), GSTRate: d("18"),
	})
	// base 999.99; cgst = sgst = 90.00 (89.9991 → 90.00)
	totals := gst.Aggregate([]gst.LineResult{line}, d("1"))

	assert.True(t, totals.TCSAmount.Equal(d("10")), "tcs=%s", totals.TCSAmount)
	before := totals.TaxableAmount.Add(totals.TotalGST).Add(totals.TCSAmount)
	assert.True(t, totals.GrandTotal.Equal(before.Round(0)))
	assert.True(t, totals.RoundOff.Equal(totals.GrandTotal.Sub(before)))
	assert.True(t, totals.GrandTotal.Equal(d("1190")), "grand=%s", totals.GrandTotal)
	assert.True(t, totals.RoundOff.Equal(d("0.01")))
}

func TestAggregate_TCSSeLimita(t *testing.T) {
	line := gst.CalculateLine(gst.LineInput{Quantity: d("1"), UnitPrice: d("100"), GSTRate: d("0")})
	totals := gst.Aggregate([]gst.LineResult{line}, d("50"))
	assert.True(t, totals.TCSRate.Equal(d("10")))
	assert.True(t, totals.TCSAmount.Equal(d("10")))
}

// Propiedad: Σ totales de línea + TCS + roundOff == grandTotal sin residuo.
func TestAggregate_LineasMasRedondeoCuadran(t *testing.T) {
	inputs := []gst.LineInput{
		{Quantity: d("3"), UnitPrice: d("333.33"), DiscountPercent: d("2.5"), GSTRate: d("18")},
		{Quantity: d("1.5"), UnitPrice: d("1499.49"), GSTRate: d("12")},
		{Quantity: d("7"), UnitPrice: d("12.49"), DiscountPercent: d("33.3"), GSTRate: d("28")},
		{Quantity: d("2"), UnitPrice: d("47999"), GSTRate: d("5")},
	}
	for _, inter := range []bool{false, true} {
		for _, tcs := range []string{"0", "0.1", "1"} {
			lines := make([]gst.LineResult, 0, len(inputs))
			sumLines := decimal.Zero
			for _, in := range inputs {
				in.Interstate = inter
				l := gst.CalculateLine(in)
				lines = append(lines, l)
				sumLines = sumLines.Add(l.TotalAmount)
			}
			totals := gst.Aggregate(lines, d(tcs))
			got := sumLines.Add(totals.TCSAmount).Add(totals.RoundOff)
			assert.True(t, got.Equal(totals.GrandTotal), "inter=%v tcs=%s got=%s grand=%s", inter, tcs, got, totals.GrandTotal)
			assert.True(t, totals.GrandTotal.Equal(totals.GrandTotal.Truncate(0)), "grandTotal debe ser entero")
			assert.True(t, totals.RoundOff.Abs().LessThanOrEqual(d("0.5")))
		}
	}
}

func TestAggregate_SinLineas(t *testing.T) {
	totals := gst.Aggregate(nil, decimal.Zero)
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.RoundOff.IsZero())
}

func TestTaxSummary(t *testing.T) {
	a := gst.CalculateLine(gst.LineInput{Quantity: d("1"), UnitPrice: d("1000"), GSTRate: d("18")})
	b := gst.CalculateLine(gst.LineInput{Quantity: d("2"), UnitPrice: d("500"), GSTRate: d("18")})
	c := gst.CalculateLine(gst.LineInput{Quantity: d("1"), UnitPrice: d("200"), GSTRate: d("5")})

	summary := gst.TaxSummary([]gst.LineResult{a, b, c})
	require.Len(t, summary, 2)
	assert.True(t, summary[0].GSTRate.Equal(d("5")))
	assert.True(t, summary[1].TaxableAmount.Equal(d("2000")))
	assert.True(t, summary[1].CGST.Equal(d("180")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Monto en letras y saneamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestAmountInWords(t *testing.T) {
	cases := map[string]string{
		"0":          "Zero Rupees Only",
		"7":          "Seven Rupees Only",
		"2124":       "Two Thousand One Hundred and Twenty Four Rupees Only",
		"1050.50":    "One Thousand and Fifty Rupees and Fifty Paise Only",
		"100000":     "One Lakh Rupees Only",
		"913183":     "Nine Lakh Thirteen Thousand One Hundred and Eighty Three Rupees Only",
		"12500000":   "One Crore Twenty Five Lakh Rupees Only",
		"0.75":       "Seventy Five Paise Only",
		"1500000000": "One Hundred and Fifty Crore Rupees Only",
	}
	for in, want := range cases {
		assert.Equal(t, want, gst.AmountInWords(d(in)), in)
	}
}

func TestAmountInWordsFloat_NoFinito(t *testing.T) {
	assert.Equal(t, "Zero Rupees Only", gst.AmountInWordsFloat(math.NaN()))
	assert.Equal(t, "Zero Rupees Only", gst.AmountInWordsFloat(math.Inf(1)))
	assert.Equal(t, "Ten Rupees Only", gst.AmountInWordsFloat(10))
}

func TestSanitizeYParseAmount(t *testing.T) {
	assert.True(t, gst.Sanitize(math.NaN()).IsZero())
	assert.True(t, gst.Sanitize(math.Inf(-1)).IsZero())
	assert.True(t, gst.Sanitize(12.5).Equal(d("12.5")))
	assert.True(t, gst.ParseAmount("₹ 1,23,456.50").Equal(d("123456.5")))
	assert.True(t, gst.ParseAmount("12a").IsZero())
	assert.True(t, gst.ParseAmount("").IsZero())
}

func TestValidRate(t *testing.T) {
	for _, r := range []string{"0", "5", "12", "18", "28"} {
		assert.True(t, gst.ValidRate(d(r)), r)
	}
	assert.False(t, gst.ValidRate(d("19")))
	assert.False(t, gst.ValidRate(d("-5")))
}
