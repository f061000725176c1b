package gst

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const zeroInWords = "Zero Rupees Only"

// AmountInWords convierte un monto a palabras con numeración india (crore/lakh).
// Ej: 2124 → "Two Thousand One Hundred and Twenty Four Rupees Only";
// 1050.50 → "One Thousand and Fifty Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg())
	}
	amount = amount.Round(2)
	rupees := amount.Truncate(0).IntPart()
	paiseValue := amount.Sub(amount.Truncate(0)).Mul(hundred).IntPart()

	if rupees == 0 && paiseValue == 0 {
		return zeroInWords
	}

	var b strings.Builder
	if rupees > 0 {
		b.WriteString(indianWords(rupees))
		b.WriteString(" Rupees")
	}
	if paiseValue > 0 {
		if rupees > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(under100(paiseValue))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// AmountInWordsFloat igual que AmountInWords para valores crudos; NaN e infinitos
// devuelven "Zero Rupees Only".
func AmountInWordsFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return zeroInWords
	}
	return AmountInWords(decimal.NewFromFloat(f))
}

func indianWords(n int64) string {
	if n == 0 {
		return ""
	}
	var parts []string

	if n >= 10000000 {
		parts = append(parts, indianWords(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, under100(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, under100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100(n))
		} else {
			parts = append(parts, under100(n))
		}
	}
	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	s := tens[n/10]
	if n%10 != 0 {
		s += " " + ones[n%10]
	}
	return s
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
