package gst

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
	maxTCSRate = decimal.NewFromInt(10)
)

// Tasas GST permitidas (porcentaje).
var validRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// ValidRate indica si la tasa pertenece al conjunto 0/5/12/18/28.
func ValidRate(rate decimal.Decimal) bool {
	for _, r := range validRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// Sanitize convierte un float crudo a decimal; NaN e infinitos valen 0.
func Sanitize(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseAmount interpreta texto numérico (admite separadores de miles con coma y
// prefijo ₹); cualquier cosa no interpretable vale 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// nonNegative aplica max(0, d).
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// clamp limita d al intervalo [lo, hi].
func clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// paise redondea a 2 decimales, mitad hacia arriba (montos no negativos).
func paise(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
