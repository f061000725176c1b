// Package money formato de montos en rupias con agrupación india (lakh/crore).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol signo de la rupia.
const Symbol = "₹"

// FormatINR formatea con signo de rupia y agrupación india: 1234567.5 → "₹12,34,567.50".
func FormatINR(d decimal.Decimal, decimals int32) string {
	if d.IsNegative() {
		return "-" + Symbol + Group(d.Neg(), decimals)
	}
	return Symbol + Group(d, decimals)
}

// Group solo los dígitos agrupados: últimos tres, luego de a dos. 10000000 → "1,00,00,000".
func Group(d decimal.Decimal, decimals int32) string {
	if decimals < 0 {
		decimals = 0
	}
	s := d.StringFixed(decimals)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail + frac
}
