package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/solar-epc-api/pkg/money"
)

func TestGroup_IndianGrouping(t *testing.T) {
	cases := []struct {
		in       string
		decimals int32
		want     string
	}{
		{"0", 2, "0.00"},
		{"999", 0, "999"},
		{"1000", 0, "1,000"},
		{"12345", 2, "12,345.00"},
		{"123456", 0, "1,23,456"},
		{"1234567.5", 2, "12,34,567.50"},
		{"10000000", 0, "1,00,00,000"},
		{"987654321.129", 2, "98,76,54,321.13"},
		{"-250000", 0, "-2,50,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.Group(decimal.RequireFromString(tc.in), tc.decimals), tc.in)
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹7,020.00", money.FormatINR(decimal.NewFromInt(7020), 2))
	assert.Equal(t, "-₹1,50,000", money.FormatINR(decimal.NewFromInt(-150000), 0))
}
