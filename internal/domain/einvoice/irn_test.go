package einvoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/domain/einvoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestIRN_VectorExacto valida el hash SHA-256 para una cadena conocida:
//
//	"29ABCDE1234F1Z5" + "2025-26" + "INV" + "INV/2025-26/0001"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testGSTIN       = "29ABCDE1234F1Z5"
	testFY          = "2025-26"
	testDocNo       = "INV/2025-26/0001"
	testIRNExpected = "cba0d315d50b8f8e2c1f4116039da3ec3e8f4d666d9f3400c0f89413420d4608"
)

func TestIRN_VectorExacto(t *testing.T) {
	irn, err := einvoice.IRN(testGSTIN, testFY, einvoice.DocTypeInvoice, testDocNo)
	require.NoError(t, err)
	assert.Equal(t, testIRNExpected, irn)
	assert.Len(t, irn, 64)
}

func TestIRN_NormalizaEntradas(t *testing.T) {
	irn, err := einvoice.IRN(" 29abcde1234f1z5 ", testFY, "inv", " INV/2025-26/ 0001 ")
	require.NoError(t, err)
	assert.Equal(t, testIRNExpected, irn, "mayúsculas y espacios no deben cambiar el IRN")
}

func TestIRN_SensibleAlNumero(t *testing.T) {
	a, err := einvoice.IRN(testGSTIN, testFY, einvoice.DocTypeInvoice, "INV/2025-26/0001")
	require.NoError(t, err)
	b, err := einvoice.IRN(testGSTIN, testFY, einvoice.DocTypeInvoice, "INV/2025-26/0002")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIRN_CamposObligatorios(t *testing.T) {
	cases := []struct {
		name                   string
		gstin, fy, dtype, docNo string
	}{
		{"GSTIN corto", "29ABC", testFY, "INV", testDocNo},
		{"sin año fiscal", testGSTIN, "", "INV", testDocNo},
		{"sin tipo", testGSTIN, testFY, " ", testDocNo},
		{"sin número", testGSTIN, testFY, "INV", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := einvoice.IRN(tc.gstin, tc.fy, tc.dtype, tc.docNo)
			assert.Error(t, err)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Año fiscal (abril a marzo)
// ──────────────────────────────────────────────────────────────────────────────

func TestFinancialYear(t *testing.T) {
	cases := map[string]string{
		"2025-04-01": "2025-26",
		"2026-03-31": "2025-26",
		"2026-01-15": "2025-26",
		"1999-12-31": "1999-00",
		"2000-02-01": "1999-00",
	}
	for day, want := range cases {
		ts, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		assert.Equal(t, want, einvoice.FinancialYear(ts), day)
	}
}
