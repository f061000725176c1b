package tally_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/tally"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Dos líneas a 12% y 18%, intraestatal, con TCS y redondeo negativo.
func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		Number:        "INV/2025-26/0007",
		Date:          time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "Karnataka",
		IRN:           "abc",
		DocumentAmounts: entity.DocumentAmounts{
			TaxableAmount: d("10100.00"),
			CGST:          d("609.00"),
			SGST:          d("609.00"),
			IGST:          decimal.Zero,
			TCSRate:       d("0.1"),
			TCSAmount:     d("10.10"),
			RoundOff:      d("-0.10"),
			GrandTotal:    d("11328"),
		},
		Lines: []entity.DocumentLine{
			{GSTRate: d("18"), TaxableAmount: d("100.00")},
			{GSTRate: d("12"), TaxableAmount: d("10000.00")},
		},
	}
}

// ─── VoucherEntries ───────────────────────────────────────────────────────────

func TestVoucherEntries_SumaCero(t *testing.T) {
	entries := tally.VoucherEntries(sampleInvoice(), "Ravi Kumar")

	assert.True(t, tally.Sum(entries).IsZero(), "el voucher debe cuadrar: %s", tally.Sum(entries))
	require.Len(t, entries, 7)
	assert.Equal(t, "Ravi Kumar", entries[0].Name)
	assert.True(t, entries[0].Amount.Equal(d("-11328")))
	assert.Equal(t, "Sales Local @ 12%", entries[1].Name)
	assert.Equal(t, "Sales Local @ 18%", entries[2].Name)
	assert.Equal(t, tally.LedgerRoundOff, entries[6].Name)
}

func TestVoucherEntries_Interestatal(t *testing.T) {
	inv := sampleInvoice()
	inv.Interstate = true
	inv.CGST, inv.SGST, inv.IGST = decimal.Zero, decimal.Zero, d("1218.00")

	entries := tally.VoucherEntries(inv, "Ravi Kumar")
	assert.True(t, tally.Sum(entries).IsZero())
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, tally.LedgerIGST)
	assert.NotContains(t, names, tally.LedgerCGST)
	assert.Contains(t, names, "Sales Interstate @ 12%")
}

// ─── ExportInvoice ────────────────────────────────────────────────────────────

func TestExportInvoice_XML(t *testing.T) {
	company := &entity.Company{Name: "Suryaprakash Solar", GSTIN: "29ABCDE1234F1Z5"}
	customer := &entity.Customer{Name: "Ravi Kumar", GSTIN: "29AAAPL1234C1Z1"}

	out, err := tally.NewExporter().ExportInvoice(context.Background(), sampleInvoice(), company, customer)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	v := doc.FindElement("//VOUCHER")
	require.NotNil(t, v)
	assert.Equal(t, "Sales", v.SelectAttrValue("VCHTYPE", ""))
	assert.Equal(t, "20250701", v.FindElement("DATE").Text())
	assert.Equal(t, "INV/2025-26/0007", v.FindElement("VOUCHERNUMBER").Text())
	assert.Equal(t, "29AAAPL1234C1Z1", v.FindElement("PARTYGSTIN").Text())
	assert.Equal(t, "Suryaprakash Solar", doc.FindElement("//SVCURRENTCOMPANY").Text())

	total := decimal.Zero
	for _, amt := range v.FindElements("ALLLEDGERENTRIES.LIST/AMOUNT") {
		total = total.Add(d(amt.Text()))
	}
	assert.True(t, total.IsZero())
}

func TestExportInvoice_SinCliente(t *testing.T) {
	_, err := tally.NewExporter().ExportInvoice(context.Background(), sampleInvoice(), &entity.Company{}, nil)
	assert.Error(t, err)
}
