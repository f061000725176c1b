// Package tally exporta facturas de venta como vouchers XML de importación de Tally.
//
// Convención de Tally: los débitos van con monto negativo e ISDEEMEDPOSITIVE=Yes;
// los créditos con monto positivo e ISDEEMEDPOSITIVE=No. La suma de todas las
// entradas del voucher es cero.
package tally

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

var _ billing.TallyExporter = (*Exporter)(nil)

// Nombres de ledgers por defecto en la contabilidad de Tally.
const (
	LedgerCGST     = "Output CGST"
	LedgerSGST     = "Output SGST"
	LedgerIGST     = "Output IGST"
	LedgerTCS      = "TCS Payable"
	LedgerRoundOff = "Round Off"
)

// Exporter genera el XML del voucher de venta.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// LedgerEntry una línea ALLLEDGERENTRIES.LIST del voucher.
type LedgerEntry struct {
	Name   string
	Amount decimal.Decimal // negativo = débito
}

// ExportInvoice construye el ENVELOPE de importación con un VOUCHER de tipo Sales.
func (e *Exporter) ExportInvoice(_ context.Context, inv *entity.Invoice, company *entity.Company, customer *entity.Customer) ([]byte, error) {
	if inv == nil || company == nil || customer == nil {
		return nil, fmt.Errorf("tally: factura, empresa y cliente son obligatorios")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("ENVELOPE")
	header := envelope.CreateElement("HEADER")
	header.CreateElement("TALLYREQUEST").SetText("Import Data")

	importData := envelope.CreateElement("BODY").CreateElement("IMPORTDATA")
	desc := importData.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Vouchers")
	desc.CreateElement("STATICVARIABLES").CreateElement("SVCURRENTCOMPANY").SetText(company.Name)

	msg := importData.CreateElement("REQUESTDATA").CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")

	v := msg.CreateElement("VOUCHER")
	v.CreateAttr("VCHTYPE", "Sales")
	v.CreateAttr("ACTION", "Create")
	v.CreateElement("DATE").SetText(inv.Date.Format("20060102"))
	v.CreateElement("VOUCHERTYPENAME").SetText("Sales")
	v.CreateElement("VOUCHERNUMBER").SetText(inv.Number)
	v.CreateElement("REFERENCE").SetText(inv.Number)
	v.CreateElement("PARTYLEDGERNAME").SetText(customer.Name)
	v.CreateElement("PARTYNAME").SetText(customer.Name)
	if customer.GSTIN != "" {
		v.CreateElement("PARTYGSTIN").SetText(customer.GSTIN)
	}
	v.CreateElement("PLACEOFSUPPLY").SetText(inv.PlaceOfSupply)
	v.CreateElement("CMPGSTIN").SetText(company.GSTIN)
	if inv.IRN != "" {
		v.CreateElement("IRN").SetText(inv.IRN)
	}
	if inv.Notes != "" {
		v.CreateElement("NARRATION").SetText(inv.Notes)
	}

	for _, le := range VoucherEntries(inv, customer.Name) {
		addLedger(v, le)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("tally: serializar XML: %w", err)
	}
	return out.Bytes(), nil
}

func addLedger(v *etree.Element, le LedgerEntry) {
	l := v.CreateElement("ALLLEDGERENTRIES.LIST")
	l.CreateElement("LEDGERNAME").SetText(le.Name)
	deemed := "No"
	if le.Amount.IsNegative() {
		deemed = "Yes"
	}
	l.CreateElement("ISDEEMEDPOSITIVE").SetText(deemed)
	l.CreateElement("AMOUNT").SetText(le.Amount.StringFixed(2))
}

// VoucherEntries arma las entradas del voucher: débito al cliente por el total,
// crédito a ventas por tasa GST, impuestos, TCS y redondeo. La suma es cero porque
// grandTotal = base + GST + TCS + roundOff.
func VoucherEntries(inv *entity.Invoice, partyLedger string) []LedgerEntry {
	entries := []LedgerEntry{{Name: partyLedger, Amount: inv.GrandTotal.Neg()}}

	byRate := make(map[string]decimal.Decimal)
	rates := make([]decimal.Decimal, 0)
	for _, l := range inv.Lines {
		key := l.GSTRate.String()
		if _, ok := byRate[key]; !ok {
			byRate[key] = decimal.Zero
			rates = append(rates, l.GSTRate)
		}
		byRate[key] = byRate[key].Add(l.TaxableAmount)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })

	// Facturas sin líneas cargadas: una sola entrada de ventas por la base total.
	if len(rates) == 0 {
		entries = append(entries, LedgerEntry{Name: "Sales", Amount: inv.TaxableAmount})
	}
	for _, r := range rates {
		entries = append(entries, LedgerEntry{
			Name:   salesLedger(r, inv.Interstate),
			Amount: byRate[r.String()],
		})
	}

	if inv.Interstate {
		entries = appendNonZero(entries, LedgerIGST, inv.IGST)
	} else {
		entries = appendNonZero(entries, LedgerCGST, inv.CGST)
		entries = appendNonZero(entries, LedgerSGST, inv.SGST)
	}
	entries = appendNonZero(entries, LedgerTCS, inv.TCSAmount)
	entries = appendNonZero(entries, LedgerRoundOff, inv.RoundOff)
	return entries
}

// Sum total con signo de las entradas (debe ser cero).
func Sum(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func salesLedger(rate decimal.Decimal, interstate bool) string {
	if interstate {
		return fmt.Sprintf("Sales Interstate @ %s%%", rate.String())
	}
	return fmt.Sprintf("Sales Local @ %s%%", rate.String())
}

func appendNonZero(entries []LedgerEntry, name string, amount decimal.Decimal) []LedgerEntry {
	if amount.IsZero() {
		return entries
	}
	return append(entries, LedgerEntry{Name: name, Amount: amount})
}
