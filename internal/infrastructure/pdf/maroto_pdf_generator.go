// Package pdf genera la representación impresa de cotizaciones y facturas GST.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + GSTIN      │  TAX INVOICE / QUOTATION     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  BILL TO: Cliente + GSTIN + Place of Supply                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | HSN | Cant | Tarifa | ... | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN GST por tasa          │  TOTALES + Round Off        │
//	│  Monto en palabras                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: IRN + QR UPI + datos bancarios                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/pkg/money"
)

var _ billing.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 230, Green: 120, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateFormat = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
// Las fuentes base del PDF no incluyen el glifo ₹, por eso los montos se imprimen
// con "Rs." y agrupación india.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(_ context.Context, doc billing.PrintableDocument) ([]byte, error) {
	if doc.Company == nil || doc.Customer == nil {
		return nil, fmt.Errorf("pdf: empresa y cliente son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title+" "+doc.Number, true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(doc.Company))
	m.AddRows(billToRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.Interstate))
	m.AddRows(lineRows(doc.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(taxSummaryHeaderRow())
	m.AddRows(taxSummaryRows(doc.TaxSummary)...)
	m.AddRows(line.NewRow(2))
	m.AddRows(totalsRows(doc.Amounts, doc.Interstate)...)
	m.AddRows(wordsRow(doc.AmountInWords))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + GSTIN (izq) y título, número y fechas (der).
func headerRow(doc billing.PrintableDocument) core.Row {
	c := doc.Company
	right := []core.Component{
		text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(doc.Number, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7}),
		text.New("Date: "+doc.Date.Format(dateFormat), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}),
	}
	if !doc.SecondaryDate.IsZero() {
		right = append(right, text.New(doc.DateLabel+": "+doc.SecondaryDate.Format(dateFormat), props.Text{
			Size: 8, Align: align.Right, Top: 17, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("GSTIN: %s   |   State: %s (%s)", c.GSTIN, gst.StateName(c.StateCode), c.StateCode),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(right...),
	)
}

func sellerRow(c *entity.Company) core.Row {
	address := joinNonEmpty(", ", c.Address, c.City, c.Pincode)
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
				nonEmpty(address, "-"), nonEmpty(c.Phone, "-"), nonEmpty(c.Email, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func billToRow(doc billing.PrintableDocument) core.Row {
	cu := doc.Customer
	supply := "Intra-state (CGST + SGST)"
	if doc.Interstate {
		supply = "Inter-state (IGST)"
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(cu.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("GSTIN: %s   |   %s", nonEmpty(cu.GSTIN, "Unregistered"), nonEmpty(cu.Address, "-")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PLACE OF SUPPLY", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(doc.PlaceOfSupply, "-"), props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New(supply, props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas con fondo de color.
func tableHeaderRow(interstate bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	taxLabel := "CGST+SGST"
	if interstate {
		taxLabel = "IGST"
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Description", 3, align.Left),
		h("HSN/SAC", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 1, align.Right),
		h("Disc.", 1, align.Right),
		h("Taxable", 1, align.Right),
		h("GST%", 1, align.Center),
		h(taxLabel, 1, align.Right),
		h("Total", 1, align.Right),
	)
}

func lineRows(lines []entity.DocumentLine) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		tax := l.CGST.Add(l.SGST).Add(l.IGST)
		out = append(out, row.New(7).Add(
			cell(fmt.Sprintf("%d", l.Position), 1, align.Center),
			cell(l.Description, 3, align.Left),
			cell(l.HSNCode, 1, align.Center),
			cell(l.Quantity.String()+" "+l.Unit, 1, align.Right),
			cell(money.Group(l.UnitPrice, 2), 1, align.Right),
			cell(money.Group(l.DiscountAmount, 2), 1, align.Right),
			cell(money.Group(l.TaxableAmount, 2), 1, align.Right),
			cell(l.GSTRate.String()+"%", 1, align.Center),
			cell(money.Group(tax, 2), 1, align.Right),
			cell(money.Group(l.TotalAmount, 2), 1, align.Right),
		))
	}
	return out
}

func taxSummaryHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		}))
	}
	return row.New(6).Add(h("GST Rate", 2), h("Taxable Value", 2), h("CGST", 2), h("SGST", 2), h("IGST", 2), col.New(2))
}

func taxSummaryRows(summary []gst.RateSummary) []core.Row {
	cell := func(d decimal.Decimal, size int) core.Col {
		return col.New(size).Add(text.New(money.Group(d, 2), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(summary))
	for _, s := range summary {
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(s.GSTRate.String()+"%", props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			cell(s.TaxableAmount, 2),
			cell(s.CGST, 2),
			cell(s.SGST, 2),
			cell(s.IGST, 2),
			col.New(2),
		))
	}
	return out
}

// totalsRows: bloque de totales alineado a la derecha. TCS solo si aplica.
func totalsRows(a entity.DocumentAmounts, interstate bool) []core.Row {
	type entry struct {
		label string
		value decimal.Decimal
	}
	entries := []entry{
		{"Subtotal", a.Subtotal},
		{"Discount", a.TotalDiscount.Neg()},
		{"Taxable Amount", a.TaxableAmount},
	}
	if interstate {
		entries = append(entries, entry{"IGST", a.IGST})
	} else {
		entries = append(entries, entry{"CGST", a.CGST}, entry{"SGST", a.SGST})
	}
	if a.TCSAmount.IsPositive() {
		entries = append(entries, entry{fmt.Sprintf("TCS @ %s%%", a.TCSRate.String()), a.TCSAmount})
	}
	entries = append(entries, entry{"Round Off", a.RoundOff})

	out := make([]core.Row, 0, len(entries)+1)
	for _, e := range entries {
		out = append(out, row.New(5).Add(
			col.New(7),
			col.New(3).Add(text.New(e.label+":", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})),
			col.New(2).Add(text.New(money.Group(e.value, 2), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	out = append(out, row.New(8).Add(
		col.New(7),
		col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New("Rs. "+money.Group(a.GrandTotal, 2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	))
	return out
}

func wordsRow(words string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Amount in words: "+words, props.Text{Style: fontstyle.Italic, Size: 8, Top: 2}),
	))
}

// footerRows: IRN, QR de cobro UPI, datos bancarios y notas.
func footerRows(doc billing.PrintableDocument) []core.Row {
	var rows []core.Row
	if doc.IRN != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("IRN: "+doc.IRN, props.Text{Size: 6.5, Color: colorGray, Top: 1}),
		)))
	}

	c := doc.Company
	bank := []core.Component{
		text.New("BANK DETAILS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(fmt.Sprintf("%s   |   A/c: %s   |   IFSC: %s",
			nonEmpty(c.BankName, "-"), nonEmpty(c.BankAccount, "-"), nonEmpty(c.IFSC, "-")),
			props.Text{Size: 8, Top: 8, Color: colorGray}),
	}
	if doc.Notes != "" {
		bank = append(bank, text.New(doc.Notes, props.Text{Size: 8, Top: 16}))
	}

	if doc.UPIPayload != "" {
		rows = append(rows, row.New(40).Add(
			col.New(8).Add(bank...),
			col.New(4).Add(
				code.NewQr(doc.UPIPayload, props.Rect{Percent: 80, Center: true}),
			),
		))
		rows = append(rows, row.New(5).Add(
			col.New(8),
			col.New(4).Add(text.New("Scan to pay via UPI ("+c.UPIVPA+")", props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			})),
		))
	} else {
		rows = append(rows, row.New(24).Add(col.New(12).Add(bank...)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("This is a computer generated document. For "+c.Name, props.Text{
			Size: 6.5, Color: colorGray, Top: 3, Align: align.Right,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
