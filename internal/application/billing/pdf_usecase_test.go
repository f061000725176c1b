package billing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

type fakeGenerator struct {
	calls int
	last  billing.PrintableDocument
}

func (g *fakeGenerator) Generate(_ context.Context, doc billing.PrintableDocument) ([]byte, error) {
	g.calls++
	g.last = doc
	return []byte("%PDF-" + doc.Number), nil
}

type fakeTally struct{}

func (fakeTally) ExportInvoice(_ context.Context, inv *entity.Invoice, _ *entity.Company, _ *entity.Customer) ([]byte, error) {
	return []byte("<ENVELOPE>" + inv.Number + "</ENVELOPE>"), nil
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m[key] = data
	return nil
}

func (m mapCache) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func TestInvoicePDF_CachedAndPrintable(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	cache := mapCache{}
	uc := billing.NewDocumentUseCase(f.store.Invoices(), f.store.Quotations(), f.store.Companies(), f.store.Customers(),
		gen, fakeTally{}, cache, time.Hour)

	data, filename, err := uc.InvoicePDF(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+inv.Number, string(data))
	assert.Equal(t, "invoice_"+strings.ReplaceAll(inv.Number, "/", "-")+".pdf", filename)

	// Segunda descarga sale de la caché
	_, _, err = uc.InvoicePDF(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Len(t, cache, 1)

	doc := gen.last
	assert.Equal(t, "TAX INVOICE", doc.Title)
	assert.Equal(t, "Seven Thousand and Twenty Rupees Only", doc.AmountInWords)
	require.Len(t, doc.TaxSummary, 2, "una fila por tasa: 12% y 18%")
	assert.True(t, doc.TaxSummary[0].TaxableAmount.Equal(d("1000")))
	assert.True(t, strings.HasPrefix(doc.UPIPayload, "upi://pay?"))
	assert.Contains(t, doc.UPIPayload, "am=7020.00")
}

func TestQuotationPDF_AndTally(t *testing.T) {
	f := newFixture(t)
	q := f.acceptedQuotation(t)
	gen := &fakeGenerator{}
	uc := billing.NewDocumentUseCase(f.store.Invoices(), f.store.Quotations(), f.store.Companies(), f.store.Customers(),
		gen, fakeTally{}, nil, 0)

	_, _, err := uc.QuotationPDF(f.ctx, companyID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "QUOTATION", gen.last.Title)
	assert.Empty(t, gen.last.UPIPayload)

	_, _, err = uc.QuotationPDF(f.ctx, "co-2", q.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{QuotationID: q.ID})
	require.NoError(t, err)
	xml, name, err := uc.InvoiceTally(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.Contains(t, string(xml), inv.Number)
	assert.True(t, strings.HasSuffix(name, ".xml"))

	_, _, err = uc.InvoiceTally(f.ctx, companyID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
