package billing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/einvoice"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/schedule"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID   = "co-1"
	userID      = "us-1"
	customerKA  = "cu-ka"
	customerMH  = "cu-mh"
	panelID     = "it-panel"
	installID   = "it-install"
	otherCoItem = "it-other"
)

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	quotations *billing.QuotationUseCase
	invoices   *billing.InvoiceUseCase
	payments   *billing.PaymentUseCase
	today      string
	fy         string
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.Companies().Create(ctx, &entity.Company{
		ID: companyID, Name: "Surya Urja EPC", GSTIN: "29ABCDE1234F1Z5", StateCode: "29", UPIVPA: "surya@okbank",
	}))
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{
		ID: "co-2", Name: "Otra", GSTIN: "27ABCDE1234F1Z5", StateCode: "27",
	}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: customerKA, CompanyID: companyID, Name: "Ravi Kumar", State: "Karnataka"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: customerMH, CompanyID: companyID, Name: "Patil Farms", State: "Maharashtra"}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{
		ID: panelID, CompanyID: companyID, SKU: "PNL-540", Name: "Mono PERC 540W", HSNCode: "8541", Unit: "Nos",
		GSTRate: d("12"), SalePrice: d("100"), PurchasePrice: d("80"), CurrentStock: d("100"),
	}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{
		ID: installID, CompanyID: companyID, SKU: "SRV-INST", Name: "Installation", HSNCode: "9954", Unit: "Job",
		Category: entity.CategoryService, GSTRate: d("18"), SalePrice: d("5000"),
	}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{
		ID: otherCoItem, CompanyID: "co-2", SKU: "X", Name: "Ajeno", Unit: "Nos", GSTRate: d("18"), SalePrice: d("1"),
	}))

	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Projects(), store.Ledger(), nil, inventory.Config{})
	today := time.Now().Format("2006-01-02")
	parsed, err := time.Parse("2006-01-02", today)
	require.NoError(t, err)

	return &fixture{
		ctx:        ctx,
		store:      store,
		quotations: billing.NewQuotationUseCase(store, store.Companies(), store.Customers(), store.Items(), store.Quotations(), nil),
		invoices: billing.NewInvoiceUseCase(store, ledger, store.Companies(), store.Customers(), store.Items(),
			store.Quotations(), store.Projects(), store.Invoices(), nil),
		payments: billing.NewPaymentUseCase(store, store.Invoices(), store.Projects(), store.Payments(), nil),
		today:    today,
		fy:       einvoice.FinancialYear(parsed),
	}
}

// solarLines 10 paneles (12%) + instalación (servicio, 18%): 1120 + 5900 = 7020.
func solarLines() []dto.DocumentLineRequest {
	return []dto.DocumentLineRequest{
		{ItemID: panelID, Quantity: d("10")},
		{ItemID: installID, Quantity: d("1")},
	}
}

func (f *fixture) acceptedQuotation(t *testing.T) *dto.QuotationResponse {
	t.Helper()
	q, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)
	_, err = f.quotations.UpdateStatus(f.ctx, companyID, q.ID, entity.QuotationAccepted)
	require.NoError(t, err)
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_IntraStateFromCustomerState(t *testing.T) {
	f := newFixture(t)

	// 10 × 100 con 10% de descuento al 18%: base 900, CGST 81, SGST 81 → 1062
	resp, err := f.quotations.Preview(f.ctx, companyID, dto.PreviewRequest{
		CustomerID: customerKA,
		Lines: []dto.DocumentLineRequest{{
			Description: "Panel", Quantity: d("10"), UnitPrice: dp("100"),
			DiscountPercent: d("10"), GSTRate: dp("18"),
		}},
	})
	require.NoError(t, err)

	assert.False(t, resp.Interstate)
	assert.Equal(t, "Karnataka", resp.PlaceOfSupply)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].TaxableAmount.Equal(d("900")))
	assert.True(t, resp.Totals.CGST.Equal(d("81")))
	assert.True(t, resp.Totals.SGST.Equal(d("81")))
	assert.True(t, resp.Totals.IGST.IsZero())
	assert.True(t, resp.Totals.GrandTotal.Equal(d("1062")))
	assert.Equal(t, "One Thousand and Sixty Two Rupees Only", resp.Totals.AmountInWords)
}

func TestPreview_InterstatePlaceOfSupply(t *testing.T) {
	f := newFixture(t)

	resp, err := f.quotations.Preview(f.ctx, companyID, dto.PreviewRequest{
		CustomerID: customerMH,
		Lines: []dto.DocumentLineRequest{{
			Description: "Panel", Quantity: d("10"), UnitPrice: dp("100"),
			DiscountPercent: d("10"), GSTRate: dp("18"),
		}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Interstate)
	assert.True(t, resp.Totals.IGST.Equal(d("162")))
	assert.True(t, resp.Totals.CGST.IsZero())
	assert.True(t, resp.Totals.GrandTotal.Equal(d("1062")))
}

func TestPreview_ToleratesHalfTypedLines(t *testing.T) {
	f := newFixture(t)

	// El preview no valida: cantidades negativas y tasas raras se degradan a 0
	resp, err := f.quotations.Preview(f.ctx, companyID, dto.PreviewRequest{
		Lines: []dto.DocumentLineRequest{{Quantity: d("-3"), UnitPrice: dp("50"), GSTRate: dp("7")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Totals.GrandTotal.IsZero())
	assert.Equal(t, "Zero Rupees Only", resp.Totals.AmountInWords)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotizaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateQuotation_NumbersAndItemDefaults(t *testing.T) {
	f := newFixture(t)

	q1, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)
	q2, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("QT/%s/0001", f.fy), q1.Number)
	assert.Equal(t, fmt.Sprintf("QT/%s/0002", f.fy), q2.Number)
	assert.Equal(t, entity.QuotationDraft, q1.Status)

	// Los datos faltantes de la línea se toman del artículo
	require.Len(t, q1.Lines, 2)
	assert.Equal(t, "Mono PERC 540W", q1.Lines[0].Description)
	assert.Equal(t, "8541", q1.Lines[0].HSNCode)
	assert.True(t, q1.Lines[0].GSTRate.Equal(d("12")))
	assert.True(t, q1.Totals.GrandTotal.Equal(d("7020")))

	got, err := f.quotations.Get(f.ctx, companyID, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.CustomerName)
	assert.True(t, got.Totals.GrandTotal.Equal(q1.Totals.GrandTotal), "los totales se persisten al guardar")
}

func TestCreateQuotation_Validation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		req  dto.CreateQuotationRequest
		want error
	}{
		{"sin líneas", dto.CreateQuotationRequest{CustomerID: customerKA}, domain.ErrInvalidInput},
		{"sin cliente", dto.CreateQuotationRequest{Lines: solarLines()}, domain.ErrInvalidInput},
		{"cliente inexistente", dto.CreateQuotationRequest{CustomerID: "nope", Lines: solarLines()}, domain.ErrNotFound},
		{"tasa GST no permitida", dto.CreateQuotationRequest{CustomerID: customerKA, Lines: []dto.DocumentLineRequest{
			{Description: "x", Quantity: d("1"), UnitPrice: dp("10"), GSTRate: dp("7")},
		}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateQuotationRequest{CustomerID: customerKA, Lines: []dto.DocumentLineRequest{
			{ItemID: panelID, Quantity: d("0")},
		}}, domain.ErrInvalidInput},
		{"descuento > 100", dto.CreateQuotationRequest{CustomerID: customerKA, Lines: []dto.DocumentLineRequest{
			{ItemID: panelID, Quantity: d("1"), DiscountPercent: d("120")},
		}}, domain.ErrInvalidInput},
		{"TCS > 10", dto.CreateQuotationRequest{CustomerID: customerKA, TCSRate: d("11"), Lines: solarLines()}, domain.ErrInvalidInput},
		{"artículo de otra empresa", dto.CreateQuotationRequest{CustomerID: customerKA, Lines: []dto.DocumentLineRequest{
			{ItemID: otherCoItem, Quantity: d("1")},
		}}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.quotations.Create(f.ctx, companyID, userID, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestQuotationStatus_ClosedStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	q, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{CustomerID: customerKA, Lines: solarLines()})
	require.NoError(t, err)

	sent, err := f.quotations.UpdateStatus(f.ctx, companyID, q.ID, entity.QuotationSent)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationSent, sent.Status)

	_, err = f.quotations.UpdateStatus(f.ctx, companyID, q.ID, entity.QuotationRejected)
	require.NoError(t, err)

	_, err = f.quotations.UpdateStatus(f.ctx, companyID, q.ID, entity.QuotationAccepted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.quotations.UpdateStatus(f.ctx, companyID, q.ID, "Archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.quotations.UpdateStatus(f.ctx, "co-2", q.ID, entity.QuotationSent)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListQuotations_FilterByStatus(t *testing.T) {
	f := newFixture(t)
	f.acceptedQuotation(t)
	_, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{CustomerID: customerMH, Lines: solarLines()})
	require.NoError(t, err)

	all, err := f.quotations.List(f.ctx, companyID, repository.QuotationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	accepted, err := f.quotations.List(f.ctx, companyID, repository.QuotationFilter{Status: entity.QuotationAccepted})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, customerKA, accepted[0].CustomerID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_FromAcceptedQuotation(t *testing.T) {
	f := newFixture(t)
	q := f.acceptedQuotation(t)

	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{QuotationID: q.ID, Date: f.today})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV/%s/0001", f.fy), inv.Number)
	assert.Equal(t, customerKA, inv.CustomerID)
	assert.True(t, inv.Totals.GrandTotal.Equal(q.Totals.GrandTotal), "la factura reproduce la cotización")
	assert.True(t, inv.Balance.Equal(d("7020")))
	assert.Equal(t, entity.PaymentUnpaid, inv.PaymentStatus)
	assert.Len(t, inv.IRN, 64)

	// Solo el panel descuenta inventario; la instalación es un servicio
	panel, err := f.store.Items().GetByID(f.ctx, panelID)
	require.NoError(t, err)
	assert.True(t, panel.CurrentStock.Equal(d("90")))

	entries, err := f.store.Ledger().List(f.ctx, companyID, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Sale", entries[0].TransactionType)
	assert.Equal(t, inv.Number, entries[0].ReferenceNumber)
	assert.True(t, entries[0].Quantity.Equal(d("-10")))
	assert.True(t, entries[0].BalanceQuantity.Equal(d("90")))
}

func TestCreateInvoice_QuotationMustBeAccepted(t *testing.T) {
	f := newFixture(t)
	q, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{CustomerID: customerKA, Lines: solarLines()})
	require.NoError(t, err)

	_, err = f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{QuotationID: q.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateInvoice_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today,
		Lines: []dto.DocumentLineRequest{{ItemID: panelID, Quantity: d("500")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se persistió: ni stock, ni libro mayor, ni consecutivo
	panel, err := f.store.Items().GetByID(f.ctx, panelID)
	require.NoError(t, err)
	assert.True(t, panel.CurrentStock.Equal(d("100")))
	entries, err := f.store.Ledger().List(f.ctx, companyID, repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today,
		Lines: []dto.DocumentLineRequest{{ItemID: panelID, Quantity: d("5")}},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV/%s/0001", f.fy), inv.Number)
}

func TestListInvoices_OverdueDerived(t *testing.T) {
	f := newFixture(t)
	past := time.Now().AddDate(0, -3, 0).Format("2006-01-02")
	pastDue := time.Now().AddDate(0, -2, 0).Format("2006-01-02")

	_, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: past, DueDate: pastDue,
		Lines: []dto.DocumentLineRequest{{ItemID: installID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	_, err = f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today,
		Lines: []dto.DocumentLineRequest{{ItemID: installID, Quantity: d("1")}},
	})
	require.NoError(t, err)

	overdue, err := f.invoices.ListInvoices(f.ctx, companyID, repository.InvoiceFilter{PaymentStatus: entity.PaymentOverdue})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, entity.PaymentOverdue, overdue[0].PaymentStatus)

	_, err = f.invoices.ListInvoices(f.ctx, companyID, repository.InvoiceFilter{PaymentStatus: "Cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobros
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_PartialOverpaymentAndPaid(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)

	p, err := f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: d("2000"), Mode: entity.ModeUPI, Reference: "UTR123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPartial, p.InvoiceStatus)

	_, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: d("6000"), Mode: entity.ModeNEFT,
	})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	p, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: d("5020"), Mode: entity.ModeNEFT,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, p.InvoiceStatus)

	got, err := f.invoices.GetInvoice(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	assert.True(t, got.AmountPaid.Equal(d("7020")))

	list, err := f.payments.ListByInvoice(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "el pago rechazado no se guarda")
}

func TestRecordPayment_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{InvoiceID: "x", Amount: d("0"), Mode: entity.ModeCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{InvoiceID: "x", Amount: d("10"), Mode: "Bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{Amount: d("10"), Mode: entity.ModeCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{InvoiceID: "x", Amount: d("10"), Mode: entity.ModeCash})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordPayment_UpdatesProjectStage(t *testing.T) {
	f := newFixture(t)
	stages := schedule.Build(d("100000"), schedule.DefaultStages())
	project := &entity.Project{ID: "pr-1", CompanyID: companyID, CustomerID: customerKA, Name: "5 kW rooftop", Status: entity.ProjectPlanned, ProjectValue: d("100000")}
	for i, s := range stages {
		project.Stages = append(project.Stages, entity.PaymentStage{
			ID: fmt.Sprintf("st-%d", i), ProjectID: project.ID, Position: i + 1, Name: s.Name,
			Percentage: s.Percentage, Amount: s.Amount, Received: decimal.Zero, Status: s.Status,
		})
	}
	require.NoError(t, f.store.Projects().Create(f.ctx, project))

	// Booking = 10% de 100000
	p, err := f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		ProjectID: project.ID, Stage: schedule.StageBooking, Amount: d("4000"), Mode: entity.ModeCash,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusPartial, p.StageStatus)

	_, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		ProjectID: project.ID, Stage: schedule.StageBooking, Amount: d("7000"), Mode: entity.ModeCash,
	})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	p, err = f.payments.RecordPayment(f.ctx, companyID, userID, dto.RecordPaymentRequest{
		ProjectID: project.ID, Stage: schedule.StageBooking, Amount: d("6000"), Mode: entity.ModeCheque,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusReceived, p.StageStatus)

	stored, err := f.store.Projects().GetByID(f.ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, stored.Stages[0].Received.Equal(d("10000")))
	assert.Equal(t, schedule.StatusDue, stored.Stages[1].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas, errores de almacenamiento y borrado de artículos
// ──────────────────────────────────────────────────────────────────────────────

type countingMetrics struct {
	docs  map[string]int
	stock map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{docs: map[string]int{}, stock: map[string]int{}}
}

func (m *countingMetrics) DocumentIssued(docType string)       { m.docs[docType]++ }
func (m *countingMetrics) StockTransactionRecorded(txn string) { m.stock[txn]++ }
func (m *countingMetrics) PaymentRecorded(string, decimal.Decimal) {}

func TestCreateInvoice_CountsStockedSales(t *testing.T) {
	f := newFixture(t)
	m := newCountingMetrics()
	ledger := inventory.NewLedgerUseCase(f.store, f.store.Items(), f.store.Projects(), f.store.Ledger(), m, inventory.Config{})
	invoices := billing.NewInvoiceUseCase(f.store, ledger, f.store.Companies(), f.store.Customers(), f.store.Items(),
		f.store.Quotations(), f.store.Projects(), f.store.Invoices(), m)

	_, err := invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today, Lines: solarLines(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.docs[entity.SeriesInvoice])
	assert.Equal(t, 1, m.stock["Sale"], "solo el panel mueve inventario")

	_, err = invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		CustomerID: customerKA, Date: f.today,
		Lines: []dto.DocumentLineRequest{{ItemID: panelID, Quantity: d("500")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, m.stock["Sale"], "una factura revertida no suma")
}

var errStorage = errors.New("conexión perdida")

type brokenCustomers struct{ repository.CustomerRepository }

func (brokenCustomers) GetByID(context.Context, string) (*entity.Customer, error) {
	return nil, errStorage
}

func TestGetDocuments_PropagateStorageErrors(t *testing.T) {
	f := newFixture(t)
	q := f.acceptedQuotation(t)
	inv, err := f.invoices.CreateInvoice(f.ctx, companyID, userID, dto.CreateInvoiceRequest{QuotationID: q.ID, Date: f.today})
	require.NoError(t, err)

	broken := brokenCustomers{f.store.Customers()}
	ledger := inventory.NewLedgerUseCase(f.store, f.store.Items(), f.store.Projects(), f.store.Ledger(), nil, inventory.Config{})
	invoices := billing.NewInvoiceUseCase(f.store, ledger, f.store.Companies(), broken, f.store.Items(),
		f.store.Quotations(), f.store.Projects(), f.store.Invoices(), nil)
	quotations := billing.NewQuotationUseCase(f.store, f.store.Companies(), broken, f.store.Items(), f.store.Quotations(), nil)

	_, err = invoices.GetInvoice(f.ctx, companyID, inv.ID)
	assert.ErrorIs(t, err, errStorage)
	_, err = quotations.Get(f.ctx, companyID, q.ID)
	assert.ErrorIs(t, err, errStorage)
}

func TestDeleteItem_BlockedByDocumentLines(t *testing.T) {
	f := newFixture(t)

	// La instalación es un servicio: no deja entradas en el libro mayor.
	_, err := f.quotations.Create(f.ctx, companyID, userID, dto.CreateQuotationRequest{
		CustomerID: customerKA, Lines: []dto.DocumentLineRequest{{ItemID: installID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.store.Items().Delete(f.ctx, installID), domain.ErrConflict)

	assert.NoError(t, f.store.Items().Delete(f.ctx, otherCoItem), "sin referencias se puede borrar")
}
