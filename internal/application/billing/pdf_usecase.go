package billing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// DocumentUseCase genera la representación gráfica (PDF) de cotizaciones y facturas y
// la exportación de facturas a Tally. Los PDF se guardan en caché por versión del
// documento (updated_at); un fallo de la caché no impide la generación.
type DocumentUseCase struct {
	invoiceRepo   repository.InvoiceRepository
	quotationRepo repository.QuotationRepository
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	generator     DocumentPDFGenerator
	tally         TallyExporter
	cache         ports.DocumentCache // opcional
	cacheTTL      time.Duration
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
// cache puede ser nil.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	quotationRepo repository.QuotationRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator DocumentPDFGenerator,
	tally TallyExporter,
	cache ports.DocumentCache,
	cacheTTL time.Duration,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		generator:     generator,
		tally:         tally,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

// InvoicePDF genera (o recupera de caché) el PDF de una factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la empresa del token.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	filename := "invoice_" + fileSafe(inv.Number) + ".pdf"
	key := cacheKey("invoice", inv.ID, inv.UpdatedAt)

	data, err := uc.cached(ctx, key, func() ([]byte, error) {
		company, customer, err := uc.parties(ctx, companyID, inv.CustomerID)
		if err != nil {
			return nil, err
		}
		return uc.generator.Generate(ctx, PrintableDocument{
			Title:         "TAX INVOICE",
			Number:        inv.Number,
			Date:          inv.Date,
			DateLabel:     "Due Date",
			SecondaryDate: inv.DueDate,
			IRN:           inv.IRN,
			Company:       company,
			Customer:      customer,
			PlaceOfSupply: inv.PlaceOfSupply,
			Interstate:    inv.Interstate,
			Lines:         inv.Lines,
			Amounts:       inv.DocumentAmounts,
			TaxSummary:    gst.TaxSummary(lineResults(inv.Lines)),
			AmountInWords: gst.AmountInWords(inv.GrandTotal),
			Notes:         inv.Notes,
			UPIPayload:    upiPayload(company, inv.Balance.StringFixed(2), inv.Number),
		})
	})
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// QuotationPDF genera (o recupera de caché) el PDF de una cotización.
func (uc *DocumentUseCase) QuotationPDF(ctx context.Context, companyID, quotationID string) ([]byte, string, error) {
	q, err := uc.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	filename := "quotation_" + fileSafe(q.Number) + ".pdf"
	key := cacheKey("quotation", q.ID, q.UpdatedAt)

	data, err := uc.cached(ctx, key, func() ([]byte, error) {
		company, customer, err := uc.parties(ctx, companyID, q.CustomerID)
		if err != nil {
			return nil, err
		}
		return uc.generator.Generate(ctx, PrintableDocument{
			Title:         "QUOTATION",
			Number:        q.Number,
			Date:          q.Date,
			DateLabel:     "Valid Until",
			SecondaryDate: q.ValidUntil,
			Company:       company,
			Customer:      customer,
			PlaceOfSupply: q.PlaceOfSupply,
			Interstate:    q.Interstate,
			Lines:         q.Lines,
			Amounts:       q.DocumentAmounts,
			TaxSummary:    gst.TaxSummary(lineResults(q.Lines)),
			AmountInWords: gst.AmountInWords(q.GrandTotal),
			Notes:         q.Notes,
		})
	})
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// InvoiceTally exporta la factura como voucher de venta en XML de Tally.
func (uc *DocumentUseCase) InvoiceTally(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	company, customer, err := uc.parties(ctx, companyID, inv.CustomerID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.tally.ExportInvoice(ctx, inv, company, customer)
	if err != nil {
		return nil, "", fmt.Errorf("tally: %w", err)
	}
	return data, "tally_" + fileSafe(inv.Number) + ".xml", nil
}

func (uc *DocumentUseCase) parties(ctx context.Context, companyID, customerID string) (*entity.Company, *entity.Customer, error) {
	company, err := loadCompany(ctx, uc.companyRepo, companyID)
	if err != nil {
		return nil, nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, nil, fmt.Errorf("cliente: %w", domain.ErrNotFound)
	}
	return company, customer, nil
}

func (uc *DocumentUseCase) cached(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error) {
	if uc.cache != nil {
		if data, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
			return data, nil
		}
	}
	data, err := render()
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
	}
	return data, nil
}

func cacheKey(kind, id string, version time.Time) string {
	return fmt.Sprintf("pdf:%s:%s:%d", kind, id, version.UnixNano())
}

func fileSafe(number string) string {
	return strings.NewReplacer("/", "-", " ", "_").Replace(number)
}

// upiPayload intención de pago UPI para el QR del PDF; vacío si la empresa no tiene VPA.
func upiPayload(company *entity.Company, amount, note string) string {
	if company == nil || strings.TrimSpace(company.UPIVPA) == "" {
		return ""
	}
	q := url.Values{}
	q.Set("pa", company.UPIVPA)
	q.Set("pn", company.Name)
	q.Set("am", amount)
	q.Set("cu", "INR")
	q.Set("tn", note)
	return "upi://pay?" + q.Encode()
}
