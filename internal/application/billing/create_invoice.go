package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/einvoice"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/stock"
)

// InvoiceUseCase crea una factura y descuenta el inventario en una sola transacción.
type InvoiceUseCase struct {
	txRunner      ports.TxRunner
	stock         StockRecorder
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	quotationRepo repository.QuotationRepository
	projectRepo   repository.ProjectRepository
	invoiceRepo   repository.InvoiceRepository
	pricer        linePricer
	metrics       ports.MetricsRecorder
	now           func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner ports.TxRunner,
	stockRecorder StockRecorder,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	quotationRepo repository.QuotationRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
	metrics ports.MetricsRecorder,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &InvoiceUseCase{
		txRunner:      txRunner,
		stock:         stockRecorder,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		quotationRepo: quotationRepo,
		projectRepo:   projectRepo,
		invoiceRepo:   invoiceRepo,
		pricer:        linePricer{itemRepo: itemRepo},
		metrics:       metrics,
		now:           time.Now,
	}
}

// CreateInvoice crea la factura, registra una salida "Sale" en el libro mayor por cada
// línea con artículo inventariable y guarda cabecera y líneas. Si el inventario falla
// (ej: sin stock) nada se persiste.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	company, err := loadCompany(ctx, uc.companyRepo, companyID)
	if err != nil {
		return nil, err
	}

	if in.QuotationID != "" {
		if err := uc.fillFromQuotation(ctx, companyID, &in); err != nil {
			return nil, err
		}
	}
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrInvalidInput)
	}
	customer, err := loadCustomer(ctx, uc.customerRepo, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if in.ProjectID != "" {
		project, err := uc.projectRepo.GetByID(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil || project.CompanyID != companyID {
			return nil, fmt.Errorf("proyecto: %w", domain.ErrNotFound)
		}
	}

	now := uc.now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate, date.AddDate(0, 0, defaultTermDays))
	if err != nil {
		return nil, err
	}
	if dueDate.Before(date) {
		return nil, fmt.Errorf("%w: due_date anterior a la fecha", domain.ErrInvalidInput)
	}
	doc, err := uc.pricer.price(ctx, company, customer, in.PlaceOfSupply, in.TCSRate, in.Lines, true)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      customer.ID,
		QuotationID:     in.QuotationID,
		ProjectID:       in.ProjectID,
		FinancialYear:   einvoice.FinancialYear(date),
		Date:            date,
		DueDate:         dueDate,
		PlaceOfSupply:   doc.PlaceOfSupply,
		Interstate:      doc.Interstate,
		DocumentAmounts: amountsFrom(doc.Totals),
		AmountPaid:      decimal.Zero,
		Notes:           in.Notes,
		Lines:           doc.Lines,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	inv.Balance = inv.GrandTotal
	inv.PaymentStatus = entity.PaymentStatusFor(inv.GrandTotal, inv.AmountPaid)
	for i := range inv.Lines {
		inv.Lines[i].DocumentID = inv.ID
	}

	var stockedSales int
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		stockedSales = 0
		n, err := repos.Series.Next(ctx, companyID, entity.SeriesInvoice, inv.FinancialYear)
		if err != nil {
			return err
		}
		series := entity.DocumentSeries{DocType: entity.SeriesInvoice, FinancialYear: inv.FinancialYear}
		inv.Number = series.Format(n)
		// Sin GSTIN válido la factura queda sin IRN.
		if irn, err := einvoice.IRN(company.GSTIN, inv.FinancialYear, einvoice.DocTypeInvoice, inv.Number); err == nil {
			inv.IRN = irn
		}

		for _, line := range inv.Lines {
			item := doc.items[line.ItemID]
			if item == nil || !item.Stocked() {
				continue
			}
			rate := line.UnitPrice
			if _, err := uc.stock.RecordInTx(ctx, repos, inventory.TransactionInput{
				CompanyID:       companyID,
				UserID:          userID,
				ItemID:          item.ID,
				Type:            stock.Sale,
				Quantity:        line.Quantity,
				Rate:            &rate,
				Date:            date,
				ReferenceNumber: inv.Number,
				ProjectID:       inv.ProjectID,
			}); err != nil {
				return err
			}
			stockedSales++
		}
		return repos.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.DocumentIssued(entity.SeriesInvoice)
	for i := 0; i < stockedSales; i++ {
		uc.metrics.StockTransactionRecorded(string(stock.Sale))
	}
	return toInvoiceResponse(inv, customer.Name, now), nil
}

// fillFromQuotation completa la solicitud con los datos de una cotización aceptada.
// Las líneas de la cotización solo se usan si la solicitud no trae líneas propias.
func (uc *InvoiceUseCase) fillFromQuotation(ctx context.Context, companyID string, in *dto.CreateInvoiceRequest) error {
	q, err := uc.quotationRepo.GetByID(ctx, in.QuotationID)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("cotización: %w", domain.ErrNotFound)
	}
	if q.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if q.Status != entity.QuotationAccepted {
		return fmt.Errorf("%w: la cotización %s está %s", domain.ErrConflict, q.Number, q.Status)
	}
	if in.CustomerID == "" {
		in.CustomerID = q.CustomerID
	} else if in.CustomerID != q.CustomerID {
		return fmt.Errorf("%w: el cliente no coincide con la cotización", domain.ErrInvalidInput)
	}
	if in.PlaceOfSupply == "" {
		in.PlaceOfSupply = q.PlaceOfSupply
	}
	if len(in.Lines) == 0 {
		if in.TCSRate.IsZero() {
			in.TCSRate = q.TCSRate
		}
		in.Lines = linesToRequests(q.Lines)
	}
	return nil
}

// linesToRequests usa el descuento en monto para reproducir exactamente la cotización.
func linesToRequests(lines []entity.DocumentLine) []dto.DocumentLineRequest {
	out := make([]dto.DocumentLineRequest, 0, len(lines))
	for _, l := range lines {
		price, rate := l.UnitPrice, l.GSTRate
		out = append(out, dto.DocumentLineRequest{
			ItemID:          l.ItemID,
			Description:     l.Description,
			HSNCode:         l.HSNCode,
			Unit:            l.Unit,
			Quantity:        l.Quantity,
			UnitPrice:       &price,
			DiscountMode:    string(gst.DiscountByAmount),
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
			GSTRate:         &rate,
		})
	}
	return out
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	name, err := customerName(ctx, uc.customerRepo, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, name, uc.now()), nil
}

// ListInvoices lista facturas de la empresa. El filtro "Overdue" se resuelve sobre
// las facturas con saldo cuyo vencimiento ya pasó.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string, filter repository.InvoiceFilter) ([]dto.InvoiceResponse, error) {
	now := uc.now()
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	overdueOnly := filter.PaymentStatus == entity.PaymentOverdue
	switch filter.PaymentStatus {
	case "", entity.PaymentUnpaid, entity.PaymentPartial, entity.PaymentPaid:
	case entity.PaymentOverdue:
		filter.PaymentStatus = ""
	default:
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, filter.PaymentStatus)
	}

	var list []*entity.Invoice
	var err error
	if overdueOnly {
		list, err = uc.invoiceRepo.ListOutstanding(ctx, companyID)
	} else {
		list, err = uc.invoiceRepo.ListByCompany(ctx, companyID, filter)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		if overdueOnly && inv.DisplayStatus(now) != entity.PaymentOverdue {
			continue
		}
		out = append(out, *toInvoiceResponse(inv, "", now))
	}
	return out, nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName string, now time.Time) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		QuotationID:   inv.QuotationID,
		ProjectID:     inv.ProjectID,
		Number:        inv.Number,
		Date:          inv.Date.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		PlaceOfSupply: inv.PlaceOfSupply,
		Interstate:    inv.Interstate,
		IRN:           inv.IRN,
		AmountPaid:    inv.AmountPaid,
		Balance:       inv.Balance,
		PaymentStatus: inv.DisplayStatus(now),
		Notes:         inv.Notes,
		Lines:         toLineResponses(inv.Lines),
		Totals:        toTotalsDTO(inv.DocumentAmounts),
	}
}
