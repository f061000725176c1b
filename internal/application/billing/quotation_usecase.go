package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/einvoice"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// QuotationUseCase cotizaciones: cálculo en vivo, alta numerada y ciclo de estados.
type QuotationUseCase struct {
	txRunner      ports.TxRunner
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	quotationRepo repository.QuotationRepository
	pricer        linePricer
	metrics       ports.MetricsRecorder
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	txRunner ports.TxRunner,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	quotationRepo repository.QuotationRepository,
	metrics ports.MetricsRecorder,
) *QuotationUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &QuotationUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		quotationRepo: quotationRepo,
		pricer:        linePricer{itemRepo: itemRepo},
		metrics:       metrics,
	}
}

// Preview calcula líneas y totales sin persistir. Tolera datos a medio escribir.
func (uc *QuotationUseCase) Preview(ctx context.Context, companyID string, in dto.PreviewRequest) (*dto.PreviewResponse, error) {
	company, err := loadCompany(ctx, uc.companyRepo, companyID)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if in.CustomerID != "" {
		if customer, err = loadCustomer(ctx, uc.customerRepo, companyID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	doc, err := uc.pricer.price(ctx, company, customer, in.PlaceOfSupply, in.TCSRate, in.Lines, false)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{
		PlaceOfSupply: doc.PlaceOfSupply,
		Interstate:    doc.Interstate,
		Lines:         toLineResponses(doc.Lines),
		Totals:        toTotalsDTO(amountsFrom(doc.Totals)),
	}, nil
}

// Create valida, calcula y guarda la cotización en estado Draft con el siguiente
// consecutivo QT del año fiscal.
func (uc *QuotationUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrInvalidInput)
	}
	company, err := loadCompany(ctx, uc.companyRepo, companyID)
	if err != nil {
		return nil, err
	}
	customer, err := loadCustomer(ctx, uc.customerRepo, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseDate(in.ValidUntil, date.AddDate(0, 0, defaultTermDays))
	if err != nil {
		return nil, err
	}
	if validUntil.Before(date) {
		return nil, fmt.Errorf("%w: valid_until anterior a la fecha", domain.ErrInvalidInput)
	}
	doc, err := uc.pricer.price(ctx, company, customer, in.PlaceOfSupply, in.TCSRate, in.Lines, true)
	if err != nil {
		return nil, err
	}

	q := &entity.Quotation{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      customer.ID,
		FinancialYear:   einvoice.FinancialYear(date),
		Date:            date,
		ValidUntil:      validUntil,
		PlaceOfSupply:   doc.PlaceOfSupply,
		Interstate:      doc.Interstate,
		Status:          entity.QuotationDraft,
		Notes:           in.Notes,
		DocumentAmounts: amountsFrom(doc.Totals),
		Lines:           doc.Lines,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range q.Lines {
		q.Lines[i].DocumentID = q.ID
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		n, err := repos.Series.Next(ctx, companyID, entity.SeriesQuotation, q.FinancialYear)
		if err != nil {
			return err
		}
		series := entity.DocumentSeries{DocType: entity.SeriesQuotation, FinancialYear: q.FinancialYear}
		q.Number = series.Format(n)
		return repos.Quotations.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.DocumentIssued(entity.SeriesQuotation)
	return toQuotationResponse(q, customer.Name), nil
}

// Get obtiene una cotización con sus líneas.
func (uc *QuotationUseCase) Get(ctx context.Context, companyID, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	name, err := customerName(ctx, uc.customerRepo, q.CustomerID)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, name), nil
}

// List lista cotizaciones de la empresa (más recientes primero), sin líneas.
func (uc *QuotationUseCase) List(ctx context.Context, companyID string, filter repository.QuotationFilter) ([]dto.QuotationResponse, error) {
	if filter.Status != "" && !entity.ValidQuotationStatus(filter.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	list, err := uc.quotationRepo.ListByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *toQuotationResponse(q, ""))
	}
	return out, nil
}

// UpdateStatus cambia el estado. Accepted, Rejected y Expired son finales.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.QuotationResponse, error) {
	if !entity.ValidQuotationStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if q.Status == status {
		return toQuotationResponse(q, ""), nil
	}
	if quotationClosed(q.Status) {
		return nil, fmt.Errorf("%w: la cotización está %s", domain.ErrConflict, q.Status)
	}
	if status == entity.QuotationDraft {
		return nil, fmt.Errorf("%w: no se puede volver a Draft", domain.ErrConflict)
	}
	now := time.Now()
	if err := uc.quotationRepo.UpdateStatus(ctx, q.ID, status, now); err != nil {
		return nil, err
	}
	q.Status = status
	q.UpdatedAt = now
	return toQuotationResponse(q, ""), nil
}

func (uc *QuotationUseCase) load(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	q, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func quotationClosed(status string) bool {
	return status == entity.QuotationAccepted || status == entity.QuotationRejected || status == entity.QuotationExpired
}

func toQuotationResponse(q *entity.Quotation, customerName string) *dto.QuotationResponse {
	return &dto.QuotationResponse{
		ID:            q.ID,
		CompanyID:     q.CompanyID,
		CustomerID:    q.CustomerID,
		CustomerName:  customerName,
		Number:        q.Number,
		Date:          q.Date.Format(dateLayout),
		ValidUntil:    q.ValidUntil.Format(dateLayout),
		PlaceOfSupply: q.PlaceOfSupply,
		Interstate:    q.Interstate,
		Status:        q.Status,
		Notes:         q.Notes,
		Lines:         toLineResponses(q.Lines),
		Totals:        toTotalsDTO(q.DocumentAmounts),
	}
}

func loadCompany(ctx context.Context, repo repository.CompanyRepository, companyID string) (*entity.Company, error) {
	company, err := repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa: %w", domain.ErrNotFound)
	}
	return company, nil
}

func loadCustomer(ctx context.Context, repo repository.CustomerRepository, companyID, customerID string) (*entity.Customer, error) {
	customer, err := repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente: %w", domain.ErrNotFound)
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

// customerName nombre para mostrar; un cliente ya borrado deja el nombre vacío.
func customerName(ctx context.Context, repo repository.CustomerRepository, customerID string) (string, error) {
	c, err := repo.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.Name, nil
}
