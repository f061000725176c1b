package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var (
	_ repository.StockLedgerRepository    = (*LedgerRepo)(nil)
	_ repository.QuotationRepository      = (*QuotationRepo)(nil)
	_ repository.InvoiceRepository        = (*InvoiceRepo)(nil)
	_ repository.ProjectRepository        = (*ProjectRepo)(nil)
	_ repository.PaymentRepository        = (*PaymentRepo)(nil)
	_ repository.DocumentSeriesRepository = (*SeriesRepo)(nil)
	_ repository.AnalyticsRepository      = (*AnalyticsRepo)(nil)
)

func cloneLines(lines []entity.DocumentLine) []entity.DocumentLine {
	return append([]entity.DocumentLine(nil), lines...)
}

func cloneStages(stages []entity.PaymentStage) []entity.PaymentStage {
	return append([]entity.PaymentStage(nil), stages...)
}

// ── Stock ledger ──────────────────────────────────────────────────────────────

// LedgerRepo libro mayor en memoria (solo inserción).
type LedgerRepo struct{ s *Store }

// Ledger repositorio del libro mayor.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{s: s} }

func (r *LedgerRepo) Append(_ context.Context, e *entity.StockLedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.ledgerSeq++
	e.Seq = r.s.data.ledgerSeq
	r.s.data.ledger = append(r.s.data.ledger, *e)
	return nil
}

func (r *LedgerRepo) List(_ context.Context, companyID string, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockLedgerEntry, 0)
	for _, e := range r.s.data.ledger {
		if e.CompanyID != companyID {
			continue
		}
		if f.ItemID != "" && e.ItemID != f.ItemID {
			continue
		}
		if f.TransactionType != "" && e.TransactionType != f.TransactionType {
			continue
		}
		if f.ProjectID != "" && e.ProjectID != f.ProjectID {
			continue
		}
		e := e
		out = append(out, &e)
	}
	return out, nil
}

// ── Quotations ────────────────────────────────────────────────────────────────

// QuotationRepo cotizaciones en memoria.
type QuotationRepo struct{ s *Store }

// Quotations repositorio de cotizaciones.
func (s *Store) Quotations() *QuotationRepo { return &QuotationRepo{s: s} }

func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.quotations {
		if existing.CompanyID == q.CompanyID && existing.Number == q.Number {
			return domain.ErrDuplicate
		}
	}
	stored := *q
	stored.Lines = cloneLines(q.Lines)
	r.s.data.quotations[q.ID] = stored
	return nil
}

func (r *QuotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.data.quotations[id]
	if !ok {
		return nil, nil
	}
	q.Lines = cloneLines(q.Lines)
	return &q, nil
}

func (r *QuotationRepo) ListByCompany(_ context.Context, companyID string, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Quotation
	for _, q := range r.s.data.quotations {
		if q.CompanyID != companyID {
			continue
		}
		if f.CustomerID != "" && q.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		q := q
		q.Lines = nil
		list = append(list, &q)
	}
	newestFirst(list, func(q *entity.Quotation) time.Time { return q.CreatedAt }, func(q *entity.Quotation) string { return q.ID })
	return page(list, f.Limit, f.Offset), nil
}

func (r *QuotationRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.data.quotations[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	q.UpdatedAt = updatedAt
	r.s.data.quotations[id] = q
	return nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ s *Store }

// Invoices repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.invoices {
		if existing.CompanyID == inv.CompanyID && existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	stored := *inv
	stored.Lines = cloneLines(inv.Lines)
	r.s.data.invoices[inv.ID] = stored
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.data.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Lines = cloneLines(inv.Lines)
	return &inv, nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) ListByCompany(_ context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Invoice
	for _, inv := range r.s.data.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		if f.ProjectID != "" && inv.ProjectID != f.ProjectID {
			continue
		}
		if f.PaymentStatus != "" && inv.PaymentStatus != f.PaymentStatus {
			continue
		}
		inv := inv
		inv.Lines = nil
		list = append(list, &inv)
	}
	newestFirst(list, func(i *entity.Invoice) time.Time { return i.CreatedAt }, func(i *entity.Invoice) string { return i.ID })
	return page(list, f.Limit, f.Offset), nil
}

func (r *InvoiceRepo) ListOutstanding(_ context.Context, companyID string) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Invoice
	for _, inv := range r.s.data.invoices {
		if inv.CompanyID == companyID && inv.PaymentStatus != entity.PaymentPaid && inv.Balance.IsPositive() {
			inv := inv
			inv.Lines = nil
			list = append(list, &inv)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })
	return list, nil
}

func (r *InvoiceRepo) UpdatePayment(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.AmountPaid = inv.AmountPaid
	stored.Balance = inv.Balance
	stored.PaymentStatus = inv.PaymentStatus
	stored.UpdatedAt = inv.UpdatedAt
	r.s.data.invoices[inv.ID] = stored
	return nil
}

// ── Projects ──────────────────────────────────────────────────────────────────

// ProjectRepo proyectos en memoria.
type ProjectRepo struct{ s *Store }

// Projects repositorio de proyectos.
func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s: s} }

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *p
	stored.Stages = cloneStages(p.Stages)
	r.s.data.projects[p.ID] = stored
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.projects[id]
	if !ok {
		return nil, nil
	}
	p.Stages = cloneStages(p.Stages)
	return &p, nil
}

func (r *ProjectRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Project
	for _, p := range r.s.data.projects {
		if p.CompanyID == companyID {
			p := p
			p.Stages = cloneStages(p.Stages)
			list = append(list, &p)
		}
	}
	newestFirst(list, func(p *entity.Project) time.Time { return p.CreatedAt }, func(p *entity.Project) string { return p.ID })
	return page(list, limit, offset), nil
}

func (r *ProjectRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	r.s.data.projects[id] = p
	return nil
}

func (r *ProjectRepo) UpdateStage(_ context.Context, stage *entity.PaymentStage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.projects[stage.ProjectID]
	if !ok {
		return domain.ErrNotFound
	}
	stages := cloneStages(p.Stages)
	for i := range stages {
		if stages[i].ID == stage.ID {
			stages[i].Received = stage.Received
			stages[i].Status = stage.Status
			p.Stages = stages
			r.s.data.projects[p.ID] = p
			return nil
		}
	}
	return fmt.Errorf("etapa %s: %w", stage.ID, domain.ErrNotFound)
}

func (r *ProjectRepo) ListDueStages(_ context.Context, companyID string, asOf time.Time) ([]*entity.PaymentStage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PaymentStage
	for _, p := range r.s.data.projects {
		if p.CompanyID != companyID {
			continue
		}
		for _, st := range p.Stages {
			if st.DueDate != nil && !st.DueDate.After(asOf) && st.Received.LessThan(st.Amount) {
				st := st
				out = append(out, &st)
			}
		}
	}
	return out, nil
}

// ── Payments ──────────────────────────────────────────────────────────────────

// PaymentRepo cobros en memoria.
type PaymentRepo struct{ s *Store }

// Payments repositorio de cobros.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.payments = append(r.s.data.payments, *p)
	return nil
}

func (r *PaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	return r.filter(func(p entity.Payment) bool { return p.InvoiceID == invoiceID }), nil
}

func (r *PaymentRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Payment, error) {
	return r.filter(func(p entity.Payment) bool { return p.ProjectID == projectID }), nil
}

func (r *PaymentRepo) filter(match func(entity.Payment) bool) []*entity.Payment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Payment, 0)
	for _, p := range r.s.data.payments {
		if match(p) {
			p := p
			out = append(out, &p)
		}
	}
	return out
}

// ── Document series ───────────────────────────────────────────────────────────

// SeriesRepo consecutivos en memoria.
type SeriesRepo struct{ s *Store }

// Series repositorio de consecutivos.
func (s *Store) Series() *SeriesRepo { return &SeriesRepo{s: s} }

func (r *SeriesRepo) Next(_ context.Context, companyID, docType, financialYear string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := companyID + "|" + docType + "|" + financialYear
	r.s.data.series[key]++
	return r.s.data.series[key], nil
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// AnalyticsRepo consultas del dashboard sobre el store.
type AnalyticsRepo struct{ s *Store }

// Analytics repositorio de analítica.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (r *AnalyticsRepo) GetSalesSummary(_ context.Context, companyID string, start, end time.Time) (repository.SalesSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := repository.SalesSummary{
		TaxableAmount: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero,
		IGST: decimal.Zero, TCSAmount: decimal.Zero, GrandTotal: decimal.Zero,
	}
	for _, inv := range r.s.data.invoices {
		if inv.CompanyID != companyID || inv.Date.Before(start) || !inv.Date.Before(end) {
			continue
		}
		sum.InvoiceCount++
		sum.TaxableAmount = sum.TaxableAmount.Add(inv.TaxableAmount)
		sum.CGST = sum.CGST.Add(inv.CGST)
		sum.SGST = sum.SGST.Add(inv.SGST)
		sum.IGST = sum.IGST.Add(inv.IGST)
		sum.TCSAmount = sum.TCSAmount.Add(inv.TCSAmount)
		sum.GrandTotal = sum.GrandTotal.Add(inv.GrandTotal)
	}
	return sum, nil
}

func (r *AnalyticsRepo) GetReceivables(_ context.Context, companyID string, asOf time.Time) (repository.ReceivablesSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := repository.ReceivablesSummary{Outstanding: decimal.Zero}
	for _, inv := range r.s.data.invoices {
		if inv.CompanyID != companyID || !inv.Balance.IsPositive() {
			continue
		}
		res.OpenCount++
		res.Outstanding = res.Outstanding.Add(inv.Balance)
		if inv.DueDate.Before(asOf) {
			res.OverdueCount++
		}
	}
	return res, nil
}
