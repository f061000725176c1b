// Package analytics contiene los casos de uso para el dashboard del back office:
// facturación y GST del período, cartera pendiente y alertas de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// DashboardUseCase genera las tarjetas de resumen del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) e ItemRepository para
// el conteo de artículos bajo reorden.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	itemRepo      repository.ItemRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, itemRepo repository.ItemRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, itemRepo: itemRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO para [from, to] (ambos inclusive).
// Sin fechas se usa el mes en curso hasta hoy.
//
// Tres consultas en paralelo:
//  1. GetSalesSummary(rango)  → facturación y GST
//  2. GetReceivables(hoy)     → saldo pendiente y vencidas
//  3. ListBelowReorder        → artículos a reponer
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID, from, to string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today
	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return nil, fmt.Errorf("%w: from %q", domain.ErrInvalidInput, from)
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return nil, fmt.Errorf("%w: to %q", domain.ErrInvalidInput, to)
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type salesResult struct {
		sum repository.SalesSummary
		err error
	}
	type receivablesResult struct {
		sum repository.ReceivablesSummary
		err error
	}
	type lowStockResult struct {
		count int
		err   error
	}

	salesCh := make(chan salesResult, 1)
	recvCh := make(chan receivablesResult, 1)
	stockCh := make(chan lowStockResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetSalesSummary(ctx, companyID, start, end.AddDate(0, 0, 1))
		salesCh <- salesResult{s, err}
	}()
	go func() {
		r, err := uc.analyticsRepo.GetReceivables(ctx, companyID, today)
		recvCh <- receivablesResult{r, err}
	}()
	go func() {
		items, err := uc.itemRepo.ListBelowReorder(ctx, companyID)
		stockCh <- lowStockResult{len(items), err}
	}()

	sales := <-salesCh
	recv := <-recvCh
	low := <-stockCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: facturación: %w", sales.err)
	}
	if recv.err != nil {
		return nil, fmt.Errorf("dashboard: cartera: %w", recv.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", low.err)
	}

	s := sales.sum
	return &dto.DashboardSummaryDTO{
		From:            start.Format(dateLayout),
		To:              end.Format(dateLayout),
		InvoiceCount:    s.InvoiceCount,
		InvoicedRevenue: s.GrandTotal.Round(0),
		TaxableAmount:   s.TaxableAmount.Round(0),
		CGST:            s.CGST.Round(0),
		SGST:            s.SGST.Round(0),
		IGST:            s.IGST.Round(0),
		TotalGST:        s.CGST.Add(s.SGST).Add(s.IGST).Round(0),
		TCSCollected:    s.TCSAmount.Round(0),
		Receivables:     recv.sum.Outstanding.Round(0),
		OpenInvoices:    recv.sum.OpenCount,
		OverdueInvoices: recv.sum.OverdueCount,
		LowStockItems:   low.count,
	}, nil
}
