// Package jobs tareas programadas (cron) sobre los datos de las empresas.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

const companyPageSize = 100

// ReminderGauges publica los conteos del recordatorio (ej: gauges de prometheus).
type ReminderGauges interface {
	SetReminderCounts(companyID string, overdueInvoices, dueStages, lowStockItems int)
}

// CompanyReminder resumen de pendientes de una empresa.
type CompanyReminder struct {
	CompanyID       string
	CompanyName     string
	OverdueInvoices int
	OverdueAmount   decimal.Decimal
	DueStages       int
	LowStockItems   int
}

// Pending indica si hay algo que avisar.
func (r CompanyReminder) Pending() bool {
	return r.OverdueInvoices > 0 || r.DueStages > 0 || r.LowStockItems > 0
}

// ReminderJob cuenta facturas vencidas, etapas de cobro vencidas y artículos bajo
// reorden por empresa.
type ReminderJob struct {
	companies repository.CompanyRepository
	invoices  repository.InvoiceRepository
	projects  repository.ProjectRepository
	items     repository.ItemRepository
	gauges    ReminderGauges
	now       func() time.Time
}

// NewReminderJob construye el job. gauges puede ser nil.
func NewReminderJob(
	companies repository.CompanyRepository,
	invoices repository.InvoiceRepository,
	projects repository.ProjectRepository,
	items repository.ItemRepository,
	gauges ReminderGauges,
) *ReminderJob {
	return &ReminderJob{
		companies: companies,
		invoices:  invoices,
		projects:  projects,
		items:     items,
		gauges:    gauges,
		now:       time.Now,
	}
}

// Run recorre todas las empresas activas y devuelve sus pendientes.
func (j *ReminderJob) Run(ctx context.Context) ([]CompanyReminder, error) {
	asOf := j.now()
	var out []CompanyReminder
	for offset := 0; ; offset += companyPageSize {
		companies, err := j.companies.List(ctx, companyPageSize, offset)
		if err != nil {
			return out, fmt.Errorf("listar empresas: %w", err)
		}
		for _, c := range companies {
			if c.Status == "inactive" {
				continue
			}
			r, err := j.forCompany(ctx, c.ID, asOf)
			if err != nil {
				return out, fmt.Errorf("empresa %s: %w", c.ID, err)
			}
			r.CompanyName = c.Name
			if j.gauges != nil {
				j.gauges.SetReminderCounts(c.ID, r.OverdueInvoices, r.DueStages, r.LowStockItems)
			}
			out = append(out, r)
		}
		if len(companies) < companyPageSize {
			return out, nil
		}
	}
}

func (j *ReminderJob) forCompany(ctx context.Context, companyID string, asOf time.Time) (CompanyReminder, error) {
	r := CompanyReminder{CompanyID: companyID, OverdueAmount: decimal.Zero}

	outstanding, err := j.invoices.ListOutstanding(ctx, companyID)
	if err != nil {
		return r, err
	}
	for _, inv := range outstanding {
		if inv.DueDate.Before(asOf) {
			r.OverdueInvoices++
			r.OverdueAmount = r.OverdueAmount.Add(inv.Balance)
		}
	}

	stages, err := j.projects.ListDueStages(ctx, companyID, asOf)
	if err != nil {
		return r, err
	}
	r.DueStages = len(stages)

	low, err := j.items.ListBelowReorder(ctx, companyID)
	if err != nil {
		return r, err
	}
	r.LowStockItems = len(low)
	return r, nil
}
