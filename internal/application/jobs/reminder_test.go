package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/application/jobs"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
)

type counts struct{ overdue, stages, low int }

type fakeGauges map[string]counts

func (g fakeGauges) SetReminderCounts(companyID string, overdue, stages, low int) {
	g[companyID] = counts{overdue, stages, low}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Recordatorio diario
// ──────────────────────────────────────────────────────────────────────────────

func TestReminderJob_CountsPendingPerCompany(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Now()
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 10)

	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "co-1", Name: "Surya Urja", GSTIN: "29ABCDE1234F1Z5", StateCode: "29", Status: "active", CreatedAt: now}))
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "co-2", Name: "Sin pendientes", GSTIN: "27ABCDE1234F1Z5", StateCode: "27", Status: "active", CreatedAt: now}))
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "co-3", Name: "Inactiva", GSTIN: "33ABCDE1234F1Z5", StateCode: "33", Status: "inactive", CreatedAt: now}))

	invoices := []*entity.Invoice{
		{ID: "in-1", CompanyID: "co-1", Number: "INV/1", DueDate: past, Balance: dec("5000"), PaymentStatus: entity.PaymentUnpaid},
		{ID: "in-2", CompanyID: "co-1", Number: "INV/2", DueDate: past, Balance: dec("1200"), PaymentStatus: entity.PaymentPartial},
		{ID: "in-3", CompanyID: "co-1", Number: "INV/3", DueDate: future, Balance: dec("900"), PaymentStatus: entity.PaymentUnpaid},
		{ID: "in-4", CompanyID: "co-1", Number: "INV/4", DueDate: past, Balance: decimal.Zero, PaymentStatus: entity.PaymentPaid},
	}
	for _, inv := range invoices {
		require.NoError(t, store.Invoices().Create(ctx, inv))
	}
	require.NoError(t, store.Projects().Create(ctx, &entity.Project{
		ID: "pr-1", CompanyID: "co-1", Name: "Azotea", Status: entity.ProjectInProgress,
		Stages: []entity.PaymentStage{
			{ID: "st-1", ProjectID: "pr-1", Position: 1, Name: "Booking", Amount: dec("100"), Received: dec("100"), DueDate: &past, Status: "Received"},
			{ID: "st-2", ProjectID: "pr-1", Position: 2, Name: "Delivery", Amount: dec("100"), Received: decimal.Zero, DueDate: &past, Status: "Due"},
			{ID: "st-3", ProjectID: "pr-1", Position: 3, Name: "Commissioning", Amount: dec("100"), Received: decimal.Zero, DueDate: &future, Status: "Due"},
		},
	}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{
		ID: "it-1", CompanyID: "co-1", SKU: "PNL", Name: "Panel", Unit: "Nos",
		ReorderLevel: dec("10"), CurrentStock: dec("4"),
	}))

	gauges := fakeGauges{}
	job := jobs.NewReminderJob(store.Companies(), store.Invoices(), store.Projects(), store.Items(), gauges)
	reminders, err := job.Run(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	byID := map[string]jobs.CompanyReminder{}
	for _, r := range reminders {
		byID[r.CompanyID] = r
	}
	r1 := byID["co-1"]
	assert.Equal(t, "Surya Urja", r1.CompanyName)
	assert.Equal(t, 2, r1.OverdueInvoices)
	assert.True(t, r1.OverdueAmount.Equal(dec("6200")))
	assert.Equal(t, 1, r1.DueStages)
	assert.Equal(t, 1, r1.LowStockItems)
	assert.True(t, r1.Pending())
	assert.False(t, byID["co-2"].Pending())

	assert.Equal(t, counts{2, 1, 1}, gauges["co-1"])
	assert.Equal(t, counts{0, 0, 0}, gauges["co-2"])
	_, inactive := gauges["co-3"]
	assert.False(t, inactive)
}

func TestScheduler_RejectsInvalidSpec(t *testing.T) {
	store := memory.New()
	job := jobs.NewReminderJob(store.Companies(), store.Invoices(), store.Projects(), store.Items(), nil)
	s := jobs.NewScheduler("cada día", job, zerolog.Nop())
	assert.Error(t, s.Start())
}

