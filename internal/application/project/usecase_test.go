package project_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/project"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
)

const companyID = "co-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*project.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "cu-1", CompanyID: companyID, Name: "Ravi", State: "Karnataka"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "cu-2", CompanyID: companyID, Name: "Anita", State: "Karnataka"}))
	require.NoError(t, store.Quotations().Create(ctx, &entity.Quotation{
		ID: "qt-1", CompanyID: companyID, CustomerID: "cu-1", Number: "QT/2025-26/0001",
		Status:          entity.QuotationAccepted,
		DocumentAmounts: entity.DocumentAmounts{GrandTotal: d("333333")},
	}))
	return project.NewUseCase(store.Projects(), store.Customers(), store.Quotations()), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta con plan de pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DefaultScheduleFromQuotationValue(t *testing.T) {
	uc, _ := setup(t)

	p, err := uc.Create(context.Background(), companyID, dto.CreateProjectRequest{
		CustomerID: "cu-1", QuotationID: "qt-1", Name: "Rooftop 3 kW", CapacityKW: d("3"),
	})
	require.NoError(t, err)

	assert.True(t, p.ProjectValue.Equal(d("333333")), "el valor se toma de la cotización")
	require.Len(t, p.Stages, 6)
	assert.Equal(t, "Booking", p.Stages[0].Name)
	assert.True(t, p.Stages[0].Amount.Equal(d("33333")))

	// La última etapa absorbe el residuo: Σ montos == valor del proyecto
	total := decimal.Zero
	for _, s := range p.Stages {
		total = total.Add(s.Amount)
		assert.Equal(t, "Due", s.Status)
	}
	assert.True(t, total.Equal(d("333333")))
	assert.Equal(t, entity.ProjectPlanned, p.Status)
	assert.True(t, p.ProgressPct.IsZero())
}

func TestCreate_ScheduleMustBalance(t *testing.T) {
	uc, _ := setup(t)
	value := d("100000")

	_, err := uc.Create(context.Background(), companyID, dto.CreateProjectRequest{
		CustomerID: "cu-1", Name: "Farm pump", ProjectValue: &value,
		Stages: []dto.StageRequest{
			{Name: "Booking", Percentage: d("50")},
			{Name: "Final", Percentage: d("40")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrScheduleNotBalanced)

	p, err := uc.Create(context.Background(), companyID, dto.CreateProjectRequest{
		CustomerID: "cu-1", Name: "Farm pump", ProjectValue: &value, StartDate: "2025-07-01",
		Stages: []dto.StageRequest{
			{Name: "Booking", Percentage: d("50"), DueDate: "2025-07-01"},
			{Name: "Final", Percentage: d("50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", p.Stages[0].DueDate)
	assert.True(t, p.Stages[1].Amount.Equal(d("50000")))
}

func TestCreate_Validation(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	zero := d("0")

	_, err := uc.Create(ctx, companyID, dto.CreateProjectRequest{CustomerID: "cu-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyID, dto.CreateProjectRequest{CustomerID: "cu-1", Name: "x", ProjectValue: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyID, dto.CreateProjectRequest{CustomerID: "nope", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, companyID, dto.CreateProjectRequest{CustomerID: "cu-2", QuotationID: "qt-1", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyID, dto.CreateProjectRequest{
		CustomerID: "cu-1", QuotationID: "qt-1", Name: "x",
		Stages: []dto.StageRequest{{Name: "Painting", Percentage: d("100")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, companyID, dto.CreateProjectRequest{CustomerID: "cu-1", QuotationID: "qt-1", Name: "Rooftop"})
	require.NoError(t, err)

	got, err := uc.UpdateStatus(ctx, companyID, p.ID, entity.ProjectInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectInProgress, got.Status)

	_, err = uc.UpdateStatus(ctx, companyID, p.ID, entity.ProjectCompleted)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, companyID, p.ID, entity.ProjectInProgress)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateStatus(ctx, "co-2", p.ID, entity.ProjectCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, companyID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.ProjectCompleted, list[0].Status)
}
