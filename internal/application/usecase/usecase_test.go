package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/usecase"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_CreateDerivesStateFromGSTIN(t *testing.T) {
	store := memory.New()
	uc := usecase.NewCompanyUseCase(store.Companies())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Surya Urja", GSTIN: "29abcde1234f1z5"})
	require.NoError(t, err)
	assert.Equal(t, "29ABCDE1234F1Z5", c.GSTIN)
	assert.Equal(t, "29", c.StateCode)
	assert.Equal(t, "Karnataka", c.StateName)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Copia", GSTIN: "29ABCDE1234F1Z5"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Mala", GSTIN: "99ABCDE1234F1Z5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	vpa := "surya@okbank"
	updated, err := uc.Update(ctx, c.ID, dto.UpdateCompanyRequest{UPIVPA: &vpa})
	require.NoError(t, err)
	assert.Equal(t, vpa, updated.UPIVPA)
	assert.Equal(t, "29ABCDE1234F1Z5", updated.GSTIN)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func newItemUseCase(store *memory.Store) *usecase.ItemUseCase {
	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Projects(), store.Ledger(), nil, inventory.Config{})
	return usecase.NewItemUseCase(store, store.Items(), ledger)
}

func TestItem_CreateWithOpeningStock(t *testing.T) {
	store := memory.New()
	uc := newItemUseCase(store)
	ctx := context.Background()

	it, err := uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{
		SKU: "INV-5K", Name: "Inversor 5 kW", Unit: "Nos", HSNCode: "8504",
		GSTRate: d("12"), SalePrice: d("42000"), PurchasePrice: d("36000"), ReorderLevel: d("2"),
		OpeningStock: d("8"),
	})
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(d("8")))

	entries, err := store.Ledger().List(ctx, "co-1", repository.LedgerFilter{ItemID: it.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Opening Stock", entries[0].TransactionType)
	assert.True(t, entries[0].Amount.Equal(d("288000")))

	// Editar el artículo no toca el stock
	name := "Inversor híbrido 5 kW"
	updated, err := uc.Update(ctx, "co-1", it.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.True(t, updated.CurrentStock.Equal(d("8")))

	// Con movimientos no se puede borrar
	assert.ErrorIs(t, uc.Delete(ctx, "co-1", it.ID), domain.ErrConflict)
}

func TestItem_Validation(t *testing.T) {
	store := memory.New()
	uc := newItemUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{SKU: "A", Name: "Cable", Unit: "Mtr", GSTRate: d("19")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{SKU: "A", Name: "Cable", Unit: "Mtr", GSTRate: d("18"), OpeningStock: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{SKU: "A", Name: "Cable", Unit: "Mtr", GSTRate: d("18")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{SKU: "A", Name: "Otro", Unit: "Mtr", GSTRate: d("18")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, "co-2", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_ListPaginado(t *testing.T) {
	store := memory.New()
	uc := newItemUseCase(store)
	ctx := context.Background()

	for _, sku := range []string{"PNL-540", "INV-5K", "MMS-RAIL"} {
		_, err := uc.Create(ctx, "co-1", "us-1", dto.CreateItemRequest{SKU: sku, Name: sku, Unit: "Nos", GSTRate: d("12")})
		require.NoError(t, err)
	}

	first, err := uc.List(ctx, "co-1", 2, 0)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 2, first.Page.Count)
	require.NotNil(t, first.Page.NextOffset)
	assert.Equal(t, 2, *first.Page.NextOffset)

	last, err := uc.List(ctx, "co-1", 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
	assert.Nil(t, last.Page.NextOffset, "la última página no ofrece siguiente")
}
