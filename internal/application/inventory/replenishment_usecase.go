package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// ReplenishmentUseCase lista de reposición: artículos en o por debajo del nivel de
// reorden con la cantidad sugerida de compra.
type ReplenishmentUseCase struct {
	itemRepo repository.ItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.ItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

var two = decimal.NewFromInt(2)

// LowStock devuelve los artículos bajo reorden. Cantidad sugerida = 2*reorden - stock
// (repone hasta el doble del nivel). Prioridad por mayor déficit relativo primero.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context, companyID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListBelowReorder(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		if !it.BelowReorder() {
			continue
		}
		suggested := it.ReorderLevel.Mul(two).Sub(it.CurrentStock)
		out = append(out, dto.LowStockItemDTO{
			ItemID:             it.ID,
			SKU:                it.SKU,
			Name:               it.Name,
			Unit:               it.Unit,
			CurrentStock:       it.CurrentStock,
			ReorderLevel:       it.ReorderLevel,
			SuggestedOrderQty:  suggested,
			UnitCost:           it.PurchasePrice,
			EstimatedOrderCost: suggested.Mul(it.PurchasePrice).Round(2),
		})
	}

	// Déficit relativo: (reorden - stock) / reorden. Empate: mayor déficit absoluto.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		defA := a.ReorderLevel.Sub(a.CurrentStock)
		defB := b.ReorderLevel.Sub(b.CurrentStock)
		ratioA := defA.Div(a.ReorderLevel)
		ratioB := defB.Div(b.ReorderLevel)
		if !ratioA.Equal(ratioB) {
			return ratioA.GreaterThan(ratioB)
		}
		return defA.GreaterThan(defB)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
