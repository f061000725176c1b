package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Item, error)
	// Update no modifica CurrentStock ni PurchasePrice (se manejan vía libro mayor).
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock actualiza la caché de saldo y el costo promedio (usado por el libro mayor).
	UpdateStock(ctx context.Context, itemID string, currentStock, purchasePrice decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error)
	// ListBelowReorder artículos con nivel de reorden > 0 y stock en o por debajo de él,
	// mayor déficit primero.
	ListBelowReorder(ctx context.Context, companyID string) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}
