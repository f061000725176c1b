package repository

import (
	"context"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// LedgerFilter filtros opcionales de consulta del libro mayor (vacío = sin filtro).
type LedgerFilter struct {
	ItemID          string
	TransactionType string
	ProjectID       string
}

// StockLedgerRepository puerto del libro mayor de inventario. Es de solo inserción:
// no existe Update ni Delete.
type StockLedgerRepository interface {
	// Append inserta la entrada y asigna Seq (orden de inserción).
	Append(ctx context.Context, entry *entity.StockLedgerEntry) error
	// List devuelve las entradas de la empresa en orden de inserción.
	List(ctx context.Context, companyID string, filter LedgerFilter) ([]*entity.StockLedgerEntry, error)
}
