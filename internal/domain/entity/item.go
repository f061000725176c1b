package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo (panel, inversor, estructura, cable, servicio...).
// CurrentStock es la caché del último saldo del libro mayor; solo cambia vía StockLedgerEntry.
type Item struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	HSNCode       string
	Unit          string // Nos, Mtr, Kg, Set...
	Category      string
	GSTRate       decimal.Decimal // 0, 5, 12, 18, 28
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal // costo promedio ponderado
	ReorderLevel  decimal.Decimal
	CurrentStock  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowReorder indica si el stock está en o por debajo del nivel de reorden.
func (i *Item) BelowReorder() bool {
	return i.ReorderLevel.IsPositive() && i.CurrentStock.LessThanOrEqual(i.ReorderLevel)
}

// CategoryService artículos sin existencias físicas (instalación, transporte, net metering).
const CategoryService = "Service"

// Stocked indica si el artículo lleva saldo en el libro mayor.
func (i *Item) Stocked() bool {
	return !strings.EqualFold(i.Category, CategoryService)
}
