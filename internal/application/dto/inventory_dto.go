package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/inventory/transactions.
// Quantity es positiva para todos los tipos salvo Adjustment, donde el signo indica
// el sentido (positivo suma, negativo resta).
type RecordTransactionRequest struct {
	ItemID          string           `json:"item_id"`
	TransactionType string           `json:"transaction_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	TransactionDate string           `json:"transaction_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	ReferenceNumber string           `json:"reference_number,omitempty"`
	ProjectID       string           `json:"project_id,omitempty"`
	Remarks         string           `json:"remarks,omitempty"`
}

// LedgerEntryResponse entrada del libro mayor.
type LedgerEntryResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	ItemName        string           `json:"item_name,omitempty"`
	TransactionType string           `json:"transaction_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            string           `json:"unit"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	BalanceQuantity decimal.Decimal  `json:"balance_quantity"`
	TransactionDate string           `json:"transaction_date"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	ProjectID       string           `json:"project_id,omitempty"`
	Remarks         string           `json:"remarks,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// LowStockItemDTO artículo en o por debajo de su nivel de reorden.
type LowStockItemDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderLevel       decimal.Decimal `json:"reorder_level"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // 2*ReorderLevel - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
