package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. OpeningStock > 0 genera una
// entrada "Opening Stock" en el libro mayor.
type CreateItemRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	HSNCode       string          `json:"hsn_code"`
	Unit          string          `json:"unit" validate:"required"`
	Category      string          `json:"category"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
}

// UpdateItemRequest entrada para actualizar un artículo (sin stock ni costo promedio).
type UpdateItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	HSNCode      *string          `json:"hsn_code"`
	Unit         *string          `json:"unit"`
	Category     *string          `json:"category"`
	GSTRate      *decimal.Decimal `json:"gst_rate"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	HSNCode       string          `json:"hsn_code"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
