package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// QuotationFilter filtros del listado de cotizaciones.
type QuotationFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// QuotationRepository define el puerto de persistencia para Quotation y sus líneas.
type QuotationRepository interface {
	// Create guarda cabecera y líneas.
	Create(ctx context.Context, q *entity.Quotation) error
	// GetByID devuelve la cotización con sus líneas en orden de posición.
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	ListByCompany(ctx context.Context, companyID string, filter QuotationFilter) ([]*entity.Quotation, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}
