package repository

import (
	"context"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	CustomerID    string
	ProjectID     string
	PaymentStatus string
	Limit         int
	Offset        int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para registrar cobros.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListOutstanding facturas con saldo pendiente (Unpaid o Partial), sin líneas.
	ListOutstanding(ctx context.Context, companyID string) ([]*entity.Invoice, error)
	// UpdatePayment actualiza amount_paid, balance y payment_status.
	UpdatePayment(ctx context.Context, invoice *entity.Invoice) error
}
