package repository

import (
	"context"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para cobros.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Payment, error)
}
