package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project y su plan de pagos.
type ProjectRepository interface {
	// Create guarda el proyecto y sus etapas.
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	// UpdateStage actualiza received y status de una etapa.
	UpdateStage(ctx context.Context, stage *entity.PaymentStage) error
	// ListDueStages etapas no cobradas del todo con fecha de vencimiento <= asOf.
	ListDueStages(ctx context.Context, companyID string, asOf time.Time) ([]*entity.PaymentStage, error)
}
