package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo proyectos y plan de pagos sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, company_id, customer_id, quotation_id, name, capacity_kw, site_address,
	status, project_value, start_date, created_at, updated_at`

const stageColumns = `id, project_id, position, name, percentage, amount, due_date, received, status`

// Create guarda el proyecto y sus etapas. Debe ejecutarse dentro de una tx si hay etapas.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	_, err := r.q.Exec(ctx, `INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, p.CustomerID, nullIfEmpty(p.QuotationID), p.Name, p.CapacityKW, p.SiteAddress,
		p.Status, p.ProjectValue, p.StartDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	for _, s := range p.Stages {
		_, err := r.q.Exec(ctx, `INSERT INTO payment_stages (`+stageColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.ID, p.ID, s.Position, s.Name, s.Percentage, s.Amount, s.DueDate, s.Received, s.Status,
		)
		if err != nil {
			return fmt.Errorf("insert payment stage %q: %w", s.Name, err)
		}
	}
	return nil
}

func scanProject(row interface{ Scan(...any) error }) (*entity.Project, error) {
	var p entity.Project
	var quotationID *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.CustomerID, &quotationID, &p.Name, &p.CapacityKW, &p.SiteAddress,
		&p.Status, &p.ProjectValue, &p.StartDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.QuotationID = derefStr(quotationID)
	return &p, nil
}

func (r *ProjectRepo) queryStages(ctx context.Context, query string, args ...any) ([]*entity.PaymentStage, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment stages: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentStage
	for rows.Next() {
		var s entity.PaymentStage
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Position, &s.Name, &s.Percentage, &s.Amount, &s.DueDate, &s.Received, &s.Status); err != nil {
			return nil, fmt.Errorf("scan payment stage: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *ProjectRepo) loadStages(ctx context.Context, p *entity.Project) error {
	stages, err := r.queryStages(ctx, `SELECT `+stageColumns+` FROM payment_stages WHERE project_id = $1 ORDER BY position`, p.ID)
	if err != nil {
		return err
	}
	p.Stages = make([]entity.PaymentStage, 0, len(stages))
	for _, s := range stages {
		p.Stages = append(p.Stages, *s)
	}
	return nil
}

// GetByID devuelve el proyecto con sus etapas.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := r.loadStages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCompany proyectos con sus etapas, más recientes primero.
func (r *ProjectRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Project, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE company_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Las etapas se cargan después de cerrar el cursor: una tx no admite dos consultas abiertas.
	for _, p := range list {
		if err := r.loadStages(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatus cambia el estado del proyecto.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE projects SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStage actualiza received y status de una etapa.
func (r *ProjectRepo) UpdateStage(ctx context.Context, s *entity.PaymentStage) error {
	cmd, err := r.q.Exec(ctx, `UPDATE payment_stages SET received = $3, status = $4 WHERE id = $1 AND project_id = $2`,
		s.ID, s.ProjectID, s.Received, s.Status)
	if err != nil {
		return fmt.Errorf("update payment stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("etapa %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

// ListDueStages etapas con saldo y vencimiento en o antes de asOf.
func (r *ProjectRepo) ListDueStages(ctx context.Context, companyID string, asOf time.Time) ([]*entity.PaymentStage, error) {
	return r.queryStages(ctx, `
		SELECT s.id, s.project_id, s.position, s.name, s.percentage, s.amount, s.due_date, s.received, s.status
		FROM payment_stages s JOIN projects p ON p.id = s.project_id
		WHERE p.company_id = $1 AND s.due_date IS NOT NULL AND s.due_date <= $2 AND s.received < s.amount
		ORDER BY s.due_date, s.position`, companyID, asOf)
}
