// Package project casos de uso de proyectos de instalación y su plan de pagos.
package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// UseCase alta, consulta y ciclo de estados de proyectos.
type UseCase struct {
	projectRepo   repository.ProjectRepository
	customerRepo  repository.CustomerRepository
	quotationRepo repository.QuotationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	quotationRepo repository.QuotationRepository,
) *UseCase {
	return &UseCase{
		projectRepo:   projectRepo,
		customerRepo:  customerRepo,
		quotationRepo: quotationRepo,
	}
}

// Create guarda el proyecto con su plan de pagos. Sin valor explícito se usa el gran
// total de la cotización enlazada; sin etapas, la plantilla por defecto. El plan debe
// sumar 100% (ErrScheduleNotBalanced).
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("%w: nombre y cliente son obligatorios", domain.ErrInvalidInput)
	}
	if in.CapacityKW.IsNegative() {
		return nil, fmt.Errorf("%w: capacidad negativa", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, fmt.Errorf("cliente: %w", domain.ErrNotFound)
	}

	var value decimal.Decimal
	if in.ProjectValue != nil {
		value = *in.ProjectValue
	}
	if in.QuotationID != "" {
		q, err := uc.quotationRepo.GetByID(ctx, in.QuotationID)
		if err != nil {
			return nil, err
		}
		if q == nil || q.CompanyID != companyID {
			return nil, fmt.Errorf("cotización: %w", domain.ErrNotFound)
		}
		if q.CustomerID != customer.ID {
			return nil, fmt.Errorf("%w: la cotización es de otro cliente", domain.ErrInvalidInput)
		}
		if in.ProjectValue == nil {
			value = q.GrandTotal
		}
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: el valor del proyecto debe ser mayor que cero", domain.ErrInvalidInput)
	}

	stages, err := stagesFrom(in.Stages)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(stages); err != nil {
		return nil, err
	}
	stages = schedule.Build(value, stages)

	var start *time.Time
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
		start = &t
	}

	now := time.Now()
	p := &entity.Project{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   customer.ID,
		QuotationID:  in.QuotationID,
		Name:         name,
		CapacityKW:   in.CapacityKW,
		SiteAddress:  in.SiteAddress,
		Status:       entity.ProjectPlanned,
		ProjectValue: value,
		StartDate:    start,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, s := range stages {
		p.Stages = append(p.Stages, entity.PaymentStage{
			ID:         uuid.New().String(),
			ProjectID:  p.ID,
			Position:   i + 1,
			Name:       s.Name,
			Percentage: s.Percentage,
			Amount:     s.Amount,
			DueDate:    s.DueDate,
			Received:   decimal.Zero,
			Status:     s.Status,
		})
	}
	if err := uc.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p, customer.Name), nil
}

func stagesFrom(in []dto.StageRequest) ([]schedule.Stage, error) {
	if len(in) == 0 {
		return schedule.DefaultStages(), nil
	}
	out := make([]schedule.Stage, 0, len(in))
	for _, s := range in {
		st := schedule.Stage{Name: strings.TrimSpace(s.Name), Percentage: s.Percentage, Received: decimal.Zero}
		if s.DueDate != "" {
			t, err := time.Parse(dateLayout, s.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: due_date %q", domain.ErrInvalidInput, s.DueDate)
			}
			st.DueDate = &t
		}
		out = append(out, st)
	}
	return out, nil
}

// Get obtiene el proyecto con su plan y el avance de cobro.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.ProjectResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	name := ""
	c, err := uc.customerRepo.GetByID(ctx, p.CustomerID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		name = c.Name
	}
	return toResponse(p, name), nil
}

// List lista los proyectos de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.ProjectResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.projectRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toResponse(p, ""))
	}
	return out, nil
}

// UpdateStatus cambia el estado. Completed y Cancelled son finales.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.ProjectResponse, error) {
	if !entity.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return toResponse(p, ""), nil
	}
	if p.Status == entity.ProjectCompleted || p.Status == entity.ProjectCancelled {
		return nil, fmt.Errorf("%w: el proyecto está %s", domain.ErrConflict, p.Status)
	}
	now := time.Now()
	if err := uc.projectRepo.UpdateStatus(ctx, p.ID, status, now); err != nil {
		return nil, err
	}
	p.Status = status
	p.UpdatedAt = now
	return toResponse(p, ""), nil
}

func (uc *UseCase) load(ctx context.Context, companyID, id string) (*entity.Project, error) {
	p, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func toResponse(p *entity.Project, customerName string) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		CustomerName:  customerName,
		QuotationID:   p.QuotationID,
		Name:          p.Name,
		CapacityKW:    p.CapacityKW,
		SiteAddress:   p.SiteAddress,
		Status:        p.Status,
		ProjectValue:  p.ProjectValue,
		TotalReceived: decimal.Zero,
		ProgressPct:   decimal.Zero,
		Stages:        make([]dto.StageResponse, 0, len(p.Stages)),
	}
	if p.StartDate != nil {
		resp.StartDate = p.StartDate.Format(dateLayout)
	}
	for _, s := range p.Stages {
		st := dto.StageResponse{
			Name:       s.Name,
			Percentage: s.Percentage,
			Amount:     s.Amount,
			Received:   s.Received,
			Status:     s.Status,
		}
		if s.DueDate != nil {
			st.DueDate = s.DueDate.Format(dateLayout)
		}
		resp.TotalReceived = resp.TotalReceived.Add(s.Received)
		resp.Stages = append(resp.Stages, st)
	}
	if p.ProjectValue.IsPositive() {
		resp.ProgressPct = resp.TotalReceived.Div(p.ProjectValue).Mul(hundred).Round(2)
	}
	return resp
}
