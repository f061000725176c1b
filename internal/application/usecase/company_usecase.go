package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. El código de estado se deriva del GSTIN.
// Devuelve domain.ErrDuplicate si el GSTIN ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	gstin := strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	stateCode := gst.StateCodeFromGSTIN(gstin)
	if len(gstin) != 15 || gst.StateName(stateCode) == "" {
		return nil, fmt.Errorf("%w: GSTIN %q", domain.ErrInvalidInput, in.GSTIN)
	}
	existing, err := uc.repo.GetByGSTIN(ctx, gstin)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        name,
		GSTIN:       gstin,
		StateCode:   stateCode,
		Address:     in.Address,
		City:        in.City,
		Pincode:     in.Pincode,
		Phone:       in.Phone,
		Email:       in.Email,
		BankName:    in.BankName,
		BankAccount: in.BankAccount,
		IFSC:        in.IFSC,
		UPIVPA:      in.UPIVPA,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Update aplica los campos informados. El GSTIN no cambia.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Status != nil {
		if *in.Status != "active" && *in.Status != "inactive" {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		company.Status = *in.Status
	}
	setString(&company.Address, in.Address)
	setString(&company.City, in.City)
	setString(&company.Pincode, in.Pincode)
	setString(&company.Phone, in.Phone)
	setString(&company.Email, in.Email)
	setString(&company.BankName, in.BankName)
	setString(&company.BankAccount, in.BankAccount)
	setString(&company.IFSC, in.IFSC)
	setString(&company.UPIVPA, in.UPIVPA)
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.NewPage(limit, offset, len(items)),
	}, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		GSTIN:       c.GSTIN,
		StateCode:   c.StateCode,
		StateName:   gst.StateName(c.StateCode),
		Address:     c.Address,
		City:        c.City,
		Pincode:     c.Pincode,
		Phone:       c.Phone,
		Email:       c.Email,
		BankName:    c.BankName,
		BankAccount: c.BankAccount,
		IFSC:        c.IFSC,
		UPIVPA:      c.UPIVPA,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
