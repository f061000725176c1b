package billing

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

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. Sin estado explícito se toma el del GSTIN.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
	}
	if err := applyCustomer(customer, in); err != nil {
		return nil, err
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get obtiene un cliente de la empresa.
func (uc *CustomerUseCase) Get(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := loadCustomer(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := loadCustomer(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := applyCustomer(customer, in); err != nil {
		return nil, err
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente sin documentos asociados.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := loadCustomer(ctx, uc.repo, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func applyCustomer(c *entity.Customer, in dto.CreateCustomerRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	gstin := strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if gstin != "" && (len(gstin) != 15 || gst.StateCodeFromGSTIN(gstin) == "") {
		return fmt.Errorf("%w: GSTIN %q", domain.ErrInvalidInput, in.GSTIN)
	}
	state := strings.TrimSpace(in.State)
	if state == "" && gstin != "" {
		state = gst.StateName(gst.StateCodeFromGSTIN(gstin))
	}
	if state == "" {
		return fmt.Errorf("%w: el estado es obligatorio", domain.ErrInvalidInput)
	}
	c.Name = name
	c.GSTIN = gstin
	c.State = state
	c.Address = in.Address
	c.Email = in.Email
	c.Phone = in.Phone
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		GSTIN:     c.GSTIN,
		State:     c.State,
		StateCode: gst.StateCodeFromName(c.State),
		Address:   c.Address,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
