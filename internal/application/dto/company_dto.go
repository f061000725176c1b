package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	GSTIN       string `json:"gstin" validate:"required,len=15"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	IFSC        string `json:"ifsc"`
	UPIVPA      string `json:"upi_vpa"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// El GSTIN no se modifica: determina el régimen de todos los documentos emitidos.
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Pincode     *string `json:"pincode"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	BankName    *string `json:"bank_name"`
	BankAccount *string `json:"bank_account"`
	IFSC        *string `json:"ifsc"`
	UPIVPA      *string `json:"upi_vpa"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GSTIN       string    `json:"gstin"`
	StateCode   string    `json:"state_code"`
	StateName   string    `json:"state_name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Pincode     string    `json:"pincode"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	BankName    string    `json:"bank_name"`
	BankAccount string    `json:"bank_account"`
	IFSC        string    `json:"ifsc"`
	UPIVPA      string    `json:"upi_vpa"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
