package dto

import "github.com/shopspring/decimal"

// StageRequest etapa del plan de pagos.
type StageRequest struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	DueDate    string          `json:"due_date,omitempty"` // YYYY-MM-DD
}

// CreateProjectRequest body para POST /api/projects.
// ProjectValue vacío toma el gran total de la cotización enlazada. Sin etapas se usa
// la plantilla por defecto.
type CreateProjectRequest struct {
	CustomerID   string           `json:"customer_id"`
	QuotationID  string           `json:"quotation_id,omitempty"`
	Name         string           `json:"name"`
	CapacityKW   decimal.Decimal  `json:"capacity_kw"`
	SiteAddress  string           `json:"site_address,omitempty"`
	ProjectValue *decimal.Decimal `json:"project_value,omitempty"`
	StartDate    string           `json:"start_date,omitempty"`
	Stages       []StageRequest   `json:"stages,omitempty"`
}

// StageResponse etapa con monto y cobro.
type StageResponse struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    string          `json:"due_date,omitempty"`
	Received   decimal.Decimal `json:"received"`
	Status     string          `json:"status"`
}

// ProjectResponse proyecto con su plan de pagos.
type ProjectResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	QuotationID   string          `json:"quotation_id,omitempty"`
	Name          string          `json:"name"`
	CapacityKW    decimal.Decimal `json:"capacity_kw"`
	SiteAddress   string          `json:"site_address,omitempty"`
	Status        string          `json:"status"`
	ProjectValue  decimal.Decimal `json:"project_value"`
	StartDate     string          `json:"start_date,omitempty"`
	TotalReceived decimal.Decimal `json:"total_received"`
	ProgressPct   decimal.Decimal `json:"progress_pct"` // cobrado / valor * 100
	Stages        []StageResponse `json:"stages"`
}
