package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un proyecto.
const (
	ProjectPlanned    = "Planned"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectCancelled  = "Cancelled"
)

// Project instalación solar de un cliente con su plan de pagos por etapas.
type Project struct {
	ID           string
	CompanyID    string
	CustomerID   string
	QuotationID  string
	Name         string
	CapacityKW   decimal.Decimal
	SiteAddress  string
	Status       string
	ProjectValue decimal.Decimal
	StartDate    *time.Time
	Stages       []PaymentStage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaymentStage etapa del plan de pagos.
type PaymentStage struct {
	ID         string
	ProjectID  string
	Position   int
	Name       string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
	DueDate    *time.Time
	Received   decimal.Decimal
	Status     string // Due, Partial, Received
}

// ValidProjectStatus indica si s es un estado conocido.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}
