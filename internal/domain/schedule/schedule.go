// Package schedule aritmética del plan de pagos por etapas de un proyecto solar.
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain"
)

// Etapas del plan de pagos.
const (
	StageBooking          = "Booking"
	StageMaterialDelivery = "Material Delivery"
	StageInstallation     = "Installation"
	StageCommissioning    = "Commissioning"
	StageNetMetering      = "Net Metering"
	StageFinal            = "Final"
)

// Estados de cobro de una etapa.
const (
	StatusDue      = "Due"
	StatusPartial  = "Partial"
	StatusReceived = "Received"
)

var (
	hundred = decimal.NewFromInt(100)
	stages  = []string{
		StageBooking, StageMaterialDelivery, StageInstallation,
		StageCommissioning, StageNetMetering, StageFinal,
	}
)

// Stage una etapa del plan. Amount se deriva de Percentage y el valor del proyecto.
type Stage struct {
	Name       string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
	DueDate    *time.Time
	Received   decimal.Decimal
	Status     string
}

// ValidStage indica si name es una etapa conocida.
func ValidStage(name string) bool {
	for _, s := range stages {
		if s == name {
			return true
		}
	}
	return false
}

// DefaultStages plantilla habitual 10/40/30/10/5/5.
func DefaultStages() []Stage {
	pcts := []int64{10, 40, 30, 10, 5, 5}
	out := make([]Stage, len(stages))
	for i, name := range stages {
		out[i] = Stage{Name: name, Percentage: decimal.NewFromInt(pcts[i])}
	}
	return out
}

// StageAmount monto de la etapa redondeado a la rupia (mitad hacia arriba).
func StageAmount(projectValue, pct decimal.Decimal) decimal.Decimal {
	return projectValue.Mul(pct).Div(hundred).Round(0)
}

// Validate verifica cada etapa y que los porcentajes sumen exactamente 100.
func Validate(list []Stage) error {
	if len(list) == 0 {
		return fmt.Errorf("%w: el plan no tiene etapas", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(list))
	total := decimal.Zero
	for _, s := range list {
		if !ValidStage(s.Name) {
			return fmt.Errorf("%w: etapa desconocida %q", domain.ErrInvalidInput, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: etapa repetida %q", domain.ErrInvalidInput, s.Name)
		}
		seen[s.Name] = true
		if s.Percentage.IsNegative() || s.Percentage.GreaterThan(hundred) {
			return fmt.Errorf("%w: porcentaje fuera de rango en %q", domain.ErrInvalidInput, s.Name)
		}
		total = total.Add(s.Percentage)
	}
	if !total.Equal(hundred) {
		return fmt.Errorf("%w (suma actual %s)", domain.ErrScheduleNotBalanced, total.String())
	}
	return nil
}

// Build calcula el monto de cada etapa. Si los porcentajes suman 100 el residuo de
// redondeo lo absorbe la última etapa con porcentaje positivo, de modo que
// Σ montos == projectValue.Round(0) y ninguna etapa queda con monto negativo.
// El estado se recalcula a partir de lo ya recibido.
func Build(projectValue decimal.Decimal, list []Stage) []Stage {
	out := make([]Stage, len(list))
	copy(out, list)

	total := decimal.Zero
	pctSum := decimal.Zero
	for i := range out {
		out[i].Amount = StageAmount(projectValue, out[i].Percentage)
		total = total.Add(out[i].Amount)
		pctSum = pctSum.Add(out[i].Percentage)
	}
	if pctSum.Equal(hundred) {
		absorbResidue(out, projectValue.Round(0).Sub(total))
	}
	for i := range out {
		out[i].Status = StageStatus(out[i].Amount, out[i].Received)
	}
	return out
}

// absorbResidue reparte el residuo desde la última etapa con porcentaje positivo hacia
// atrás, sin llevar ningún monto por debajo de cero.
func absorbResidue(list []Stage, residue decimal.Decimal) {
	for i := len(list) - 1; i >= 0 && !residue.IsZero(); i-- {
		if !list[i].Percentage.IsPositive() {
			continue
		}
		next := list[i].Amount.Add(residue)
		if next.IsNegative() {
			residue = next
			list[i].Amount = decimal.Zero
			continue
		}
		list[i].Amount = next
		residue = decimal.Zero
	}
}

// StageStatus Due sin cobros, Partial con cobro parcial, Received cuando lo recibido
// cubre el monto.
func StageStatus(amount, received decimal.Decimal) string {
	if received.GreaterThanOrEqual(amount) && (received.IsPositive() || !amount.IsPositive()) {
		return StatusReceived
	}
	if received.IsPositive() {
		return StatusPartial
	}
	return StatusDue
}

// Totals suma de montos y de lo recibido en el plan.
func Totals(list []Stage) (amount, received decimal.Decimal) {
	amount, received = decimal.Zero, decimal.Zero
	for _, s := range list {
		amount = amount.Add(s.Amount)
		received = received.Add(s.Received)
	}
	return amount, received
}
