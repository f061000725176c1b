package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/solar-epc-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las tarjetas del dashboard para un rango de fechas.
// GET /api/dashboard/summary?from=2025-04-01&to=2025-04-30
//
// Sin parámetros el rango es el mes en curso hasta hoy. Los montos van como
// números planos (sin formato de moneda).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetCompanyID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
