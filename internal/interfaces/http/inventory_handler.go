package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// InventoryHandler maneja el libro mayor de inventario (protegido).
type InventoryHandler struct {
	uc            *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// RecordTransaction godoc
// @Summary      Registrar transacción de inventario
// @Description  Tipos: Purchase, Sale, Transfer to Site, Return from Site, Damage,
//
//	Adjustment (cantidad con signo), Opening Stock.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "item_id, transaction_type, quantity, rate"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	entry, err := h.uc.RecordTransaction(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetLedger godoc
// @Summary      Libro mayor de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id           query  string  false  "Filtrar por artículo"
// @Param        transaction_type  query  string  false  "Filtrar por tipo"
// @Param        project_id        query  string  false  "Filtrar por proyecto"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) GetLedger(c *fiber.Ctx) error {
	filter := repository.LedgerFilter{
		ItemID:          c.Query("item_id"),
		TransactionType: c.Query("transaction_type"),
		ProjectID:       c.Query("project_id"),
	}
	entries, err := h.uc.GetLedger(c.Context(), GetCompanyID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(entries),
		"entries": entries,
	})
}

// GetLowStock godoc
// @Summary      Artículos en o por debajo del nivel de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.replenishment.LowStock(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}
