package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/stock"
)

// StockRecorder registra entradas del libro mayor dentro de la tx del caller.
type StockRecorder interface {
	RecordInTx(ctx context.Context, repos repository.TxRepositories, in inventory.TransactionInput) (*entity.StockLedgerEntry, error)
}

// ItemUseCase casos de uso CRUD para artículos. CurrentStock y PurchasePrice se
// manejan vía libro mayor.
type ItemUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ItemRepository
	stock    StockRecorder
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner ports.TxRunner, repo repository.ItemRepository, stockRecorder StockRecorder) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repo: repo, stock: stockRecorder}
}

// Create crea un nuevo artículo. Con stock inicial > 0 agrega en la misma transacción
// una entrada "Opening Stock" al precio de compra.
func (uc *ItemUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if sku == "" || name == "" || unit == "" {
		return nil, fmt.Errorf("%w: sku, nombre y unidad son obligatorios", domain.ErrInvalidInput)
	}
	if err := validateAmounts(in.GSTRate, in.SalePrice, in.PurchasePrice, in.ReorderLevel); err != nil {
		return nil, err
	}
	if in.OpeningStock.IsNegative() {
		return nil, fmt.Errorf("%w: stock inicial negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           sku,
		Name:          name,
		Description:   in.Description,
		HSNCode:       strings.TrimSpace(in.HSNCode),
		Unit:          unit,
		Category:      in.Category,
		GSTRate:       in.GSTRate,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		ReorderLevel:  in.ReorderLevel,
		CurrentStock:  decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}
		if !in.OpeningStock.IsPositive() {
			return nil
		}
		rate := in.PurchasePrice
		entry, err := uc.stock.RecordInTx(ctx, repos, inventory.TransactionInput{
			CompanyID: companyID,
			UserID:    userID,
			ItemID:    item.ID,
			Type:      stock.OpeningStock,
			Quantity:  in.OpeningStock,
			Rate:      &rate,
			Date:      now,
			Remarks:   "Stock inicial",
		})
		if err != nil {
			return err
		}
		item.CurrentStock = entry.BalanceQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo de la empresa.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update actualiza un artículo. No permite modificar stock ni costo promedio.
func (uc *ItemUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	setString(&item.Description, in.Description)
	setString(&item.HSNCode, in.HSNCode)
	setString(&item.Unit, in.Unit)
	setString(&item.Category, in.Category)
	if in.GSTRate != nil {
		item.GSTRate = *in.GSTRate
	}
	if in.SalePrice != nil {
		item.SalePrice = *in.SalePrice
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if err := validateAmounts(item.GSTRate, item.SalePrice, item.PurchasePrice, item.ReorderLevel); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos por empresa con paginación.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.NewPage(limit, offset, len(items)),
	}, nil
}

// Delete elimina un artículo sin movimientos en el libro mayor.
func (uc *ItemUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) load(ctx context.Context, companyID, id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func validateAmounts(rate, salePrice, purchasePrice, reorder decimal.Decimal) error {
	if !gst.ValidRate(rate) {
		return fmt.Errorf("%w: tasa GST %s no permitida", domain.ErrInvalidInput, rate.String())
	}
	if salePrice.IsNegative() || purchasePrice.IsNegative() || reorder.IsNegative() {
		return fmt.Errorf("%w: precios y nivel de reorden no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		SKU:           it.SKU,
		Name:          it.Name,
		Description:   it.Description,
		HSNCode:       it.HSNCode,
		Unit:          it.Unit,
		Category:      it.Category,
		GSTRate:       it.GSTRate,
		SalePrice:     it.SalePrice,
		PurchasePrice: it.PurchasePrice,
		ReorderLevel:  it.ReorderLevel,
		CurrentStock:  it.CurrentStock,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
