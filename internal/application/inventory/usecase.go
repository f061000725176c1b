package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/stock"
)

const dateLayout = "2006-01-02"

// Config reglas configurables del libro mayor.
type Config struct {
	// AllowNegativeStock permite salidas que dejan el saldo por debajo de cero.
	AllowNegativeStock bool
}

// LedgerUseCase registra transacciones de inventario en el libro mayor (solo inserción)
// con bloqueo de fila del artículo (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner    ports.TxRunner
	itemRepo    repository.ItemRepository
	projectRepo repository.ProjectRepository
	ledgerRepo  repository.StockLedgerRepository
	metrics     ports.MetricsRecorder
	cfg         Config
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	itemRepo repository.ItemRepository,
	projectRepo repository.ProjectRepository,
	ledgerRepo repository.StockLedgerRepository,
	metrics ports.MetricsRecorder,
	cfg Config,
) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		itemRepo:    itemRepo,
		projectRepo: projectRepo,
		ledgerRepo:  ledgerRepo,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// TransactionInput entrada ya validada para registrar una transacción dentro de una tx.
type TransactionInput struct {
	CompanyID       string
	UserID          string
	ItemID          string
	Type            stock.TransactionType
	Quantity        decimal.Decimal // positiva, o con signo para Adjustment
	Rate            *decimal.Decimal
	Date            time.Time
	ReferenceNumber string
	ProjectID       string
	Remarks         string
}

// RecordTransaction valida la solicitud, verifica artículo y proyecto y agrega la
// entrada al libro mayor dentro de una transacción.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, companyID, userID string, in dto.RecordTransactionRequest) (*dto.LedgerEntryResponse, error) {
	txType := stock.TransactionType(in.TransactionType)
	if in.ItemID == "" || !txType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !stock.ValidQuantity(txType, in.Quantity) {
		return nil, fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, txType)
	}
	if in.Rate != nil && in.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}
	date := time.Now()
	if in.TransactionDate != "" {
		d, err := time.Parse(dateLayout, in.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.TransactionDate)
		}
		date = d
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.ProjectID != "" {
		project, err := uc.projectRepo.GetByID(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil || project.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	input := TransactionInput{
		CompanyID:       companyID,
		UserID:          userID,
		ItemID:          in.ItemID,
		Type:            txType,
		Quantity:        in.Quantity,
		Rate:            in.Rate,
		Date:            date,
		ReferenceNumber: in.ReferenceNumber,
		ProjectID:       in.ProjectID,
		Remarks:         in.Remarks,
	}
	var entry *entity.StockLedgerEntry
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var txErr error
		entry, txErr = uc.RecordInTx(ctx, repos, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockTransactionRecorded(string(txType))
	resp := toLedgerResponse(entry, item.Name)
	return &resp, nil
}

// RecordInTx agrega una entrada usando los repositorios de la transacción del caller.
// Bloquea el artículo, calcula el nuevo saldo, actualiza la caché current_stock (y el
// costo promedio en entradas con tarifa) e inserta la entrada. Si retorna error
// (ej: ErrInsufficientStock) el caller debe hacer rollback.
func (uc *LedgerUseCase) RecordInTx(ctx context.Context, repos repository.TxRepositories, in TransactionInput) (*entity.StockLedgerEntry, error) {
	item, err := repos.Items.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	signed := stock.SignedQuantity(in.Type, in.Quantity)
	balance := stock.NextBalance(item.CurrentStock, signed)
	if signed.IsNegative() && balance.IsNegative() && !uc.cfg.AllowNegativeStock {
		return nil, fmt.Errorf("%w: %s disponible %s, solicitado %s",
			domain.ErrInsufficientStock, item.SKU, item.CurrentStock.String(), signed.Abs().String())
	}

	cost := item.PurchasePrice
	if signed.IsPositive() && in.Rate != nil && (in.Type == stock.Purchase || in.Type == stock.OpeningStock) {
		cost = stock.WeightedAverageCost(item.CurrentStock, item.PurchasePrice, signed, *in.Rate)
	}
	if err := repos.Items.UpdateStock(ctx, item.ID, balance, cost); err != nil {
		return nil, err
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	entry := &entity.StockLedgerEntry{
		ID:              uuid.New().String(),
		CompanyID:       in.CompanyID,
		ItemID:          item.ID,
		TransactionType: string(in.Type),
		Quantity:        signed,
		Unit:            item.Unit,
		Rate:            in.Rate,
		Amount:          stock.Amount(in.Rate, signed),
		BalanceQuantity: balance,
		TransactionDate: date,
		ReferenceNumber: in.ReferenceNumber,
		ProjectID:       in.ProjectID,
		Remarks:         in.Remarks,
		CreatedBy:       in.UserID,
		CreatedAt:       now,
	}
	if err := repos.Ledger.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetLedger devuelve las entradas de la empresa en orden de inserción, con filtros
// opcionales por artículo, tipo y proyecto.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, companyID string, filter repository.LedgerFilter) ([]dto.LedgerEntryResponse, error) {
	if filter.TransactionType != "" && !stock.TransactionType(filter.TransactionType).Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.ItemID != "" {
		item, err := uc.itemRepo.GetByID(ctx, filter.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}
	entries, err := uc.ledgerRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.ItemID]
		if !ok {
			item, err := uc.itemRepo.GetByID(ctx, e.ItemID)
			if err != nil {
				return nil, err
			}
			if item != nil {
				name = item.Name
			}
			names[e.ItemID] = name
		}
		out = append(out, toLedgerResponse(e, name))
	}
	return out, nil
}

func toLedgerResponse(e *entity.StockLedgerEntry, itemName string) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:              e.ID,
		ItemID:          e.ItemID,
		ItemName:        itemName,
		TransactionType: e.TransactionType,
		Quantity:        e.Quantity,
		Unit:            e.Unit,
		Rate:            e.Rate,
		Amount:          e.Amount,
		BalanceQuantity: e.BalanceQuantity,
		TransactionDate: e.TransactionDate.Format(dateLayout),
		ReferenceNumber: e.ReferenceNumber,
		ProjectID:       e.ProjectID,
		Remarks:         e.Remarks,
		CreatedAt:       e.CreatedAt,
	}
}
