package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, sku, name, description, hsn_code, unit, category, gst_rate,
	sale_price, purchase_price, reorder_level, current_stock, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Description, &it.HSNCode, &it.Unit, &it.Category, &it.GSTRate,
		&it.SalePrice, &it.PurchasePrice, &it.ReorderLevel, &it.CurrentStock, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.SKU, it.Name, it.Description, it.HSNCode, it.Unit, it.Category, it.GSTRate,
		it.SalePrice, it.PurchasePrice, it.ReorderLevel, it.CurrentStock, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByCompanyAndSKU busca por SKU dentro de la empresa (sin distinguir mayúsculas).
func (r *ItemRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE company_id = $1 AND lower(sku) = lower($2)`, companyID, sku)
}

// Update actualiza datos maestros; current_stock y purchase_price no se tocan.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, hsn_code = $4, unit = $5, category = $6,
		       gst_rate = $7, sale_price = $8, reorder_level = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Description, it.HSNCode, it.Unit, it.Category,
		it.GSTRate, it.SalePrice, it.ReorderLevel, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualiza la caché de saldo y el costo promedio.
func (r *ItemRepo) UpdateStock(ctx context.Context, itemID string, currentStock, purchasePrice decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE items SET current_stock = $2, purchase_price = $3, updated_at = now() WHERE id = $1`,
		itemID, currentStock, purchasePrice)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListByCompany lista artículos de la empresa con paginación.
func (r *ItemRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error) {
	lim, off := pageArgs(limit, offset)
	return r.list(ctx,
		`SELECT `+itemColumns+` FROM items WHERE company_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, lim, off)
}

// ListBelowReorder artículos en o por debajo del nivel de reorden, mayor déficit primero.
func (r *ItemRepo) ListBelowReorder(ctx context.Context, companyID string) ([]*entity.Item, error) {
	return r.list(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE company_id = $1 AND reorder_level > 0 AND current_stock <= reorder_level
		ORDER BY (reorder_level - current_stock) DESC, sku`, companyID)
}

// Delete elimina un artículo. Con entradas en el libro mayor o líneas de documentos devuelve ErrConflict.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
