package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
)

// Las líneas de cotizaciones y facturas comparten la tabla document_lines,
// diferenciadas por document_type (QT, INV).

func insertLines(ctx context.Context, q Querier, documentID, documentType string, lines []entity.DocumentLine) error {
	const query = `
		INSERT INTO document_lines (id, document_id, document_type, position, item_id, description, hsn_code, unit,
		                            quantity, unit_price, discount_percent, discount_amount, gst_rate,
		                            taxable_amount, cgst, sgst, igst, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for i := range lines {
		l := &lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.DocumentID = documentID
		_, err := q.Exec(ctx, query,
			l.ID, documentID, documentType, l.Position, nullIfEmpty(l.ItemID), l.Description, l.HSNCode, l.Unit,
			l.Quantity, l.UnitPrice, l.DiscountPercent, l.DiscountAmount, l.GSTRate,
			l.TaxableAmount, l.CGST, l.SGST, l.IGST, l.TotalAmount,
		)
		if err != nil {
			return fmt.Errorf("insert %s line %d: %w", documentType, l.Position, err)
		}
	}
	return nil
}

func loadLines(ctx context.Context, q Querier, documentID string) ([]entity.DocumentLine, error) {
	const query = `
		SELECT id, document_id, position, item_id, description, hsn_code, unit,
		       quantity, unit_price, discount_percent, discount_amount, gst_rate,
		       taxable_amount, cgst, sgst, igst, total_amount
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		var itemID *string
		if err := rows.Scan(
			&l.ID, &l.DocumentID, &l.Position, &itemID, &l.Description, &l.HSNCode, &l.Unit,
			&l.Quantity, &l.UnitPrice, &l.DiscountPercent, &l.DiscountAmount, &l.GSTRate,
			&l.TaxableAmount, &l.CGST, &l.SGST, &l.IGST, &l.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		l.ItemID = derefStr(itemID)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// amountArgs columnas subtotal..grand_total en el orden de las tablas.
func amountArgs(a entity.DocumentAmounts) []any {
	return []any{
		a.Subtotal, a.TotalDiscount, a.TaxableAmount, a.CGST, a.SGST, a.IGST,
		a.TotalGST, a.TCSRate, a.TCSAmount, a.RoundOff, a.GrandTotal,
	}
}

func amountDest(a *entity.DocumentAmounts) []any {
	return []any{
		&a.Subtotal, &a.TotalDiscount, &a.TaxableAmount, &a.CGST, &a.SGST, &a.IGST,
		&a.TotalGST, &a.TCSRate, &a.TCSAmount, &a.RoundOff, &a.GrandTotal,
	}
}

const amountColumns = `subtotal, total_discount, taxable_amount, cgst, sgst, igst,
	total_gst, tcs_rate, tcs_amount, round_off, grand_total`
