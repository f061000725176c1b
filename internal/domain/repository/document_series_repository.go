package repository

import "context"

// DocumentSeriesRepository consecutivos de documentos.
type DocumentSeriesRepository interface {
	// Next incrementa y devuelve el consecutivo (empieza en 1 por año fiscal).
	// Debe ejecutarse dentro de la misma tx que guarda el documento.
	Next(ctx context.Context, companyID, docType, financialYear string) (int64, error)
}
