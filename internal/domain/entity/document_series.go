package entity

import (
	"fmt"
	"time"
)

// Tipos de documento numerados.
const (
	SeriesQuotation = "QT"
	SeriesInvoice   = "INV"
)

// DocumentSeries consecutivo por empresa, tipo de documento y año fiscal.
// Reemplaza al rango autorizado: cada año fiscal reinicia en 1.
type DocumentSeries struct {
	CompanyID     string
	DocType       string
	FinancialYear string
	LastNumber    int64
	UpdatedAt     time.Time
}

// Format número de documento para el consecutivo n, ej: INV/2025-26/0001.
func (s *DocumentSeries) Format(n int64) string {
	return fmt.Sprintf("%s/%s/%04d", s.DocType, s.FinancialYear, n)
}
