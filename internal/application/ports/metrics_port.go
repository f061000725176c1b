package ports

import "github.com/shopspring/decimal"

// MetricsRecorder contadores de negocio (documentos emitidos, movimientos, cobros).
type MetricsRecorder interface {
	DocumentIssued(docType string)
	StockTransactionRecorded(transactionType string)
	PaymentRecorded(mode string, amount decimal.Decimal)
}

// NopMetrics implementación vacía para tests y para cuando no hay métricas.
type NopMetrics struct{}

func (NopMetrics) DocumentIssued(string)                   {}
func (NopMetrics) StockTransactionRecorded(string)         {}
func (NopMetrics) PaymentRecorded(string, decimal.Decimal) {}
