// Package metrics expone métricas Prometheus de HTTP y de negocio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/jobs"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
)

const namespace = "solar_epc"

var (
	_ ports.MetricsRecorder = (*Metrics)(nil)
	_ jobs.ReminderGauges   = (*Metrics)(nil)
)

// Metrics agrupa los collectors registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	documentsIssued   *prometheus.CounterVec
	stockTransactions *prometheus.CounterVec
	paymentsTotal     *prometheus.CounterVec
	paymentsAmount    *prometheus.CounterVec

	overdueInvoices *prometheus.GaugeVec
	dueStages       *prometheus.GaugeVec
	lowStockItems   *prometheus.GaugeVec
}

// New crea y registra todos los collectors (incluye métricas de proceso y runtime Go).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP por método, ruta y código.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		documentsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_issued_total",
			Help:      "Cotizaciones y facturas emitidas.",
		}, []string{"type"}),
		stockTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_transactions_total",
			Help:      "Entradas agregadas al libro mayor de inventario por tipo.",
		}, []string{"type"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Cobros registrados por medio de pago.",
		}, []string{"mode"}),
		paymentsAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_amount_rupees_total",
			Help:      "Monto cobrado en rupias por medio de pago.",
		}, []string{"mode"}),
		overdueInvoices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_invoices",
			Help:      "Facturas vencidas con saldo en la última corrida del recordatorio.",
		}, []string{"company_id"}),
		dueStages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "due_payment_stages",
			Help:      "Etapas de pago pendientes de cobro.",
		}, []string{"company_id"}),
		lowStockItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_items",
			Help:      "Artículos en o por debajo del nivel de reorden.",
		}, []string{"company_id"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.documentsIssued,
		m.stockTransactions,
		m.paymentsTotal,
		m.paymentsAmount,
		m.overdueInvoices,
		m.dueStages,
		m.lowStockItems,
	)
	return m
}

// Registry para tests y para exponer collectors adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler net/http de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) DocumentIssued(docType string) {
	m.documentsIssued.WithLabelValues(docType).Inc()
}

func (m *Metrics) StockTransactionRecorded(transactionType string) {
	m.stockTransactions.WithLabelValues(transactionType).Inc()
}

func (m *Metrics) PaymentRecorded(mode string, amount decimal.Decimal) {
	m.paymentsTotal.WithLabelValues(mode).Inc()
	m.paymentsAmount.WithLabelValues(mode).Add(amount.InexactFloat64())
}

// SetReminderCounts actualiza los gauges de una empresa tras la corrida del recordatorio.
func (m *Metrics) SetReminderCounts(companyID string, overdue, dueStages, lowStock int) {
	m.overdueInvoices.WithLabelValues(companyID).Set(float64(overdue))
	m.dueStages.WithLabelValues(companyID).Set(float64(dueStages))
	m.lowStockItems.WithLabelValues(companyID).Set(float64(lowStock))
}
