package billing

import (
	"context"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

// StockRecorder integra facturación con el libro mayor de inventario.
// RecordInTx agrega la entrada usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockRecorder interface {
	RecordInTx(ctx context.Context, repos repository.TxRepositories, in inventory.TransactionInput) (*entity.StockLedgerEntry, error)
}

// PrintableDocument todo lo que necesita el generador para imprimir una cotización o factura.
type PrintableDocument struct {
	Title         string // TAX INVOICE / QUOTATION
	Number        string
	Date          time.Time
	DateLabel     string // "Due Date" o "Valid Until"
	SecondaryDate time.Time
	IRN           string
	Company       *entity.Company
	Customer      *entity.Customer
	PlaceOfSupply string
	Interstate    bool
	Lines         []entity.DocumentLine
	Amounts       entity.DocumentAmounts
	TaxSummary    []gst.RateSummary
	AmountInWords string
	Notes         string
	UPIPayload    string // upi://pay?... para el QR; vacío si la empresa no tiene VPA
}

// DocumentPDFGenerator genera la representación gráfica (PDF) de un documento.
type DocumentPDFGenerator interface {
	Generate(ctx context.Context, doc PrintableDocument) ([]byte, error)
}

// TallyExporter genera el voucher de venta en XML de importación de Tally.
type TallyExporter interface {
	ExportInvoice(ctx context.Context, inv *entity.Invoice, company *entity.Company, customer *entity.Customer) ([]byte, error)
}
