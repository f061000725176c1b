package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	GSTIN   string `json:"gstin,omitempty"`
	State   string `json:"state"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	GSTIN     string `json:"gstin,omitempty"`
	State     string `json:"state"`
	StateCode string `json:"state_code,omitempty"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// DocumentLineRequest línea de cotización o factura.
// Si ItemID viene informado, descripción, HSN, unidad, precio y tasa se toman del
// artículo cuando llegan vacíos. DiscountMode "amount" hace autoritativo DiscountAmount;
// cualquier otro valor usa DiscountPercent.
type DocumentLineRequest struct {
	ItemID          string           `json:"item_id,omitempty"`
	Description     string           `json:"description,omitempty"`
	HSNCode         string           `json:"hsn_code,omitempty"`
	Unit            string           `json:"unit,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountMode    string           `json:"discount_mode,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	GSTRate         *decimal.Decimal `json:"gst_rate,omitempty"`
}

// DocumentLineResponse línea con sus valores derivados.
type DocumentLineResponse struct {
	ItemID          string          `json:"item_id,omitempty"`
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GSTRate         decimal.Decimal `json:"gst_rate"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// DocumentTotalsDTO totales de un documento (valores numéricos, sin formato).
type DocumentTotalsDTO struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalGST      decimal.Decimal `json:"total_gst"`
	TCSRate       decimal.Decimal `json:"tcs_rate"`
	TCSAmount     decimal.Decimal `json:"tcs_amount"`
	RoundOff      decimal.Decimal `json:"round_off"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountInWords string          `json:"amount_in_words"`
}

// PreviewRequest cálculo en vivo sin persistir (POST /api/quotations/preview).
type PreviewRequest struct {
	CustomerID    string                `json:"customer_id,omitempty"`
	PlaceOfSupply string                `json:"place_of_supply,omitempty"`
	TCSRate       decimal.Decimal       `json:"tcs_rate"`
	Lines         []DocumentLineRequest `json:"lines"`
}

// PreviewResponse líneas y totales calculados.
type PreviewResponse struct {
	PlaceOfSupply string                 `json:"place_of_supply"`
	Interstate    bool                   `json:"interstate"`
	Lines         []DocumentLineResponse `json:"lines"`
	Totals        DocumentTotalsDTO      `json:"totals"`
}

// CreateQuotationRequest body para POST /api/quotations.
type CreateQuotationRequest struct {
	CustomerID    string                `json:"customer_id"`
	Date          string                `json:"date,omitempty"`        // YYYY-MM-DD; vacío = hoy
	ValidUntil    string                `json:"valid_until,omitempty"` // vacío = fecha + 30 días
	PlaceOfSupply string                `json:"place_of_supply,omitempty"`
	TCSRate       decimal.Decimal       `json:"tcs_rate"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []DocumentLineRequest `json:"lines"`
}

// QuotationResponse cotización con líneas y totales.
type QuotationResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	CustomerID    string                 `json:"customer_id"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	Number        string                 `json:"number"`
	Date          string                 `json:"date"`
	ValidUntil    string                 `json:"valid_until"`
	PlaceOfSupply string                 `json:"place_of_supply"`
	Interstate    bool                   `json:"interstate"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []DocumentLineResponse `json:"lines"`
	Totals        DocumentTotalsDTO      `json:"totals"`
}

// UpdateStatusRequest cambio de estado de un documento o proyecto.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Con QuotationID y sin líneas se facturan las líneas de la cotización aceptada.
type CreateInvoiceRequest struct {
	CustomerID    string                `json:"customer_id"`
	QuotationID   string                `json:"quotation_id,omitempty"`
	ProjectID     string                `json:"project_id,omitempty"`
	Date          string                `json:"date,omitempty"`     // YYYY-MM-DD; vacío = hoy
	DueDate       string                `json:"due_date,omitempty"` // vacío = fecha + 30 días
	PlaceOfSupply string                `json:"place_of_supply,omitempty"`
	TCSRate       decimal.Decimal       `json:"tcs_rate"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []DocumentLineRequest `json:"lines"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	CustomerID    string                 `json:"customer_id"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	QuotationID   string                 `json:"quotation_id,omitempty"`
	ProjectID     string                 `json:"project_id,omitempty"`
	Number        string                 `json:"number"`
	Date          string                 `json:"date"`
	DueDate       string                 `json:"due_date"`
	PlaceOfSupply string                 `json:"place_of_supply"`
	Interstate    bool                   `json:"interstate"`
	IRN           string                 `json:"irn,omitempty"`
	AmountPaid    decimal.Decimal        `json:"amount_paid"`
	Balance       decimal.Decimal        `json:"balance"`
	PaymentStatus string                 `json:"payment_status"` // Unpaid|Partial|Paid|Overdue
	Notes         string                 `json:"notes,omitempty"`
	Lines         []DocumentLineResponse `json:"lines"`
	Totals        DocumentTotalsDTO      `json:"totals"`
}

// RecordPaymentRequest body para POST /api/payments.
type RecordPaymentRequest struct {
	InvoiceID string          `json:"invoice_id,omitempty"`
	ProjectID string          `json:"project_id,omitempty"`
	Stage     string          `json:"stage,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"` // Cash|UPI|NEFT|RTGS|Cheque
	Reference string          `json:"reference,omitempty"`
	Date      string          `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes     string          `json:"notes,omitempty"`
}

// PaymentResponse cobro registrado.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	ProjectID     string          `json:"project_id,omitempty"`
	Stage         string          `json:"stage,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          string          `json:"mode"`
	Reference     string          `json:"reference,omitempty"`
	Date          string          `json:"date"`
	InvoiceStatus string          `json:"invoice_status,omitempty"`
	StageStatus   string          `json:"stage_status,omitempty"`
}
