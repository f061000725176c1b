package repository

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Companies  CompanyRepository
	Customers  CustomerRepository
	Items      ItemRepository
	Ledger     StockLedgerRepository
	Quotations QuotationRepository
	Invoices   InvoiceRepository
	Projects   ProjectRepository
	Payments   PaymentRepository
	Series     DocumentSeriesRepository
}
