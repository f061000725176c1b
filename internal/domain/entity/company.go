package entity

import "time"

// Company representa la empresa EPC emisora de cotizaciones y facturas (multi-tenant).
type Company struct {
	ID          string
	Name        string
	GSTIN       string // 15 caracteres; los dos primeros son el código de estado
	StateCode   string // derivado del GSTIN
	Address     string
	City        string
	Pincode     string
	Phone       string
	Email       string
	BankName    string
	BankAccount string
	IFSC        string
	UPIVPA      string // dirección UPI para el QR de cobro en el PDF
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
