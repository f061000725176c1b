package entity

import "time"

// Customer representa un cliente (residencial o comercial) de la empresa.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	GSTIN     string // opcional (clientes residenciales no lo tienen)
	State     string // nombre del estado; lugar de suministro por defecto
	Address   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
