package entity

import "time"

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, sales, store
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
