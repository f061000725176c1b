package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrScheduleNotBalanced los porcentajes del plan de pagos no suman 100.
	ErrScheduleNotBalanced = errors.New("el plan de pagos debe sumar 100%")
	// ErrOverpayment el pago supera el saldo pendiente de la factura.
	ErrOverpayment = errors.New("el pago supera el saldo pendiente")
)
