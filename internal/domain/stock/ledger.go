// Package stock reglas puras del libro mayor de inventario: dirección de cada tipo de
// transacción, cantidad con signo y saldo corrido. No hace I/O.
package stock

import (
	"github.com/shopspring/decimal"
)

// TransactionType tipo de transacción de inventario (valores de presentación exactos).
type TransactionType string

const (
	Purchase       TransactionType = "Purchase"
	Sale           TransactionType = "Sale"
	TransferToSite TransactionType = "Transfer to Site"
	ReturnFromSite TransactionType = "Return from Site"
	Damage         TransactionType = "Damage"
	Adjustment     TransactionType = "Adjustment"
	OpeningStock   TransactionType = "Opening Stock"
)

// Types todos los tipos admitidos, en el orden en que se muestran.
var Types = []TransactionType{
	Purchase, Sale, TransferToSite, ReturnFromSite, Damage, Adjustment, OpeningStock,
}

// Flow sentido del movimiento sobre el saldo.
type Flow int

const (
	// Explicit: el signo lo trae la cantidad (Adjustment).
	Explicit Flow = iota
	Inbound
	Outbound
)

// Valid indica si t es uno de los tipos conocidos.
func (t TransactionType) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// IsSiteMovement tipos que referencian un proyecto (obra).
func (t TransactionType) IsSiteMovement() bool {
	return t == TransferToSite || t == ReturnFromSite
}

// Direction devuelve el sentido fijo del tipo. Adjustment es Explicit.
func Direction(t TransactionType) Flow {
	switch t {
	case Purchase, ReturnFromSite, OpeningStock:
		return Inbound
	case Sale, TransferToSite, Damage:
		return Outbound
	default:
		return Explicit
	}
}

// ValidQuantity reglas de cantidad por tipo: > 0 para tipos con sentido fijo,
// distinta de 0 para Adjustment.
func ValidQuantity(t TransactionType, qty decimal.Decimal) bool {
	if Direction(t) == Explicit {
		return !qty.IsZero()
	}
	return qty.IsPositive()
}

// SignedQuantity aplica el sentido del tipo a la cantidad.
// Para tipos con sentido fijo se usa |qty|; Adjustment conserva el signo recibido.
func SignedQuantity(t TransactionType, qty decimal.Decimal) decimal.Decimal {
	switch Direction(t) {
	case Inbound:
		return qty.Abs()
	case Outbound:
		return qty.Abs().Neg()
	default:
		return qty
	}
}

// NextBalance saldo después de aplicar una entrada: previo + cantidad con signo.
func NextBalance(prev, signed decimal.Decimal) decimal.Decimal {
	return prev.Add(signed)
}

// Amount valor de la entrada: rate * |qty|. Sin tarifa devuelve nil.
func Amount(rate *decimal.Decimal, qty decimal.Decimal) *decimal.Decimal {
	if rate == nil {
		return nil
	}
	a := rate.Mul(qty.Abs()).Round(2)
	return &a
}
