package stock

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado después de una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock previo negativo se toma 0 para no arrastrar un costo sin respaldo.
func WeightedAverageCost(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if currentStock.IsNegative() {
		currentStock = decimal.Zero
	}
	sum := currentStock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum).Round(2)
}
