package analytics

import "math"

// Constantes de política del núcleo de analítica. Cualquier umbral que
// aparezca en un pipeline o en una regla de insight debe vivir aquí con
// nombre, nunca como número suelto.
const (
	// OverstockMultiplier sobrestock = currentStock >= reorderPoint * multiplicador.
	OverstockMultiplier = 3

	// DeadStockWindowDays ventana móvil sin ventas para considerar stock muerto.
	DeadStockWindowDays = 90

	// TurnoverAnnualizationFactor la rotación trimestral se anualiza ×4.
	// Es una estimación gruesa a partir de un solo período, no una rotación
	// real de 12 meses móviles.
	TurnoverAnnualizationFactor = 4

	// Umbrales de clasificación ABC por porcentaje acumulado del valor total.
	ClassAThreshold = 80.0
	ClassBThreshold = 95.0

	// GrowthFastThreshold razón de crecimiento B2B/B2C a partir de la cual un
	// segmento se considera "creciendo más rápido" en los insights.
	GrowthFastThreshold = 1.0
)

// SafeDivide división protegida: denominador cero devuelve 0, nunca NaN/Inf.
// Es la única guarda de división compartida por todas las métricas derivadas.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Change variación porcentual entre período actual y de comparación.
//
// Definición por tramos obligatoria en todo delta período-sobre-período:
//
//	previous == 0 && current > 0  → 100
//	previous == 0 && current <= 0 → 0
//	resto                         → (current - previous) / previous * 100
func Change(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// TurnoverRate rotación estimada trimestral anualizada: revenue / inventario × 4.
// Cero si cualquiera de los dos no es positivo.
func TurnoverRate(revenue, inventoryValue float64) float64 {
	if revenue <= 0 || inventoryValue <= 0 {
		return 0
	}
	return revenue / inventoryValue * TurnoverAnnualizationFactor
}

// ConversionRate ordenes / clientes únicos × 100, protegida.
func ConversionRate(orders, uniqueCustomers float64) float64 {
	return SafeDivide(orders, uniqueCustomers) * 100
}

// CustomerLifetimeValue CLV simple: ingreso total / clientes únicos, protegida.
func CustomerLifetimeValue(totalRevenue, uniqueCustomers float64) float64 {
	return SafeDivide(totalRevenue, uniqueCustomers)
}

// GrowthComparison razón crecimientoB2B / crecimientoB2C.
// Solo se calcula cuando ambos son estrictamente positivos; en cualquier otro
// caso devuelve 0 (evita división por cero y razones negativas sin sentido).
func GrowthComparison(b2bGrowth, b2cGrowth float64) float64 {
	if b2bGrowth <= 0 || b2cGrowth <= 0 {
		return 0
	}
	return b2bGrowth / b2cGrowth
}

// Round2 redondeo a 2 decimales para presentación de métricas.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
