package reports

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

// topNBreakdown tamaño del top por ingreso en los resúmenes.
const topNBreakdown = 5

// numField extrae un campo numérico de una fila decodificada de bson.
// Los acumuladores del datastore pueden devolver int32/int64/float64.
func numField(row bson.M, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func strField(row bson.M, key string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return ""
}

// sumField suma un campo numérico sobre todas las filas.
func sumField(rows []bson.M, key string) float64 {
	var total float64
	for _, row := range rows {
		total += numField(row, key)
	}
	return total
}

// topByField primeras n filas por un campo numérico descendente, anotadas con
// su porcentaje del total (safeDivide: total cero → 0%). Las filas ya vienen
// ordenadas por el pipeline; aquí solo se recorta y anota.
func topByField(rows []bson.M, key string, n int) []bson.M {
	total := sumField(rows, key)
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]bson.M, 0, n)
	for _, row := range rows[:n] {
		annotated := bson.M{}
		for k, v := range row {
			annotated[k] = v
		}
		annotated["pctOfTotal"] = analytics.Round2(analytics.SafeDivide(numField(row, key), total) * 100)
		out = append(out, annotated)
	}
	return out
}

// breakdownByField mapa dimensión → suma de un campo numérico.
func breakdownByField(rows []bson.M, dimKey, valueKey string) bson.M {
	breakdown := bson.M{}
	for _, row := range rows {
		dim := strField(row, dimKey)
		if dim == "" {
			dim = "Sin clasificar"
		}
		current, _ := breakdown[dim].(float64)
		breakdown[dim] = current + numField(row, valueKey)
	}
	return breakdown
}

// ── Reductores por familia de reporte ────────────────────────────────────────

// salesSummary totales y promedios de un reporte de ventas con columna revenue.
func salesSummary(rows []bson.M) bson.M {
	totalRevenue := sumField(rows, "revenue")
	totalOrders := sumField(rows, "orders")
	return bson.M{
		"rows":          len(rows),
		"totalRevenue":  analytics.Round2(totalRevenue),
		"totalOrders":   totalOrders,
		"avgOrderValue": analytics.Round2(analytics.SafeDivide(totalRevenue, totalOrders)),
		"topByRevenue":  topByField(rows, "revenue", topNBreakdown),
	}
}

// productRankingSummary resumen para rankings por producto/categoría.
func productRankingSummary(rows []bson.M) bson.M {
	totalRevenue := sumField(rows, "revenue")
	totalProfit := sumField(rows, "profit")
	return bson.M{
		"rows":         len(rows),
		"totalRevenue": analytics.Round2(totalRevenue),
		"totalProfit":  analytics.Round2(totalProfit),
		"overallMarginPct": analytics.Round2(
			analytics.SafeDivide(totalProfit, totalRevenue) * 100),
		"topByRevenue": topByField(rows, "revenue", topNBreakdown),
		"byCategory":   breakdownByField(rows, "category", "revenue"),
	}
}

// inventorySummary resumen para reportes de existencias con columna value.
func inventorySummary(rows []bson.M) bson.M {
	totalValue := sumField(rows, "value")
	totalUnits := sumField(rows, "stock")
	return bson.M{
		"rows":       len(rows),
		"totalValue": analytics.Round2(totalValue),
		"totalUnits": totalUnits,
		"avgUnitValue": analytics.Round2(
			analytics.SafeDivide(totalValue, totalUnits)),
		"topByValue": topByField(rows, "value", topNBreakdown),
	}
}

// purchaseSummary resumen de órdenes de compra agrupadas por estado.
func purchaseSummary(rows []bson.M) bson.M {
	totalAmount := sumField(rows, "amount")
	totalOrders := sumField(rows, "orders")
	return bson.M{
		"rows":        len(rows),
		"totalAmount": analytics.Round2(totalAmount),
		"totalOrders": totalOrders,
		"avgOrderAmount": analytics.Round2(
			analytics.SafeDivide(totalAmount, totalOrders)),
		"byStatus": breakdownByField(rows, "_id", "amount"),
	}
}

// customerSummary resumen del ranking de clientes.
func customerSummary(rows []bson.M) bson.M {
	totalRevenue := sumField(rows, "revenue")
	totalOrders := sumField(rows, "orders")
	return bson.M{
		"rows":         len(rows),
		"totalRevenue": analytics.Round2(totalRevenue),
		"totalOrders":  totalOrders,
		"avgLifetimeValue": analytics.Round2(
			analytics.SafeDivide(totalRevenue, float64(len(rows)))),
		"topByRevenue": topByField(rows, "revenue", topNBreakdown),
		"bySegment":    breakdownByField(rows, "segment", "revenue"),
	}
}
