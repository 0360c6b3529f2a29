package analytics

import "fmt"

// Tipos de insight.
const (
	InsightAlert    = "alert"
	InsightTrend    = "trend"
	InsightAnalysis = "analysis"
)

// Umbrales de las reglas de insight.
const (
	// revenueSwingThresholdPct variación de ingresos que amerita un insight de tendencia.
	revenueSwingThresholdPct = 10.0
	// categorySwingThresholdPct oscilación de la categoría líder frente al
	// período de comparación que amerita destacarse.
	categorySwingThresholdPct = 20.0
)

// Insight mensaje legible generado a partir de métricas ya calculadas.
// Es lógica de formato pura: ningún insight introduce cómputo nuevo.
type Insight struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InsightInputs métricas ya derivadas que alimentan el motor de reglas.
type InsightInputs struct {
	RevenueChangePct  float64
	BelowReorderPoint int64
	OutOfStock        int64
	DeadStockCount    int
	TopCategory       string
	TopCategorySwing  float64 // variación % de la categoría líder
	GrowthComparison  float64 // razón crecimiento B2B / B2C
	HasData           bool
}

// BuildInsights aplica las reglas sobre las métricas. Sin datos en el período
// no se genera ningún insight (nada de alertas espurias sobre conjuntos vacíos).
func BuildInsights(in InsightInputs) []Insight {
	insights := []Insight{}
	if !in.HasData {
		return insights
	}

	if in.BelowReorderPoint > 0 {
		insights = append(insights, Insight{
			Type:  InsightAlert,
			Icon:  "alert-triangle",
			Title: "Stock bajo",
			Description: fmt.Sprintf(
				"%d productos están en o por debajo de su punto de reorden", in.BelowReorderPoint),
		})
	}
	if in.OutOfStock > 0 {
		insights = append(insights, Insight{
			Type:        InsightAlert,
			Icon:        "package-x",
			Title:       "Productos agotados",
			Description: fmt.Sprintf("%d productos sin existencias disponibles", in.OutOfStock),
		})
	}
	if in.DeadStockCount > 0 {
		insights = append(insights, Insight{
			Type:  InsightAlert,
			Icon:  "archive",
			Title: "Stock muerto",
			Description: fmt.Sprintf(
				"%d productos con existencias y sin ventas en los últimos %d días",
				in.DeadStockCount, DeadStockWindowDays),
		})
	}

	if in.RevenueChangePct >= revenueSwingThresholdPct {
		insights = append(insights, Insight{
			Type:  InsightTrend,
			Icon:  "trending-up",
			Title: "Ingresos en alza",
			Description: fmt.Sprintf(
				"Los ingresos crecieron %.1f%% frente al período anterior", in.RevenueChangePct),
		})
	} else if in.RevenueChangePct <= -revenueSwingThresholdPct {
		insights = append(insights, Insight{
			Type:  InsightTrend,
			Icon:  "trending-down",
			Title: "Ingresos a la baja",
			Description: fmt.Sprintf(
				"Los ingresos cayeron %.1f%% frente al período anterior", -in.RevenueChangePct),
		})
	}

	if in.TopCategory != "" && (in.TopCategorySwing >= categorySwingThresholdPct || in.TopCategorySwing <= -categorySwingThresholdPct) {
		insights = append(insights, Insight{
			Type:  InsightAnalysis,
			Icon:  "bar-chart-3",
			Title: "Movimiento de categoría",
			Description: fmt.Sprintf(
				"La categoría %q varió %.1f%% frente al período anterior", in.TopCategory, in.TopCategorySwing),
		})
	}

	// GrowthFastThreshold = 1: razón > 1 significa B2B creciendo más rápido que B2C.
	if in.GrowthComparison > GrowthFastThreshold {
		insights = append(insights, Insight{
			Type:  InsightAnalysis,
			Icon:  "briefcase",
			Title: "Segmento B2B acelerando",
			Description: fmt.Sprintf(
				"El segmento B2B crece %.1fx más rápido que B2C", in.GrowthComparison),
		})
	}

	return insights
}
