package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func insightTitles(insights []analytics.Insight) []string {
	titles := make([]string, 0, len(insights))
	for _, in := range insights {
		titles = append(titles, in.Title)
	}
	return titles
}

func TestBuildInsights_SinDatosNoGeneraNada(t *testing.T) {
	out := analytics.BuildInsights(analytics.InsightInputs{
		HasData:           false,
		BelowReorderPoint: 10,
		RevenueChangePct:  50,
	})

	assert.Empty(t, out, "sin datos en el período no debe haber alertas espurias")
	assert.NotNil(t, out, "siempre slice vacío, nunca nil")
}

func TestBuildInsights_AlertasDeInventario(t *testing.T) {
	out := analytics.BuildInsights(analytics.InsightInputs{
		HasData:           true,
		BelowReorderPoint: 3,
		OutOfStock:        1,
		DeadStockCount:    2,
	})

	titles := insightTitles(out)
	assert.Contains(t, titles, "Stock bajo")
	assert.Contains(t, titles, "Productos agotados")
	assert.Contains(t, titles, "Stock muerto")
	for _, in := range out {
		assert.Equal(t, analytics.InsightAlert, in.Type)
	}
}

func TestBuildInsights_TendenciaDeIngresos(t *testing.T) {
	up := analytics.BuildInsights(analytics.InsightInputs{HasData: true, RevenueChangePct: 12.5})
	require.Len(t, up, 1)
	assert.Equal(t, "Ingresos en alza", up[0].Title)
	assert.Contains(t, up[0].Description, "12.5%")

	down := analytics.BuildInsights(analytics.InsightInputs{HasData: true, RevenueChangePct: -15})
	require.Len(t, down, 1)
	assert.Equal(t, "Ingresos a la baja", down[0].Title)
	assert.Contains(t, down[0].Description, "15.0%", "la caída se describe en magnitud positiva")

	flat := analytics.BuildInsights(analytics.InsightInputs{HasData: true, RevenueChangePct: 5})
	assert.Empty(t, flat, "variaciones menores al umbral no generan insight")
}

func TestBuildInsights_SegmentoB2B(t *testing.T) {
	out := analytics.BuildInsights(analytics.InsightInputs{HasData: true, GrowthComparison: 2.4})
	require.Len(t, out, 1)
	assert.Equal(t, "Segmento B2B acelerando", out[0].Title)

	none := analytics.BuildInsights(analytics.InsightInputs{HasData: true, GrowthComparison: 1.0})
	assert.Empty(t, none, "razón igual al umbral no dispara el insight")
}

func TestBuildInsights_MovimientoDeCategoria(t *testing.T) {
	out := analytics.BuildInsights(analytics.InsightInputs{
		HasData:          true,
		TopCategory:      "Electrónica",
		TopCategorySwing: -25,
	})
	require.Len(t, out, 1)
	assert.Equal(t, analytics.InsightAnalysis, out[0].Type)
	assert.Contains(t, out[0].Description, "Electrónica")
	assert.Contains(t, out[0].Description, "período anterior",
		"la oscilación se mide contra el período de comparación solicitado, no contra semanas")
}
