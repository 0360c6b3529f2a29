package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func TestClassifyABC_CortesPorValorAcumulado(t *testing.T) {
	// Ordenados por valor descendente, total = 1000.
	items := []analytics.ABCItem{
		{SKU: "A1", Value: 500}, // acumulado 50%  → A
		{SKU: "A2", Value: 300}, // acumulado 80%  → A (el corte exacto pertenece a la clase inferior)
		{SKU: "B1", Value: 150}, // acumulado 95%  → B
		{SKU: "C1", Value: 50},  // acumulado 100% → C
	}

	out := analytics.ClassifyABC(items)
	require.Len(t, out, 4)

	assert.Equal(t, "A", out[0].Class)
	assert.Equal(t, "A", out[1].Class, "cruzar exactamente el 80%% sigue siendo clase A")
	assert.Equal(t, "B", out[2].Class)
	assert.Equal(t, "C", out[3].Class)

	assert.InDelta(t, 50.0, out[0].ValuePct, 0.001)
	assert.InDelta(t, 80.0, out[1].CumulativePct, 0.001)
	assert.InDelta(t, 100.0, out[3].CumulativePct, 0.001)
}

func TestClassifyABC_ValorTotalCero(t *testing.T) {
	out := analytics.ClassifyABC([]analytics.ABCItem{
		{SKU: "X", Value: 0},
		{SKU: "Y", Value: 0},
	})

	for _, it := range out {
		assert.Equal(t, "C", it.Class, "sin valor total todos los ítems quedan en C")
		assert.Zero(t, it.ValuePct)
		assert.Zero(t, it.CumulativePct)
	}
}

func TestClassifyABC_Vacio(t *testing.T) {
	out := analytics.ClassifyABC(nil)
	assert.Empty(t, out)
	assert.NotNil(t, out, "la clasificación de entrada vacía devuelve slice vacío, no nil")
}

func TestClassifyABC_NoMutaLaEntrada(t *testing.T) {
	in := []analytics.ABCItem{{SKU: "A1", Value: 100}}
	_ = analytics.ClassifyABC(in)
	assert.Empty(t, in[0].Class, "la entrada no debe modificarse")
}
