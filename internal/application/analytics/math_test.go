package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func TestSafeDivide(t *testing.T) {
	assert.InDelta(t, 2.5, analytics.SafeDivide(5, 2), 0.001)
	assert.Zero(t, analytics.SafeDivide(5, 0), "denominador cero devuelve 0, nunca Inf")
}

func TestChange_DefinicionPorTramos(t *testing.T) {
	assert.InDelta(t, 100.0, analytics.Change(50, 0), 0.001,
		"sin base previa y con valor actual positivo la variación es 100")
	assert.Zero(t, analytics.Change(0, 0))
	assert.InDelta(t, 50.0, analytics.Change(150, 100), 0.001)
	assert.InDelta(t, -25.0, analytics.Change(75, 100), 0.001)
}

func TestTurnoverRate(t *testing.T) {
	// 1000 de ingreso sobre 500 de inventario, anualizado ×4.
	assert.InDelta(t, 8.0, analytics.TurnoverRate(1000, 500), 0.001)
	assert.Zero(t, analytics.TurnoverRate(1000, 0))
	assert.Zero(t, analytics.TurnoverRate(0, 500))
}

func TestConversionRateYCLV(t *testing.T) {
	assert.InDelta(t, 250.0, analytics.ConversionRate(10, 4), 0.001)
	assert.Zero(t, analytics.ConversionRate(10, 0))
	assert.InDelta(t, 125.0, analytics.CustomerLifetimeValue(500, 4), 0.001)
}

func TestGrowthComparison(t *testing.T) {
	assert.InDelta(t, 2.0, analytics.GrowthComparison(10, 5), 0.001)
	assert.Zero(t, analytics.GrowthComparison(-10, 5), "crecimientos no positivos no producen razón")
	assert.Zero(t, analytics.GrowthComparison(10, 0))
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 3.14, analytics.Round2(3.14159), 0.0001)
	assert.InDelta(t, -2.57, analytics.Round2(-2.567), 0.0001)
}
